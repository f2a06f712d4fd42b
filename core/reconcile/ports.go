package reconcile

import "context"

// BookingSource fetches bookings and guest contact details from the
// reservation provider. Implemented by feature/ownerrez; mocked in
// core/reconcile/mocks for engine tests.
type BookingSource interface {
	// ListBookings returns every booking for the property, following
	// provider pagination transparently. Accumulation order is page
	// delivery order.
	ListBookings(ctx context.Context, propertyID int64) ([]Booking, error)

	// GetGuest fetches a single guest record.
	GetGuest(ctx context.Context, guestID int64) (*Guest, error)
}

// LockController mutates access codes on one lock. Implemented by
// feature/seam.
type LockController interface {
	// AddCode creates a new access code labelled name. There is no
	// pre-check for an existing code of the same name; adds are not
	// idempotent.
	AddCode(ctx context.Context, lock Lock, code, name string) error

	// RemoveCode deletes the first access code whose label equals name.
	// Removing an absent code is a no-op, not an error.
	RemoveCode(ctx context.Context, lock Lock, name string) error
}

// Notifier delivers a message to the fixed operator roster. A failed
// recipient must not prevent delivery attempts to the remaining ones.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
