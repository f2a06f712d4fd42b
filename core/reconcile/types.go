package reconcile

import "time"

// Booking is one reservation for the target property, as delivered by the
// reservation provider. Bookings are fetched fresh at the start of a run and
// discarded when the run ends; nothing is persisted between runs.
type Booking struct {
	// Arrival is the check-in calendar date.
	Arrival time.Time

	// Departure is the check-out calendar date.
	Departure time.Time

	// GuestID identifies the guest in the reservation provider.
	GuestID int64
}

// Phone is a single guest phone number entry.
type Phone struct {
	// Number is the stored phone number. The provider stores plain digit
	// strings, so the trailing characters are usable as a door code without
	// further normalization.
	Number string `json:"number"`

	// IsDefault marks the guest's preferred number.
	IsDefault bool `json:"is_default"`
}

// Guest holds the contact details needed to derive a door code and label it.
type Guest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phones    []Phone `json:"phones"`
}

// FullName returns the "First Last" form used to label access codes.
// It is the join key between code creation and later deletion, standing in
// for a persisted booking-to-code mapping.
func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// Lock is the read-only handle to the target door lock, resolved once at
// startup and held for the whole run.
type Lock struct {
	// DeviceID is the lock provider's device identifier.
	DeviceID string

	// Name is the device's display name.
	Name string

	// HouseName is the operator-assigned label tying the lock to a property.
	HouseName string
}

// AccessCode is a code record owned by the lock provider. This system only
// creates and deletes these; it never mutates one in place.
type AccessCode struct {
	// ID is the provider-assigned record identifier used for deletion.
	ID string

	// Name is the human-readable label, set to the guest's full name.
	Name string

	// Code is the numeric code programmed on the lock.
	Code string
}

// ActionType identifies the kind of lock mutation planned for a booking.
type ActionType string

const (
	// ActionAddCode creates an access code for an arriving guest.
	ActionAddCode ActionType = "add_code"
	// ActionRemoveCode deletes the access code of a departing guest.
	ActionRemoveCode ActionType = "remove_code"
)

// Action is a planned lock mutation for one booking. At most one action is
// planned per booking per run; arrival wins over departure on same-day
// turnovers.
type Action struct {
	// Type specifies the mutation to perform.
	Type ActionType `json:"type"`

	// GuestID is the booking's guest identifier.
	GuestID int64 `json:"guest_id"`

	// GuestName is the access-code label ("First Last").
	GuestName string `json:"guest_name"`

	// Code is the door code. Always set for add actions. For remove actions
	// it is informational only and may be empty; removal is keyed by name.
	Code string `json:"code,omitempty"`

	// Reason explains why this action was planned.
	Reason string `json:"reason"`
}

// Failure records one captured error from a run. Failures never abort the
// run; they are collected and surfaced in the report.
type Failure struct {
	// Stage is where the error was captured: "plan", "apply", or "notify".
	Stage string `json:"stage"`

	// GuestID is the affected booking's guest, zero when not booking-scoped.
	GuestID int64 `json:"guest_id,omitempty"`

	// GuestName is set when the guest had already been fetched.
	GuestName string `json:"guest_name,omitempty"`

	// Err is the captured error.
	Err error `json:"-"`
}

// RunSummary provides aggregate counts for a run.
type RunSummary struct {
	// Bookings is the total number of bookings examined.
	Bookings int `json:"bookings"`

	// Arrivals counts bookings arriving on the run date.
	Arrivals int `json:"arrivals"`

	// Departures counts bookings departing on the run date after the cutoff
	// hour, excluding same-day turnovers counted as arrivals.
	Departures int `json:"departures"`

	// Skipped counts bookings with neither predicate true. Skipped bookings
	// trigger no collaborator calls at all.
	Skipped int `json:"skipped"`

	// CodesAdded and CodesRemoved count successfully applied mutations.
	CodesAdded   int `json:"codes_added"`
	CodesRemoved int `json:"codes_removed"`

	// Failures counts captured errors across all stages.
	Failures int `json:"failures"`
}

// Plan contains the decisions for one run before any mutation happens.
type Plan struct {
	// Actions are the planned lock mutations, in booking order.
	Actions []Action `json:"actions"`

	// Failures are errors captured while planning (guest fetch, malformed
	// contact data). The affected bookings carry no action.
	Failures []Failure `json:"failures"`

	// Summary holds the planning-stage counts. Apply fills in the rest.
	Summary RunSummary `json:"summary"`
}

// RunReport is the outcome of a full plan+apply run.
type RunReport struct {
	// Applied are the actions that were successfully executed.
	Applied []Action `json:"applied"`

	// Failures are all captured errors, planning and apply stages included.
	Failures []Failure `json:"failures"`

	// Summary provides aggregate counts.
	Summary RunSummary `json:"summary"`
}
