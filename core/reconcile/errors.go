package reconcile

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the engine and the provider adapters.
// Adapters wrap these with provider context via %w so callers can branch
// with errors.Is without caring which provider failed.
var (
	// ErrAuth marks a credential rejection (4xx auth status). Never retried.
	ErrAuth = errors.New("authentication rejected")

	// ErrTransient marks a connectivity or 5xx failure that survived the
	// adapter's bounded retries.
	ErrTransient = errors.New("transient provider error")

	// ErrNotFound marks an absent guest, device, or access-code record.
	ErrNotFound = errors.New("not found")

	// ErrLockNotFound means the target lock could not be resolved at
	// startup, either because no lock matched the configured house name or
	// because the match was ambiguous. Fatal: no booking is processed.
	ErrLockNotFound = errors.New("target lock not found")

	// ErrNoPhoneNumber means a guest record carries zero phone numbers, so
	// no door code can be derived. The booking is skipped and reported.
	ErrNoPhoneNumber = errors.New("guest has no phone number")

	// ErrPartialFailure is returned by RunReport.Err when the run completed
	// but one or more bookings or notifications failed.
	ErrPartialFailure = errors.New("run completed with failures")
)

// Err reports the run outcome as an error: nil on full success, or an error
// wrapping ErrPartialFailure when anything was captured along the way.
func (r *RunReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d failure(s) across %d booking(s)", ErrPartialFailure, len(r.Failures), r.Summary.Bookings)
}
