// Package reconcile contains the core decision logic for keeping a door
// lock's access codes in step with a property's booking calendar.
//
// For a snapshot of bookings and the current time, the engine decides per
// booking whether to create a code (guest arrives today), delete one (guest
// departed today and the cutoff hour has passed), or do nothing. Decisions
// are applied exactly once per qualifying booking per run, and the whole
// process is safe to re-run: removal is idempotent on the lock side and the
// engine keeps no state between runs.
//
// # Architecture
//
// The package is split along a plan/apply seam:
//
//  1. Plan: walks bookings in source order, fetches qualifying guests
//     lazily, derives door codes, and emits Actions without mutating
//     anything. Dry runs stop here.
//
//  2. Apply: executes Actions against the lock and notifies the operator
//     roster, capturing per-action failures without aborting the run.
//
// Collaborators are consumed through the BookingSource, LockController, and
// Notifier interfaces (see ports.go); production implementations live under
// feature/, testify doubles under core/reconcile/mocks.
//
// # Code identity
//
// Access codes carry the guest's full name as their label. That label is the
// only join key between creation and deletion; no booking-to-code mapping is
// persisted anywhere.
//
// # Usage
//
//	engine := reconcile.NewEngine(source, locks, notifier, log, cfg)
//	report := engine.Run(ctx, bookings, time.Now(), lock)
//	if err := report.Err(); err != nil {
//	    // run finished, but some bookings or notifications failed
//	}
package reconcile
