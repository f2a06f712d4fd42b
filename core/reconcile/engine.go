package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Failure stages.
const (
	StagePlan   = "plan"
	StageApply  = "apply"
	StageNotify = "notify"
)

// Engine decides, for one day's bookings, which door codes to add and which
// to remove, and applies the decisions through the collaborator ports.
//
// The engine holds no state between runs. Correctness across re-runs rests
// on lock-side idempotence: removal is keyed by access-code name and is a
// no-op when the code is already gone.
type Engine struct {
	source        BookingSource
	locks         LockController
	notifier      Notifier
	log           *zap.Logger
	departureHour int
}

// NewEngine creates an engine with the given collaborators and policy.
// A zero DepartureHour is treated as unset and replaced by the default.
func NewEngine(source BookingSource, locks LockController, notifier Notifier, log *zap.Logger, cfg Config) *Engine {
	hour := cfg.DepartureHour
	if hour < 1 || hour > 23 {
		hour = DefaultDepartureHour
	}
	return &Engine{
		source:        source,
		locks:         locks,
		notifier:      notifier,
		log:           log,
		departureHour: hour,
	}
}

// Plan walks the bookings in source order and decides, per booking, whether
// a code must be added, removed, or nothing done. Guests are fetched lazily:
// a booking that qualifies for neither predicate triggers no collaborator
// call at all.
//
// Per-booking fetch or derivation errors are captured as failures and never
// abort the walk. Plan performs no mutation and sends no notification, which
// makes it safe to run under --dry-run.
func (e *Engine) Plan(ctx context.Context, bookings []Booking, now time.Time) *Plan {
	plan := &Plan{}
	plan.Summary.Bookings = len(bookings)

	today := now.Format("2006-01-02")

	for _, b := range bookings {
		isArrival := sameCalendarDay(b.Arrival, now)
		isDeparture := sameCalendarDay(b.Departure, now) && now.Hour() >= e.departureHour

		if !isArrival && !isDeparture {
			plan.Summary.Skipped++
			continue
		}

		guest, err := e.source.GetGuest(ctx, b.GuestID)
		if err != nil {
			e.log.Warn("Skipping booking: guest fetch failed",
				zap.Int64("guest_id", b.GuestID),
				zap.Error(err),
			)
			plan.Failures = append(plan.Failures, Failure{Stage: StagePlan, GuestID: b.GuestID, Err: err})
			continue
		}
		name := guest.FullName()

		// Arrival wins over departure on same-day turnovers: the incoming
		// guest's code is created and the outgoing one is left for the
		// next run.
		if isArrival {
			code, err := DeriveDoorCode(*guest)
			if err != nil {
				e.log.Warn("Skipping booking: cannot derive door code",
					zap.Int64("guest_id", b.GuestID),
					zap.String("guest", name),
					zap.Error(err),
				)
				plan.Failures = append(plan.Failures, Failure{Stage: StagePlan, GuestID: b.GuestID, GuestName: name, Err: err})
				continue
			}
			plan.Summary.Arrivals++
			plan.Actions = append(plan.Actions, Action{
				Type:      ActionAddCode,
				GuestID:   b.GuestID,
				GuestName: name,
				Code:      code,
				Reason:    "arrival on " + today,
			})
			continue
		}

		// Removal is keyed by name; the code is derived best-effort so that
		// status lines and reports can show it.
		code, _ := DeriveDoorCode(*guest)
		plan.Summary.Departures++
		plan.Actions = append(plan.Actions, Action{
			Type:      ActionRemoveCode,
			GuestID:   b.GuestID,
			GuestName: name,
			Code:      code,
			Reason:    fmt.Sprintf("departed by %02d:00 on %s", e.departureHour, today),
		})
	}

	plan.Summary.Failures = len(plan.Failures)
	return plan
}

// Apply executes the planned actions against the lock, one status line and
// one operator notification per applied action. Each action is an
// independent failure boundary: a failed mutation is captured and the
// remaining actions still run.
func (e *Engine) Apply(ctx context.Context, lock Lock, plan *Plan) *RunReport {
	report := &RunReport{
		Failures: plan.Failures,
		Summary:  plan.Summary,
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionAddCode:
			if err := e.locks.AddCode(ctx, lock, action.Code, action.GuestName); err != nil {
				e.log.Error("Failed to add door code",
					zap.String("guest", action.GuestName),
					zap.Error(err),
				)
				report.Failures = append(report.Failures, Failure{Stage: StageApply, GuestID: action.GuestID, GuestName: action.GuestName, Err: err})
				continue
			}
			report.Summary.CodesAdded++
			report.Applied = append(report.Applied, action)
			e.log.Info("Added door code",
				zap.String("guest", action.GuestName),
				zap.String("code", action.Code),
			)
			e.notify(ctx, report, action, fmt.Sprintf("Door code added for %s: %s", action.GuestName, action.Code))

		case ActionRemoveCode:
			if err := e.locks.RemoveCode(ctx, lock, action.GuestName); err != nil {
				e.log.Error("Failed to remove door code",
					zap.String("guest", action.GuestName),
					zap.Error(err),
				)
				report.Failures = append(report.Failures, Failure{Stage: StageApply, GuestID: action.GuestID, GuestName: action.GuestName, Err: err})
				continue
			}
			report.Summary.CodesRemoved++
			report.Applied = append(report.Applied, action)
			e.log.Info("Deleted door code",
				zap.String("guest", action.GuestName),
				zap.String("code", action.Code),
			)
			e.notify(ctx, report, action, fmt.Sprintf("Door code removed for %s", action.GuestName))
		}
	}

	report.Summary.Failures = len(report.Failures)
	return report
}

// Run plans and applies in one step.
func (e *Engine) Run(ctx context.Context, bookings []Booking, now time.Time, lock Lock) *RunReport {
	return e.Apply(ctx, lock, e.Plan(ctx, bookings, now))
}

// notify sends one operator message and captures (but does not propagate)
// delivery failures. The lock mutation already succeeded at this point, so
// the action still counts as applied.
func (e *Engine) notify(ctx context.Context, report *RunReport, action Action, message string) {
	if err := e.notifier.Notify(ctx, message); err != nil {
		e.log.Warn("Operator notification failed",
			zap.String("guest", action.GuestName),
			zap.Error(err),
		)
		report.Failures = append(report.Failures, Failure{Stage: StageNotify, GuestID: action.GuestID, GuestName: action.GuestName, Err: err})
	}
}

// sameCalendarDay compares two instants by calendar date, ignoring the time
// of day. Booking dates carry no meaningful time component.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
