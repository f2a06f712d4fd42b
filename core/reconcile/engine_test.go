package reconcile_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"doorsync/core/reconcile"
	"doorsync/core/reconcile/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testLock = reconcile.Lock{DeviceID: "dev-1", HouseName: "Lakehouse"}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newEngine(source *mocks.BookingSource, locks *mocks.LockController, notifier *mocks.Notifier) *reconcile.Engine {
	return reconcile.NewEngine(source, locks, notifier, zap.NewNop(), reconcile.Config{DepartureHour: 16})
}

// TestEngine_Run_EndToEnd exercises the full decision table for one day:
// an arrival gets a code and an "added" notification, a past-cutoff
// departure gets its code removed, and a future booking triggers no
// collaborator calls at all.
func TestEngine_Run_EndToEnd(t *testing.T) {
	now := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
	bookings := []reconcile.Booking{
		{Arrival: date(2024, 6, 1), Departure: date(2024, 6, 3), GuestID: 1},
		{Arrival: date(2024, 5, 28), Departure: date(2024, 6, 1), GuestID: 2},
		{Arrival: date(2024, 6, 2), Departure: date(2024, 6, 5), GuestID: 3},
	}

	source := new(mocks.BookingSource)
	locks := new(mocks.LockController)
	notifier := new(mocks.Notifier)

	source.On("GetGuest", mock.Anything, int64(1)).Return(&reconcile.Guest{
		FirstName: "Alice",
		LastName:  "Arriving",
		Phones: []reconcile.Phone{
			{Number: "5551230001", IsDefault: false},
			{Number: "5559998888", IsDefault: true},
		},
	}, nil)
	source.On("GetGuest", mock.Anything, int64(2)).Return(&reconcile.Guest{
		FirstName: "Dave",
		LastName:  "Departing",
		Phones:    []reconcile.Phone{{Number: "5550004321", IsDefault: true}},
	}, nil)

	locks.On("AddCode", mock.Anything, testLock, "8888", "Alice Arriving").Return(nil)
	locks.On("RemoveCode", mock.Anything, testLock, "Dave Departing").Return(nil)
	notifier.On("Notify", mock.Anything, "Door code added for Alice Arriving: 8888").Return(nil)
	notifier.On("Notify", mock.Anything, "Door code removed for Dave Departing").Return(nil)

	engine := newEngine(source, locks, notifier)
	report := engine.Run(context.Background(), bookings, now, testLock)

	assert.NoError(t, report.Err())
	assert.Len(t, report.Applied, 2)
	assert.Equal(t, 3, report.Summary.Bookings)
	assert.Equal(t, 1, report.Summary.Arrivals)
	assert.Equal(t, 1, report.Summary.Departures)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, 1, report.Summary.CodesAdded)
	assert.Equal(t, 1, report.Summary.CodesRemoved)
	assert.Equal(t, 0, report.Summary.Failures)

	// The future booking must not have triggered a guest fetch.
	source.AssertNumberOfCalls(t, "GetGuest", 2)
	locks.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

// TestEngine_Plan_SameDayTurnover verifies that arrival wins when a booking
// both arrives and departs on the run date: only the add action fires.
func TestEngine_Plan_SameDayTurnover(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	bookings := []reconcile.Booking{
		{Arrival: date(2024, 6, 1), Departure: date(2024, 6, 1), GuestID: 7},
	}

	source := new(mocks.BookingSource)
	source.On("GetGuest", mock.Anything, int64(7)).Return(&reconcile.Guest{
		FirstName: "Turn",
		LastName:  "Over",
		Phones:    []reconcile.Phone{{Number: "5551112222", IsDefault: true}},
	}, nil)

	engine := newEngine(source, new(mocks.LockController), new(mocks.Notifier))
	plan := engine.Plan(context.Background(), bookings, now)

	assert.Len(t, plan.Actions, 1)
	assert.Equal(t, reconcile.ActionAddCode, plan.Actions[0].Type)
	assert.Equal(t, "Turn Over", plan.Actions[0].GuestName)
	assert.Equal(t, 1, plan.Summary.Arrivals)
	assert.Equal(t, 0, plan.Summary.Departures)
}

func TestEngine_Plan_DepartureCutoff(t *testing.T) {
	tests := []struct {
		name       string
		hour       int
		wantAction bool
	}{
		{"before cutoff", 15, false},
		{"at cutoff", 16, true},
		{"after cutoff", 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2024, 6, 1, tt.hour, 30, 0, 0, time.UTC)
			bookings := []reconcile.Booking{
				{Arrival: date(2024, 5, 28), Departure: date(2024, 6, 1), GuestID: 2},
			}

			source := new(mocks.BookingSource)
			source.On("GetGuest", mock.Anything, int64(2)).Return(&reconcile.Guest{
				FirstName: "Dave",
				LastName:  "Departing",
				Phones:    []reconcile.Phone{{Number: "5550004321", IsDefault: true}},
			}, nil)

			engine := newEngine(source, new(mocks.LockController), new(mocks.Notifier))
			plan := engine.Plan(context.Background(), bookings, now)

			if tt.wantAction {
				assert.Len(t, plan.Actions, 1)
				assert.Equal(t, reconcile.ActionRemoveCode, plan.Actions[0].Type)
			} else {
				assert.Empty(t, plan.Actions)
				assert.Equal(t, 1, plan.Summary.Skipped)
				// Before the cutoff the booking must not cost a fetch.
				source.AssertNotCalled(t, "GetGuest", mock.Anything, mock.Anything)
			}
		})
	}
}

// TestEngine_Plan_GuestFetchFailureIsolated verifies that one booking's
// failed guest fetch does not abort planning for the rest.
func TestEngine_Plan_GuestFetchFailureIsolated(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	bookings := []reconcile.Booking{
		{Arrival: date(2024, 6, 1), Departure: date(2024, 6, 3), GuestID: 1},
		{Arrival: date(2024, 6, 1), Departure: date(2024, 6, 4), GuestID: 2},
	}

	source := new(mocks.BookingSource)
	source.On("GetGuest", mock.Anything, int64(1)).Return(nil, fmt.Errorf("guest service down"))
	source.On("GetGuest", mock.Anything, int64(2)).Return(&reconcile.Guest{
		FirstName: "Bob",
		LastName:  "Backup",
		Phones:    []reconcile.Phone{{Number: "5556667777", IsDefault: true}},
	}, nil)

	engine := newEngine(source, new(mocks.LockController), new(mocks.Notifier))
	plan := engine.Plan(context.Background(), bookings, now)

	assert.Len(t, plan.Actions, 1)
	assert.Equal(t, "Bob Backup", plan.Actions[0].GuestName)
	assert.Len(t, plan.Failures, 1)
	assert.Equal(t, reconcile.StagePlan, plan.Failures[0].Stage)
	assert.Equal(t, int64(1), plan.Failures[0].GuestID)
}

// TestEngine_Plan_GuestWithoutPhones verifies the explicit zero-phone
// policy: the booking is skipped with a captured failure, not a fault.
func TestEngine_Plan_GuestWithoutPhones(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	bookings := []reconcile.Booking{
		{Arrival: date(2024, 6, 1), Departure: date(2024, 6, 3), GuestID: 5},
	}

	source := new(mocks.BookingSource)
	source.On("GetGuest", mock.Anything, int64(5)).Return(&reconcile.Guest{
		FirstName: "No",
		LastName:  "Phone",
	}, nil)

	engine := newEngine(source, new(mocks.LockController), new(mocks.Notifier))
	plan := engine.Plan(context.Background(), bookings, now)

	assert.Empty(t, plan.Actions)
	assert.Len(t, plan.Failures, 1)
	assert.ErrorIs(t, plan.Failures[0].Err, reconcile.ErrNoPhoneNumber)
	assert.Equal(t, "No Phone", plan.Failures[0].GuestName)
}

// TestEngine_Apply_LockFailureIsolated verifies that a failed lock mutation
// is captured and the remaining actions still run, with no notification for
// the failed one.
func TestEngine_Apply_LockFailureIsolated(t *testing.T) {
	plan := &reconcile.Plan{
		Actions: []reconcile.Action{
			{Type: reconcile.ActionAddCode, GuestID: 1, GuestName: "First Guest", Code: "1111"},
			{Type: reconcile.ActionAddCode, GuestID: 2, GuestName: "Second Guest", Code: "2222"},
		},
	}
	plan.Summary.Bookings = 2
	plan.Summary.Arrivals = 2

	locks := new(mocks.LockController)
	notifier := new(mocks.Notifier)
	locks.On("AddCode", mock.Anything, testLock, "1111", "First Guest").Return(fmt.Errorf("lock offline"))
	locks.On("AddCode", mock.Anything, testLock, "2222", "Second Guest").Return(nil)
	notifier.On("Notify", mock.Anything, "Door code added for Second Guest: 2222").Return(nil)

	engine := newEngine(new(mocks.BookingSource), locks, notifier)
	report := engine.Apply(context.Background(), testLock, plan)

	assert.Len(t, report.Applied, 1)
	assert.Equal(t, 1, report.Summary.CodesAdded)
	assert.Len(t, report.Failures, 1)
	assert.Equal(t, reconcile.StageApply, report.Failures[0].Stage)
	assert.ErrorIs(t, report.Err(), reconcile.ErrPartialFailure)

	notifier.AssertNumberOfCalls(t, "Notify", 1)
	locks.AssertExpectations(t)
}

// TestEngine_Apply_NotifyFailureCaptured verifies that a failed operator
// notification is reported but does not undo or fail the applied action.
func TestEngine_Apply_NotifyFailureCaptured(t *testing.T) {
	plan := &reconcile.Plan{
		Actions: []reconcile.Action{
			{Type: reconcile.ActionRemoveCode, GuestID: 9, GuestName: "Gone Guest", Code: "4321"},
		},
	}
	plan.Summary.Bookings = 1
	plan.Summary.Departures = 1

	locks := new(mocks.LockController)
	notifier := new(mocks.Notifier)
	locks.On("RemoveCode", mock.Anything, testLock, "Gone Guest").Return(nil)
	notifier.On("Notify", mock.Anything, "Door code removed for Gone Guest").Return(fmt.Errorf("sms gateway down"))

	engine := newEngine(new(mocks.BookingSource), locks, notifier)
	report := engine.Apply(context.Background(), testLock, plan)

	assert.Len(t, report.Applied, 1)
	assert.Equal(t, 1, report.Summary.CodesRemoved)
	assert.Len(t, report.Failures, 1)
	assert.Equal(t, reconcile.StageNotify, report.Failures[0].Stage)
	assert.ErrorIs(t, report.Err(), reconcile.ErrPartialFailure)
}
