// Package mocks provides testify doubles for the reconcile ports.
package mocks

import (
	"context"

	"doorsync/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// BookingSource is a mock implementation of reconcile.BookingSource.
type BookingSource struct {
	mock.Mock
}

func (m *BookingSource) ListBookings(ctx context.Context, propertyID int64) ([]reconcile.Booking, error) {
	args := m.Called(ctx, propertyID)
	if bookings, ok := args.Get(0).([]reconcile.Booking); ok {
		return bookings, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingSource) GetGuest(ctx context.Context, guestID int64) (*reconcile.Guest, error) {
	args := m.Called(ctx, guestID)
	if guest, ok := args.Get(0).(*reconcile.Guest); ok {
		return guest, args.Error(1)
	}
	return nil, args.Error(1)
}

// LockController is a mock implementation of reconcile.LockController.
type LockController struct {
	mock.Mock
}

func (m *LockController) AddCode(ctx context.Context, lock reconcile.Lock, code, name string) error {
	args := m.Called(ctx, lock, code, name)
	return args.Error(0)
}

func (m *LockController) RemoveCode(ctx context.Context, lock reconcile.Lock, name string) error {
	args := m.Called(ctx, lock, name)
	return args.Error(0)
}

// Notifier is a mock implementation of reconcile.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
