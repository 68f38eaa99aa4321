package http

import (
	"context"
	"time"

	"carrental-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) RegisterPickup(ctx context.Context, draft *domain.Rental) (*domain.Rental, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) RegisterReturn(ctx context.Context, bookingNumber string, returnDate time.Time, returnMeterReading int64) (*domain.ReturnReceipt, error) {
	args := m.Called(ctx, bookingNumber, returnDate, returnMeterReading)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnReceipt), args.Error(1)
}

func (m *MockRentalService) Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	args := m.Called(ctx, rental)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) Delete(ctx context.Context, bookingNumber string) error {
	args := m.Called(ctx, bookingNumber)
	return args.Error(0)
}

func (m *MockRentalService) GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Rental, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalService) GetAll(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
