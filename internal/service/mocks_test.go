package service_test

import (
	"context"

	"carrental-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	args := m.Called(ctx, rental)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Rental, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) GetAll(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	args := m.Called(ctx, rental)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepo) Delete(ctx context.Context, bookingNumber string) error {
	args := m.Called(ctx, bookingNumber)
	return args.Error(0)
}

func (m *MockRentalRepo) Exists(ctx context.Context, bookingNumber string) (bool, error) {
	args := m.Called(ctx, bookingNumber)
	return args.Bool(0), args.Error(1)
}

// MockRentalCache
type MockRentalCache struct {
	mock.Mock
}

func (m *MockRentalCache) Get(ctx context.Context, bookingNumber string) (*domain.Rental, bool) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Rental), args.Bool(1)
}

func (m *MockRentalCache) GetAll(ctx context.Context) []domain.Rental {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Rental)
}

func (m *MockRentalCache) Put(ctx context.Context, rental *domain.Rental) {
	m.Called(ctx, rental)
}

func (m *MockRentalCache) Invalidate(ctx context.Context, bookingNumber string) {
	m.Called(ctx, bookingNumber)
}
