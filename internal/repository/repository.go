package repository

import (
	"context"

	"carrental-backend/internal/domain"
)

// RentalRepository is the durable, authoritative store of rental records.
// Create assigns a fresh booking number and resolves identifier collisions
// internally; a successful return from any method means the effect is
// durable. Absent booking numbers surface as not-found errors.
type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Rental, error)
	GetAll(ctx context.Context) ([]domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	Delete(ctx context.Context, bookingNumber string) error
	Exists(ctx context.Context, bookingNumber string) (bool, error)
}

// RentalCache is a best-effort mirror of rental records keyed by booking
// number. Implementations absorb every backend failure: a failed read is a
// miss, a failed write or invalidation is a logged no-op. The cache is
// never the last surviving copy of a record, so no method returns an error.
type RentalCache interface {
	Get(ctx context.Context, bookingNumber string) (*domain.Rental, bool)
	GetAll(ctx context.Context) []domain.Rental
	Put(ctx context.Context, rental *domain.Rental)
	Invalidate(ctx context.Context, bookingNumber string)
}
