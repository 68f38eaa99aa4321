package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

// RentalService orchestrates the rental lifecycle over the durable store
// and the best-effort cache. It is the only component that decides ordering
// between store and cache calls: reads are cache-first with store fallback
// and repopulation, writes always commit to the store before touching the
// cache. Validation and business-rule failures surface as typed domain
// errors; cache failures never surface at all.
type RentalService interface {
	RegisterPickup(ctx context.Context, draft *domain.Rental) (*domain.Rental, error)
	RegisterReturn(ctx context.Context, bookingNumber string, returnDate time.Time, returnMeterReading int64) (*domain.ReturnReceipt, error)
	Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	Delete(ctx context.Context, bookingNumber string) error
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Rental, error)
	GetAll(ctx context.Context) ([]domain.Rental, error)
}
