package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/pricing"
	"carrental-backend/internal/repository"
)

type rentalService struct {
	repo  repository.RentalRepository
	cache repository.RentalCache
}

func NewRentalService(repo repository.RentalRepository, cache repository.RentalCache) RentalService {
	return &rentalService{
		repo:  repo,
		cache: cache,
	}
}

func (s *rentalService) RegisterPickup(ctx context.Context, draft *domain.Rental) (*domain.Rental, error) {
	if draft == nil {
		return nil, domain.NewValidationError("Rental cannot be null")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	logger.Info("registering pickup", "registration_number", draft.RegistrationNumber, "car_category", draft.CarCategory)

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.InvalidOperationf("Failed to create rental")
	}

	// Write-through after commit. The caller disconnecting must not strand
	// a stale cache while the store already holds the new record.
	s.cache.Put(context.WithoutCancel(ctx), created)
	return created, nil
}

func (s *rentalService) RegisterReturn(ctx context.Context, bookingNumber string, returnDate time.Time, returnMeterReading int64) (*domain.ReturnReceipt, error) {
	logger.Info("registering return", "booking_number", bookingNumber)

	rental, err := s.lookup(ctx, bookingNumber)
	if err != nil {
		return nil, err
	}

	if rental.Returned() {
		return nil, domain.InvalidOperationf("rental with booking number %s already returned", bookingNumber)
	}
	if returnMeterReading < rental.PickupMeterReading {
		return nil, domain.InvalidOperationf("Return meter reading cannot be less than pickup meter reading")
	}
	if returnDate.Before(rental.PickupDate) {
		return nil, domain.InvalidOperationf("Return date cannot be before pickup date")
	}

	days := pricing.TripDays(rental.PickupDate, returnDate)
	km := pricing.TripKm(rental.PickupMeterReading, returnMeterReading)
	price, err := pricing.Price(rental.CarCategory, pricing.BaseDayRateCents, pricing.BaseKmRateCents, days, km)
	if err != nil {
		return nil, domain.InvalidOperationf("rental %s has invalid car category %q", bookingNumber, rental.CarCategory)
	}

	updated := *rental
	updated.ReturnDate = &returnDate
	updated.ReturnMeterReading = &returnMeterReading
	updated.CalculatedPriceCents = &price

	persisted, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}
	s.cache.Put(context.WithoutCancel(ctx), persisted)

	logger.Info("calculated price", "booking_number", bookingNumber, "price_cents", price, "days", days, "km", km)

	return &domain.ReturnReceipt{
		BookingNumber:        persisted.BookingNumber,
		RegistrationNumber:   persisted.RegistrationNumber,
		CustomerID:           persisted.CustomerID,
		PickupDate:           persisted.PickupDate,
		ReturnDate:           *persisted.ReturnDate,
		ReturnMeterReading:   *persisted.ReturnMeterReading,
		CalculatedPriceCents: *persisted.CalculatedPriceCents,
	}, nil
}

func (s *rentalService) Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	if rental == nil {
		return nil, domain.NewValidationError("Rental cannot be null")
	}
	if err := rental.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, rental.BookingNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NotFoundf("rental with booking number %s not found", rental.BookingNumber)
	}

	persisted, err := s.repo.Update(ctx, rental)
	if err != nil {
		return nil, err
	}
	s.cache.Put(context.WithoutCancel(ctx), persisted)
	return persisted, nil
}

func (s *rentalService) Delete(ctx context.Context, bookingNumber string) error {
	exists, err := s.repo.Exists(ctx, bookingNumber)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotFoundf("rental with booking number %s not found", bookingNumber)
	}

	if err := s.repo.Delete(ctx, bookingNumber); err != nil {
		return err
	}
	s.cache.Invalidate(context.WithoutCancel(ctx), bookingNumber)
	return nil
}

func (s *rentalService) GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Rental, error) {
	return s.lookup(ctx, bookingNumber)
}

func (s *rentalService) GetAll(ctx context.Context) ([]domain.Rental, error) {
	if cached := s.cache.GetAll(ctx); len(cached) > 0 {
		return cached, nil
	}

	rentals, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		s.cache.Put(ctx, &rentals[i])
	}
	return rentals, nil
}

// lookup is the cache-aside read path: cache hit wins, a miss falls through
// to the store and repopulates the cache on success.
func (s *rentalService) lookup(ctx context.Context, bookingNumber string) (*domain.Rental, error) {
	if rental, ok := s.cache.Get(ctx, bookingNumber); ok {
		return rental, nil
	}

	rental, err := s.repo.GetByBookingNumber(ctx, bookingNumber)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, rental)
	return rental, nil
}
