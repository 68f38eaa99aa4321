package service_test

import (
	"context"
	"testing"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeRental(bookingNumber string) *domain.Rental {
	return &domain.Rental{
		BookingNumber:      bookingNumber,
		RegistrationNumber: "ABC123",
		CustomerID:         "19900101-1234",
		CarCategory:        domain.CarCategoryMedium,
		PickupDate:         time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		PickupMeterReading: 1000,
		Version:            1,
	}
}

func TestRentalService_RegisterPickup(t *testing.T) {
	ctx := context.Background()

	t.Run("Nil draft fails validation with zero store or cache calls", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		res, err := svc.RegisterPickup(ctx, nil)
		assert.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, domain.IsValidation(err))
		assert.Equal(t, "Rental cannot be null", err.Error())
		repo.AssertNotCalled(t, "Create")
		cache.AssertNotCalled(t, "Put")
	})

	t.Run("Invalid category rejected before store call", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		draft := activeRental("")
		draft.CarCategory = "Truck"

		_, err := svc.RegisterPickup(ctx, draft)
		assert.True(t, domain.IsValidation(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Success writes through the cache", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		draft := activeRental("")
		created := activeRental("b-1")

		repo.On("Create", ctx, draft).Return(created, nil)
		cache.On("Put", mock.Anything, created).Return()

		res, err := svc.RegisterPickup(ctx, draft)
		assert.NoError(t, err)
		assert.Equal(t, "b-1", res.BookingNumber)
		assert.Equal(t, draft.RegistrationNumber, res.RegistrationNumber)
		assert.Equal(t, draft.CustomerID, res.CustomerID)
		assert.Equal(t, draft.CarCategory, res.CarCategory)
		assert.Equal(t, draft.PickupMeterReading, res.PickupMeterReading)
		cache.AssertCalled(t, "Put", mock.Anything, created)
	})
}

func TestRentalService_RegisterReturn(t *testing.T) {
	ctx := context.Background()
	returnDate := time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC) // 5 whole days after pickup

	t.Run("Meter regression fails with no side effects", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		cache.On("Get", ctx, "b-1").Return(activeRental("b-1"), true)

		_, err := svc.RegisterReturn(ctx, "b-1", returnDate, 900)
		assert.Error(t, err)
		assert.True(t, domain.IsInvalidOperation(err))
		assert.Equal(t, "Return meter reading cannot be less than pickup meter reading", err.Error())
		repo.AssertNotCalled(t, "Update")
		cache.AssertNotCalled(t, "Put")
	})

	t.Run("Return before pickup fails with no side effects", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		cache.On("Get", ctx, "b-1").Return(activeRental("b-1"), true)

		_, err := svc.RegisterReturn(ctx, "b-1", time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC), 1500)
		assert.Error(t, err)
		assert.True(t, domain.IsInvalidOperation(err))
		assert.Equal(t, "Return date cannot be before pickup date", err.Error())
		repo.AssertNotCalled(t, "Update")
		cache.AssertNotCalled(t, "Put")
	})

	t.Run("Unknown booking number", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		cache.On("Get", ctx, "missing").Return(nil, false)
		repo.On("GetByBookingNumber", ctx, "missing").
			Return(nil, domain.NotFoundf("rental with booking number %s not found", "missing"))

		_, err := svc.RegisterReturn(ctx, "missing", returnDate, 1500)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Already returned is rejected", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		rental := activeRental("b-1")
		prior := returnDate.Add(-24 * time.Hour)
		priorMeter := int64(1200)
		rental.ReturnDate = &prior
		rental.ReturnMeterReading = &priorMeter
		cache.On("Get", ctx, "b-1").Return(rental, true)

		_, err := svc.RegisterReturn(ctx, "b-1", returnDate, 1500)
		assert.True(t, domain.IsInvalidOperation(err))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("Cache hit avoids the store read and prices the trip", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		persisted := activeRental("b-1")
		rd := returnDate
		meter := int64(1500)
		price := int64(5650_00)
		persisted.ReturnDate = &rd
		persisted.ReturnMeterReading = &meter
		persisted.CalculatedPriceCents = &price
		persisted.Version = 2

		cache.On("Get", ctx, "b-1").Return(activeRental("b-1"), true)
		// The record handed to the store must already carry the price.
		repo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.Returned() && r.CalculatedPriceCents != nil && *r.CalculatedPriceCents == 5650_00
		})).Return(persisted, nil)
		cache.On("Put", mock.Anything, persisted).Return()

		receipt, err := svc.RegisterReturn(ctx, "b-1", returnDate, 1500)
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "GetByBookingNumber")

		// Medium, 5 days, 500 km: 100*5*1.3 + 10*500 = 5650
		assert.Equal(t, int64(5650_00), receipt.CalculatedPriceCents)
		assert.Equal(t, "b-1", receipt.BookingNumber)
		assert.Equal(t, returnDate, receipt.ReturnDate)
		assert.Equal(t, int64(1500), receipt.ReturnMeterReading)

		// Store update precedes the cache write and carries the price.
		repo.AssertNumberOfCalls(t, "Update", 1)
		cache.AssertNumberOfCalls(t, "Put", 1)
	})

	t.Run("Cache miss falls back to store and repopulates", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		rental := activeRental("b-1")
		persisted := activeRental("b-1")
		rd := returnDate
		meter := int64(1500)
		price := int64(5650_00)
		persisted.ReturnDate = &rd
		persisted.ReturnMeterReading = &meter
		persisted.CalculatedPriceCents = &price

		cache.On("Get", ctx, "b-1").Return(nil, false)
		repo.On("GetByBookingNumber", ctx, "b-1").Return(rental, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(persisted, nil)
		cache.On("Put", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return()

		_, err := svc.RegisterReturn(ctx, "b-1", returnDate, 1500)
		assert.NoError(t, err)

		// One repopulation after the miss, one write-through after the update.
		cache.AssertNumberOfCalls(t, "Put", 2)
	})
}

func TestRentalService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent booking number", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		repo.On("Exists", ctx, "missing").Return(false, nil)

		_, err := svc.Update(ctx, activeRental("missing"))
		assert.True(t, domain.IsNotFound(err))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("Persisted copy wins and is written through", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		rental := activeRental("b-1")
		persisted := *rental
		persisted.Version = 2

		repo.On("Exists", ctx, "b-1").Return(true, nil)
		repo.On("Update", ctx, rental).Return(&persisted, nil)
		cache.On("Put", mock.Anything, &persisted).Return()

		res, err := svc.Update(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), res.Version)
		cache.AssertCalled(t, "Put", mock.Anything, &persisted)
	})

	t.Run("Store conflict surfaces unchanged", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		repo.On("Exists", ctx, "b-1").Return(true, nil)
		repo.On("Update", ctx, mock.Anything).
			Return(nil, domain.Conflictf("rental with booking number %s was modified concurrently", "b-1"))

		_, err := svc.Update(ctx, activeRental("b-1"))
		assert.True(t, domain.IsConflict(err))
		cache.AssertNotCalled(t, "Put")
	})
}

func TestRentalService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success invalidates the cache entry", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		repo.On("Exists", ctx, "b-1").Return(true, nil)
		repo.On("Delete", ctx, "b-1").Return(nil)
		cache.On("Invalidate", mock.Anything, "b-1").Return()

		assert.NoError(t, svc.Delete(ctx, "b-1"))
		cache.AssertCalled(t, "Invalidate", mock.Anything, "b-1")
	})

	t.Run("Second delete fails not found", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		repo.On("Exists", ctx, "b-1").Return(false, nil)

		err := svc.Delete(ctx, "b-1")
		assert.True(t, domain.IsNotFound(err))
		repo.AssertNotCalled(t, "Delete")
		cache.AssertNotCalled(t, "Invalidate")
	})
}

func TestRentalService_GetByBookingNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache hit never touches the store", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		rental := activeRental("b-1")
		cache.On("Get", ctx, "b-1").Return(rental, true)

		res, err := svc.GetByBookingNumber(ctx, "b-1")
		assert.NoError(t, err)
		assert.Equal(t, rental, res)
		repo.AssertNotCalled(t, "GetByBookingNumber")
	})

	t.Run("Miss falls back and repopulates", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		rental := activeRental("b-1")
		cache.On("Get", ctx, "b-1").Return(nil, false)
		repo.On("GetByBookingNumber", ctx, "b-1").Return(rental, nil)
		cache.On("Put", ctx, rental).Return()

		res, err := svc.GetByBookingNumber(ctx, "b-1")
		assert.NoError(t, err)
		assert.Equal(t, rental, res)
		cache.AssertCalled(t, "Put", ctx, rental)
	})

	t.Run("Absent from both", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		cache.On("Get", ctx, "missing").Return(nil, false)
		repo.On("GetByBookingNumber", ctx, "missing").
			Return(nil, domain.NotFoundf("rental with booking number %s not found", "missing"))

		_, err := svc.GetByBookingNumber(ctx, "missing")
		assert.True(t, domain.IsNotFound(err))
		cache.AssertNotCalled(t, "Put")
	})
}

func TestRentalService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache entries served as-is", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		cached := []domain.Rental{*activeRental("b-1"), *activeRental("b-2")}
		cache.On("GetAll", ctx).Return(cached)

		res, err := svc.GetAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, cached, res)
		repo.AssertNotCalled(t, "GetAll")
	})

	t.Run("Empty cache falls back and repopulates every record", func(t *testing.T) {
		repo := new(MockRentalRepo)
		cache := new(MockRentalCache)
		svc := service.NewRentalService(repo, cache)

		stored := []domain.Rental{*activeRental("b-1"), *activeRental("b-2"), *activeRental("b-3")}
		cache.On("GetAll", ctx).Return(nil)
		repo.On("GetAll", ctx).Return(stored, nil)
		cache.On("Put", ctx, mock.AnythingOfType("*domain.Rental")).Return()

		res, err := svc.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, res, 3)
		repo.AssertNumberOfCalls(t, "GetAll", 1)
		cache.AssertNumberOfCalls(t, "Put", len(stored))
	})
}
