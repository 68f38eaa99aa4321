package pricing

import (
	"errors"
	"time"

	"carrental-backend/internal/domain"
)

// Base rates applied to every rental, in cents. They are owned by the
// caller, not the engine, which stays free of configuration state.
const (
	BaseDayRateCents int64 = 100_00
	BaseKmRateCents  int64 = 10_00
)

// ErrInvalidCategory is returned for a category tag outside the closed set.
// Unreachable for rentals that satisfy the domain invariant.
var ErrInvalidCategory = errors.New("invalid car category")

// Price computes the rental price in cents for one trip. Category
// multipliers are applied as exact tenths ratios so the integer arithmetic
// introduces no rounding of its own.
//
//	Small:   dayRate × days
//	Medium:  dayRate × days × 1.3 + kmRate × km
//	Large:   dayRate × days × 1.5 + kmRate × km
//	Suv:     dayRate × days × 1.5 + kmRate × km × 1.5
//	Minivan: dayRate × days × 1.7 + kmRate × km × 1.7
func Price(category domain.CarCategory, dayRateCents, kmRateCents, numberOfDays, numberOfKm int64) (int64, error) {
	dayCost := dayRateCents * numberOfDays
	kmCost := kmRateCents * numberOfKm

	switch category {
	case domain.CarCategorySmall:
		return dayCost, nil
	case domain.CarCategoryMedium:
		return dayCost*13/10 + kmCost, nil
	case domain.CarCategoryLarge:
		return dayCost*15/10 + kmCost, nil
	case domain.CarCategorySuv:
		return dayCost*15/10 + kmCost*15/10, nil
	case domain.CarCategoryMinivan:
		return dayCost*17/10 + kmCost*17/10, nil
	default:
		return 0, ErrInvalidCategory
	}
}

// TripDays is the whole-day truncation of the pickup-to-return interval.
func TripDays(pickupDate, returnDate time.Time) int64 {
	return int64(returnDate.Sub(pickupDate) / (24 * time.Hour))
}

// TripKm is the distance driven between the two meter readings.
func TripKm(pickupMeterReading, returnMeterReading int64) int64 {
	return returnMeterReading - pickupMeterReading
}
