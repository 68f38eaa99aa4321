package domain

import (
	"fmt"
	"time"
)

// CarCategory selects the pricing formula applied when a rental is returned.
// Categories are persisted as their textual tag, not an ordinal, so stored
// rows stay stable if the set ever changes.
type CarCategory string

const (
	CarCategorySmall   CarCategory = "Small"
	CarCategoryMedium  CarCategory = "Medium"
	CarCategoryLarge   CarCategory = "Large"
	CarCategorySuv     CarCategory = "Suv"
	CarCategoryMinivan CarCategory = "Minivan"
)

// CarCategories lists every valid category tag.
var CarCategories = []CarCategory{
	CarCategorySmall,
	CarCategoryMedium,
	CarCategoryLarge,
	CarCategorySuv,
	CarCategoryMinivan,
}

// Valid reports whether c is one of the five known categories.
func (c CarCategory) Valid() bool {
	switch c {
	case CarCategorySmall, CarCategoryMedium, CarCategoryLarge, CarCategorySuv, CarCategoryMinivan:
		return true
	}
	return false
}

// ParseCarCategory converts a textual tag into a CarCategory.
func ParseCarCategory(s string) (CarCategory, error) {
	c := CarCategory(s)
	if !c.Valid() {
		return "", NewValidationError(fmt.Sprintf("unknown car category %q", s))
	}
	return c, nil
}

// Rental is the durable record of one booking. The booking number is
// assigned by the store at creation and never changes; pickup fields are
// immutable after creation and return fields are set exactly once when the
// car comes back. Monetary amounts are in cents.
type Rental struct {
	BookingNumber        string      `json:"booking_number"`
	RegistrationNumber   string      `json:"registration_number"`
	CustomerID           string      `json:"customer_id"`
	CarCategory          CarCategory `json:"car_category"`
	PickupDate           time.Time   `json:"pickup_date"`
	PickupMeterReading   int64       `json:"pickup_meter_reading"`
	ReturnDate           *time.Time  `json:"return_date,omitempty"`
	ReturnMeterReading   *int64      `json:"return_meter_reading,omitempty"`
	CalculatedPriceCents *int64      `json:"calculated_price_cents,omitempty"`
	// Version is the optimistic concurrency token bumped on every store
	// update. A stale writer observes a conflict instead of overwriting.
	Version   int64     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Returned reports whether the rental has completed its lifecycle.
func (r *Rental) Returned() bool {
	return r.ReturnDate != nil
}

// Validate checks the data-integrity invariants that must hold for any
// rental regardless of lifecycle state.
func (r *Rental) Validate() error {
	var fields []string
	if !r.CarCategory.Valid() {
		fields = append(fields, fmt.Sprintf("unknown car category %q", string(r.CarCategory)))
	}
	if r.PickupMeterReading < 0 {
		fields = append(fields, "Pickup meter reading must be greater than or equal to 0")
	}
	if r.ReturnMeterReading != nil && *r.ReturnMeterReading < r.PickupMeterReading {
		fields = append(fields, "Return meter reading cannot be less than pickup meter reading")
	}
	if r.ReturnDate != nil && r.ReturnDate.Before(r.PickupDate) {
		fields = append(fields, "Return date cannot be before pickup date")
	}
	if len(fields) > 0 {
		return NewValidationError("Validation failed", fields...)
	}
	return nil
}

// ReturnReceipt is the payload produced by a successful return registration.
type ReturnReceipt struct {
	BookingNumber        string    `json:"booking_number"`
	RegistrationNumber   string    `json:"registration_number"`
	CustomerID           string    `json:"customer_id"`
	PickupDate           time.Time `json:"pickup_date"`
	ReturnDate           time.Time `json:"return_date"`
	ReturnMeterReading   int64     `json:"return_meter_reading"`
	CalculatedPriceCents int64     `json:"calculated_price_cents"`
}
