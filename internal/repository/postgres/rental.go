package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const rentalColumns = `booking_number, registration_number, customer_id, car_category, pickup_date, pickup_meter_reading, return_date, return_meter_reading, calculated_price_cents, version, created_on, updated_on`

// createAttempts bounds booking-number regeneration when an insert hits a
// duplicate key. Collisions on v4 UUIDs are not expected in practice.
const createAttempts = 3

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	query := `INSERT INTO rentals (booking_number, registration_number, customer_id, car_category, pickup_date, pickup_meter_reading, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $7)
	          RETURNING ` + rentalColumns

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		bookingNumber := uuid.NewString()
		row := r.db.QueryRowContext(ctx, query,
			bookingNumber,
			rental.RegistrationNumber,
			rental.CustomerID,
			string(rental.CarCategory),
			rental.PickupDate,
			rental.PickupMeterReading,
			time.Now().UTC(),
		)

		created, err := scanRental(row)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return nil, domain.InfrastructureError("failed to create rental", err)
		}
		lastErr = err
	}
	return nil, &domain.Error{
		Kind:    domain.KindConflict,
		Message: "booking number collision persisted across retries",
		Err:     lastErr,
	}
}

func (r *rentalRepository) GetByBookingNumber(ctx context.Context, bookingNumber string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE booking_number = $1`
	rental, err := scanRental(r.db.QueryRowContext(ctx, query, bookingNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("rental with booking number %s not found", bookingNumber)
		}
		return nil, domain.InfrastructureError("failed to read rental", err)
	}
	return rental, nil
}

func (r *rentalRepository) GetAll(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.InfrastructureError("failed to list rentals", err)
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, domain.InfrastructureError("failed to scan rental", err)
		}
		rentals = append(rentals, *rental)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InfrastructureError("failed to list rentals", err)
	}
	return rentals, nil
}

func (r *rentalRepository) Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	// Compare-and-swap on version: a row modified since the caller's read
	// matches zero rows and surfaces as a conflict, not a silent overwrite.
	query := `UPDATE rentals
	          SET registration_number=$1, customer_id=$2, car_category=$3, pickup_date=$4, pickup_meter_reading=$5,
	              return_date=$6, return_meter_reading=$7, calculated_price_cents=$8,
	              version=version+1, updated_on=$9
	          WHERE booking_number=$10 AND version=$11
	          RETURNING ` + rentalColumns

	row := r.db.QueryRowContext(ctx, query,
		rental.RegistrationNumber,
		rental.CustomerID,
		string(rental.CarCategory),
		rental.PickupDate,
		rental.PickupMeterReading,
		nullTime(rental.ReturnDate),
		nullInt64(rental.ReturnMeterReading),
		nullInt64(rental.CalculatedPriceCents),
		time.Now().UTC(),
		rental.BookingNumber,
		rental.Version,
	)

	updated, err := scanRental(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.InfrastructureError("failed to update rental", err)
	}

	exists, existsErr := r.Exists(ctx, rental.BookingNumber)
	if existsErr != nil {
		return nil, existsErr
	}
	if exists {
		return nil, domain.Conflictf("rental with booking number %s was modified concurrently", rental.BookingNumber)
	}
	return nil, domain.NotFoundf("rental with booking number %s not found", rental.BookingNumber)
}

func (r *rentalRepository) Delete(ctx context.Context, bookingNumber string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE booking_number = $1`, bookingNumber)
	if err != nil {
		return domain.InfrastructureError("failed to delete rental", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InfrastructureError("failed to delete rental", err)
	}
	if affected == 0 {
		return domain.NotFoundf("rental with booking number %s not found", bookingNumber)
	}
	return nil
}

func (r *rentalRepository) Exists(ctx context.Context, bookingNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rentals WHERE booking_number = $1)`, bookingNumber).Scan(&exists)
	if err != nil {
		return false, domain.InfrastructureError("failed to check rental existence", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	var (
		rental      domain.Rental
		category    string
		returnDate  sql.NullTime
		returnMeter sql.NullInt64
		price       sql.NullInt64
	)
	err := row.Scan(
		&rental.BookingNumber,
		&rental.RegistrationNumber,
		&rental.CustomerID,
		&category,
		&rental.PickupDate,
		&rental.PickupMeterReading,
		&returnDate,
		&returnMeter,
		&price,
		&rental.Version,
		&rental.CreatedOn,
		&rental.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	rental.CarCategory = domain.CarCategory(category)
	if returnDate.Valid {
		t := returnDate.Time
		rental.ReturnDate = &t
	}
	if returnMeter.Valid {
		v := returnMeter.Int64
		rental.ReturnMeterReading = &v
	}
	if price.Valid {
		v := price.Int64
		rental.CalculatedPriceCents = &v
	}
	return &rental, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
