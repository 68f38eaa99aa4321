package jobs

import (
	"context"

	"carrental-backend/internal/logger"
)

// WarmRentalCache repopulates the cache mirror from the durable store so
// read traffic after a cache flush or restart is served without a store
// scan. Cache writes are best-effort; a cold cache after a failed run is
// the normal cache-miss path, not an error.
func (jr *JobRunner) WarmRentalCache() {
	jr.runWithRecovery("WarmRentalCache", func() {
		ctx := context.Background()

		rentals, err := jr.store.GetAll(ctx)
		if err != nil {
			logger.Error("Failed to read rentals for cache warm", "error", err)
			return
		}

		for i := range rentals {
			jr.cache.Put(ctx, &rentals[i])
		}
		logger.Info("Warmed rental cache", "count", len(rentals))
	})
}

// ReportOpenRentals logs how many rentals are still out versus returned.
func (jr *JobRunner) ReportOpenRentals() {
	jr.runWithRecovery("ReportOpenRentals", func() {
		ctx := context.Background()

		query := `
			SELECT
			    count(*) FILTER (WHERE return_date IS NULL) AS open,
			    count(*) FILTER (WHERE return_date IS NOT NULL) AS returned
			FROM rentals
		`

		var open, returned int64
		if err := jr.db.QueryRowContext(ctx, query).Scan(&open, &returned); err != nil {
			logger.Error("Failed to count rentals", "error", err)
			return
		}

		logger.Info("Rental lifecycle report", "open", open, "returned", returned)
	})
}
