package jobs

import (
	"database/sql"

	"carrental-backend/internal/config"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	cache  repository.RentalCache
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, cache repository.RentalCache, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		cache:  cache,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
