package postgres

import (
	"database/sql"

	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store aggregates the postgres-backed repositories behind one handle.
type Store struct {
	db *sql.DB
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		RentalRepository: NewRentalRepository(db),
	}
}
