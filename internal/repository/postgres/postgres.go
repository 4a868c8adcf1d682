package postgres

import (
	"database/sql"

	"resort-booking-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.InventoryRepository
	repository.BlockRepository
	repository.BookingRepository
	repository.RateRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		InventoryRepository: NewInventoryRepository(db),
		BlockRepository:     NewBlockRepository(db),
		BookingRepository:   NewBookingRepository(db),
		RateRepository:      NewRateRepository(db),
	}
}
