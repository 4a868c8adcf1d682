package repository

import (
	"context"
	"time"

	"resort-booking-backend/internal/domain"
)

// InventoryRepository exposes read-only category and room lookups. Category
// and room CRUD is an external administrative concern; nothing here mutates.
type InventoryRepository interface {
	GetActiveCategory(ctx context.Context, id int32) (*domain.RoomCategory, error)
	GetActiveCategoryBySlug(ctx context.Context, slug string) (*domain.RoomCategory, error)
	ListActiveCategories(ctx context.Context) ([]domain.RoomCategory, error)
	// ListActiveRoomsInCategory returns active rooms ordered by room number
	// ascending, as a stable snapshot for one availability computation.
	ListActiveRoomsInCategory(ctx context.Context, categoryID int32) ([]domain.Room, error)
	GetRoom(ctx context.Context, id int32) (*domain.Room, error)
}

// BlockRepository is the date-block ledger: the single enforcement point for
// the no-double-booking invariant via uniqueness on (room_id, date).
type BlockRepository interface {
	// BlockRange inserts one block per night of [checkIn, checkOut) in a
	// single atomic operation. A night already held by the same owner
	// upserts; a night held by a different owner fails the whole batch with
	// domain.ErrBlockConflict.
	BlockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time, reason domain.BlockReason, bookingID *int32, source, notes string) error
	// UnblockRange deletes administrator-owned blocks (no booking id) in the
	// range and returns how many were removed. Booking-owned blocks are
	// immune to this path.
	UnblockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (int64, error)
	// DeleteBlocksForBooking removes every block owned by the booking,
	// restoring inventory on cancellation or no-show.
	DeleteBlocksForBooking(ctx context.Context, bookingID int32) (int64, error)
	ListBlocks(ctx context.Context, roomIDs []int32, start, end time.Time) ([]domain.DateBlock, error)
	CountBlocksForBooking(ctx context.Context, bookingID int32) (int, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	// ListHoldingInventory returns bookings whose status holds inventory,
	// used by the reconciliation job.
	ListHoldingInventory(ctx context.Context) ([]domain.Booking, error)
}

// RateRepository serves the read-only pricing inputs: seasons, meal plans,
// packages and tax rates.
type RateRepository interface {
	// GetSeasonForDate resolves the single season covering the date. When
	// several active seasons overlap it, the one with the latest start date
	// wins, ties broken by lowest id. Returns nil (no error) when no season
	// covers the date.
	GetSeasonForDate(ctx context.Context, date time.Time) (*domain.Season, error)
	GetMealPlan(ctx context.Context, code string) (*domain.MealPlanPrice, error)
	GetPackage(ctx context.Context, id int32) (*domain.Package, error)
	// EffectiveTaxRateBps sums all active tax percentages.
	EffectiveTaxRateBps(ctx context.Context) (int64, error)
}
