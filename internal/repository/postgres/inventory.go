package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const categoryColumns = `id, name, slug, base_price_paise, extra_adult_paise, extra_child_paise,
	base_occupancy, max_adults, max_children, total_rooms, is_active, display_order, created_on, updated_on`

func scanCategory(row *sql.Row) (*domain.RoomCategory, error) {
	c := &domain.RoomCategory{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.BasePricePaise, &c.ExtraAdultPaise, &c.ExtraChildPaise,
		&c.BaseOccupancy, &c.MaxAdults, &c.MaxChildren, &c.TotalRooms, &c.IsActive, &c.DisplayOrder,
		&c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room category: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *inventoryRepository) GetActiveCategory(ctx context.Context, id int32) (*domain.RoomCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM room_categories WHERE id = $1 AND is_active = true`
	return scanCategory(r.db.QueryRowContext(ctx, query, id))
}

func (r *inventoryRepository) GetActiveCategoryBySlug(ctx context.Context, slug string) (*domain.RoomCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM room_categories WHERE slug = $1 AND is_active = true`
	return scanCategory(r.db.QueryRowContext(ctx, query, slug))
}

func (r *inventoryRepository) ListActiveCategories(ctx context.Context) ([]domain.RoomCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM room_categories WHERE is_active = true ORDER BY display_order, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.RoomCategory
	for rows.Next() {
		var c domain.RoomCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.BasePricePaise, &c.ExtraAdultPaise, &c.ExtraChildPaise,
			&c.BaseOccupancy, &c.MaxAdults, &c.MaxChildren, &c.TotalRooms, &c.IsActive, &c.DisplayOrder,
			&c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *inventoryRepository) ListActiveRoomsInCategory(ctx context.Context, categoryID int32) ([]domain.Room, error) {
	// room_number sorts ascending so "first available" assignment stays
	// reproducible across calls.
	query := `SELECT id, category_id, room_number, is_active, created_on, updated_on
	          FROM rooms WHERE category_id = $1 AND is_active = true ORDER BY room_number ASC`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.CategoryID, &rm.RoomNumber, &rm.IsActive, &rm.CreatedOn, &rm.UpdatedOn); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *inventoryRepository) GetRoom(ctx context.Context, id int32) (*domain.Room, error) {
	rm := &domain.Room{}
	query := `SELECT id, category_id, room_number, is_active, created_on, updated_on FROM rooms WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rm.ID, &rm.CategoryID, &rm.RoomNumber, &rm.IsActive, &rm.CreatedOn, &rm.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return rm, nil
}
