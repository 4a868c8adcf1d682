package service

import (
	"context"
	"fmt"
	"time"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository"
)

type availabilityService struct {
	inventoryRepo repository.InventoryRepository
	blockRepo     repository.BlockRepository
}

func NewAvailabilityService(inventoryRepo repository.InventoryRepository, blockRepo repository.BlockRepository) AvailabilityService {
	return &availabilityService{inventoryRepo: inventoryRepo, blockRepo: blockRepo}
}

func (s *availabilityService) ListCategories(ctx context.Context) ([]domain.RoomCategory, error) {
	return s.inventoryRepo.ListActiveCategories(ctx)
}

// roomSnapshot fetches the category's active rooms once and splits them into
// the full set and the available subset, so a single call sees one stable
// room list for both the filter and the total count.
func (s *availabilityService) roomSnapshot(ctx context.Context, categoryID int32, checkIn, checkOut time.Time) (all, available []domain.Room, err error) {
	if calendar.NightsBetween(checkIn, checkOut) <= 0 {
		return nil, nil, fmt.Errorf("availability: %w", domain.ErrInvalidRange)
	}
	if _, err := s.inventoryRepo.GetActiveCategory(ctx, categoryID); err != nil {
		return nil, nil, err
	}
	rooms, err := s.inventoryRepo.ListActiveRoomsInCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	if len(rooms) == 0 {
		return nil, nil, nil
	}

	roomIDs := make([]int32, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
	}
	blocks, err := s.blockRepo.ListBlocks(ctx, roomIDs, checkIn, checkOut)
	if err != nil {
		return nil, nil, err
	}
	blocked := make(map[int32]bool, len(blocks))
	for _, b := range blocks {
		blocked[b.RoomID] = true
	}

	// rooms arrive ordered by room number; filtering preserves that order so
	// "first available" stays deterministic.
	available = make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !blocked[r.ID] {
			available = append(available, r)
		}
	}
	return rooms, available, nil
}

// FindAvailableRooms is a read-only query; it does not lock. A room it
// returns can still lose a race to a concurrent booking, which is why room
// assignment re-validates through the ledger's atomic insert.
func (s *availabilityService) FindAvailableRooms(ctx context.Context, categoryID int32, checkIn, checkOut time.Time) ([]domain.Room, error) {
	_, available, err := s.roomSnapshot(ctx, categoryID, checkIn, checkOut)
	return available, err
}

func (s *availabilityService) CheckAvailability(ctx context.Context, categoryID int32, checkIn, checkOut time.Time) (*AvailabilityResult, error) {
	all, available, err := s.roomSnapshot(ctx, categoryID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{
		Available:      len(available) > 0,
		AvailableRooms: available,
		TotalRooms:     len(all),
	}, nil
}

func (s *availabilityService) FullyBookedDays(ctx context.Context, categoryID int32, start, end time.Time) ([]time.Time, error) {
	if calendar.NightsBetween(start, end) <= 0 {
		return nil, fmt.Errorf("availability: %w", domain.ErrInvalidRange)
	}
	if _, err := s.inventoryRepo.GetActiveCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	rooms, err := s.inventoryRepo.ListActiveRoomsInCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	roomIDs := make([]int32, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
	}
	blocks, err := s.blockRepo.ListBlocks(ctx, roomIDs, start, end)
	if err != nil {
		return nil, err
	}

	blockedRoomsByDay := make(map[string]map[int32]bool)
	for _, b := range blocks {
		day := calendar.FormatDate(b.Date)
		if blockedRoomsByDay[day] == nil {
			blockedRoomsByDay[day] = make(map[int32]bool)
		}
		blockedRoomsByDay[day][b.RoomID] = true
	}

	// A day is fully booked only when every active room carries a block.
	var full []time.Time
	for _, day := range calendar.EnumerateNights(start, end) {
		if len(blockedRoomsByDay[calendar.FormatDate(day)]) == len(rooms) {
			full = append(full, day)
		}
	}
	return full, nil
}
