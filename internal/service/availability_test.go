package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository"
	"resort-booking-backend/internal/repository/memory"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seedInventory(store *memory.Store, categoryID int32, roomNumbers ...string) {
	store.AddCategory(domain.RoomCategory{
		ID:              categoryID,
		Name:            "Forest Villa",
		Slug:            "forest-villa",
		BasePricePaise:  500000,
		ExtraAdultPaise: 80000,
		ExtraChildPaise: 50000,
		BaseOccupancy:   2,
		MaxAdults:       3,
		MaxChildren:     2,
		TotalRooms:      len(roomNumbers),
		IsActive:        true,
	})
	for i, num := range roomNumbers {
		store.AddRoom(domain.Room{
			ID:         categoryID*100 + int32(i),
			CategoryID: categoryID,
			RoomNumber: num,
			IsActive:   true,
		})
	}
}

func TestFindAvailableRooms(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101", "FV-102", "FV-103")
	svc := NewAvailabilityService(store, store)

	checkIn := date(t, "2026-10-01")
	checkOut := date(t, "2026-10-03")

	t.Run("all rooms free", func(t *testing.T) {
		rooms, err := svc.FindAvailableRooms(ctx, 1, checkIn, checkOut)
		require.NoError(t, err)
		require.Len(t, rooms, 3)
		assert.Equal(t, "FV-101", rooms[0].RoomNumber)
		assert.Equal(t, "FV-103", rooms[2].RoomNumber)
	})

	t.Run("blocked room drops out", func(t *testing.T) {
		err := store.BlockRange(ctx, 100, checkIn, checkOut, domain.BlockReasonMaintenance, nil, domain.BlockSourceAdmin, "")
		require.NoError(t, err)

		rooms, err := svc.FindAvailableRooms(ctx, 1, checkIn, checkOut)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, "FV-102", rooms[0].RoomNumber)
	})

	t.Run("single overlapping night excludes the room", func(t *testing.T) {
		// FV-102 blocked for the last night only.
		err := store.BlockRange(ctx, 101, date(t, "2026-10-02"), date(t, "2026-10-03"), domain.BlockReasonPrivate, nil, domain.BlockSourceAdmin, "")
		require.NoError(t, err)

		rooms, err := svc.FindAvailableRooms(ctx, 1, checkIn, checkOut)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "FV-103", rooms[0].RoomNumber)
	})

	t.Run("back to back stay does not collide", func(t *testing.T) {
		// All earlier blocks end on 10-03 exclusive, so a stay checking in
		// that day sees every room free.
		rooms, err := svc.FindAvailableRooms(ctx, 1, date(t, "2026-10-03"), date(t, "2026-10-05"))
		require.NoError(t, err)
		assert.Len(t, rooms, 3)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.FindAvailableRooms(ctx, 1, checkOut, checkIn)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.FindAvailableRooms(ctx, 99, checkIn, checkOut)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101", "FV-102")
	svc := NewAvailabilityService(store, store)

	checkIn := date(t, "2026-11-10")
	checkOut := date(t, "2026-11-12")

	res, err := svc.CheckAvailability(ctx, 1, checkIn, checkOut)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 2, res.TotalRooms)
	assert.Len(t, res.AvailableRooms, 2)

	require.NoError(t, store.BlockRange(ctx, 100, checkIn, checkOut, domain.BlockReasonOther, nil, domain.BlockSourceAdmin, ""))
	require.NoError(t, store.BlockRange(ctx, 101, checkIn, checkOut, domain.BlockReasonOther, nil, domain.BlockSourceAdmin, ""))

	res, err = svc.CheckAvailability(ctx, 1, checkIn, checkOut)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Empty(t, res.AvailableRooms)
	assert.Equal(t, 2, res.TotalRooms)
}

// countingInventory wraps an InventoryRepository and counts room-list
// fetches, so a test can pin down how many snapshots a query takes.
type countingInventory struct {
	repository.InventoryRepository
	roomLists int
}

func (c *countingInventory) ListActiveRoomsInCategory(ctx context.Context, categoryID int32) ([]domain.Room, error) {
	c.roomLists++
	return c.InventoryRepository.ListActiveRoomsInCategory(ctx, categoryID)
}

func TestCheckAvailability_SingleRoomSnapshot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101", "FV-102")
	inv := &countingInventory{InventoryRepository: store}
	svc := NewAvailabilityService(inv, store)

	res, err := svc.CheckAvailability(ctx, 1, date(t, "2026-11-10"), date(t, "2026-11-12"))
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 2, res.TotalRooms)
	assert.Equal(t, 1, inv.roomLists, "filter and count must share one room list")
}

func TestFullyBookedDays(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101", "FV-102")
	svc := NewAvailabilityService(store, store)

	// Both rooms blocked on the 5th, only one on the 6th.
	require.NoError(t, store.BlockRange(ctx, 100, date(t, "2026-12-05"), date(t, "2026-12-07"), domain.BlockReasonOther, nil, domain.BlockSourceAdmin, ""))
	require.NoError(t, store.BlockRange(ctx, 101, date(t, "2026-12-05"), date(t, "2026-12-06"), domain.BlockReasonOther, nil, domain.BlockSourceAdmin, ""))

	full, err := svc.FullyBookedDays(ctx, 1, date(t, "2026-12-01"), date(t, "2026-12-10"))
	require.NoError(t, err)
	require.Len(t, full, 1)
	assert.Equal(t, "2026-12-05", calendar.FormatDate(full[0]))
}
