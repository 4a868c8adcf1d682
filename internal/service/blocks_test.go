package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository/memory"
)

func TestBlockService_ManualBlockRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101")
	svc := NewBlockService(store, store)

	checkIn := date(t, "2026-09-10")
	checkOut := date(t, "2026-09-13")

	require.NoError(t, svc.BlockRange(ctx, 100, checkIn, checkOut, domain.BlockReasonMaintenance, "plumbing"))

	blocks, err := svc.ListBlockedDates(ctx, []int32{100}, checkIn, checkOut)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Nil(t, b.BookingID)
		assert.Equal(t, domain.BlockSourceAdmin, b.Source)
		assert.Equal(t, domain.BlockReasonMaintenance, b.Reason)
		assert.Equal(t, "plumbing", b.Notes)
	}

	removed, err := svc.UnblockRange(ctx, 100, checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	blocks, err = svc.ListBlockedDates(ctx, []int32{100}, checkIn, checkOut)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestBlockService_RejectsBookingReason(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101")
	svc := NewBlockService(store, store)

	err := svc.BlockRange(ctx, 100, date(t, "2026-09-10"), date(t, "2026-09-11"), domain.BlockReasonBooking, "")
	ve := domain.AsValidationError(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields(), "reason")
}

func TestBlockService_RejectsUnknownReason(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101")
	svc := NewBlockService(store, store)

	err := svc.BlockRange(ctx, 100, date(t, "2026-09-10"), date(t, "2026-09-11"), domain.BlockReason("foo"), "")
	ve := domain.AsValidationError(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields(), "reason")

	blocks, err := svc.ListBlockedDates(ctx, []int32{100}, date(t, "2026-09-10"), date(t, "2026-09-11"))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestBlockService_EmptyReasonDefaultsToOther(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101")
	svc := NewBlockService(store, store)

	require.NoError(t, svc.BlockRange(ctx, 100, date(t, "2026-09-10"), date(t, "2026-09-11"), "", ""))

	blocks, err := svc.ListBlockedDates(ctx, []int32{100}, date(t, "2026-09-10"), date(t, "2026-09-11"))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockReasonOther, blocks[0].Reason)
}

func TestBlockService_UnknownRoom(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewBlockService(store, store)

	err := svc.BlockRange(ctx, 42, date(t, "2026-09-10"), date(t, "2026-09-11"), domain.BlockReasonOther, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlockService_UnblockLeavesBookingOwnedBlocks(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedInventory(store, 1, "FV-101")
	svc := NewBlockService(store, store)

	checkIn := date(t, "2026-09-20")
	checkOut := date(t, "2026-09-22")

	bookingID := int32(7)
	require.NoError(t, store.BlockRange(ctx, 100, checkIn, checkOut, domain.BlockReasonBooking, &bookingID, domain.BlockSourceGuest, ""))

	removed, err := svc.UnblockRange(ctx, 100, checkIn, checkOut)
	require.NoError(t, err)
	assert.Zero(t, removed)

	blocks, err := svc.ListBlockedDates(ctx, []int32{100}, checkIn, checkOut)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}
