package service

import (
	"context"
	"fmt"
	"time"

	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/logger"
	"resort-booking-backend/internal/repository"
)

type blockService struct {
	blockRepo     repository.BlockRepository
	inventoryRepo repository.InventoryRepository
}

func NewBlockService(blockRepo repository.BlockRepository, inventoryRepo repository.InventoryRepository) BlockService {
	return &blockService{blockRepo: blockRepo, inventoryRepo: inventoryRepo}
}

func (s *blockService) BlockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time, reason domain.BlockReason, notes string) error {
	if _, err := s.inventoryRepo.GetRoom(ctx, roomID); err != nil {
		return err
	}
	if reason == "" {
		reason = domain.BlockReasonOther
	}
	ve := domain.NewValidationError()
	if !reason.Valid() {
		ve.Add("reason", fmt.Sprintf("unknown block reason %q", reason))
	} else if reason == domain.BlockReasonBooking {
		// Booking-owned blocks only enter through the booking workflow.
		ve.Add("reason", "booking blocks are placed by the booking workflow, not manually")
	}
	if ve.HasErrors() {
		return ve
	}
	err := s.blockRepo.BlockRange(ctx, roomID, checkIn, checkOut, reason, nil, domain.BlockSourceAdmin, notes)
	if err != nil {
		return err
	}
	logger.Info("manual block placed", "room_id", roomID, "reason", reason)
	return nil
}

func (s *blockService) UnblockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (int64, error) {
	if _, err := s.inventoryRepo.GetRoom(ctx, roomID); err != nil {
		return 0, err
	}
	removed, err := s.blockRepo.UnblockRange(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	logger.Info("manual blocks removed", "room_id", roomID, "count", removed)
	return removed, nil
}

func (s *blockService) ListBlockedDates(ctx context.Context, roomIDs []int32, start, end time.Time) ([]domain.DateBlock, error) {
	return s.blockRepo.ListBlocks(ctx, roomIDs, start, end)
}
