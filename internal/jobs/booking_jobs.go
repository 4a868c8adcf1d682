package jobs

import (
	"context"
	"fmt"
	"time"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/logger"
)

// MarkNoShows transitions confirmed bookings whose check-in has passed
// without a check-in to no_show and releases their date blocks.
func (jr *JobRunner) MarkNoShows() {
	jr.runWithRecovery("MarkNoShows", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = $1,
			    updated_on = NOW()
			WHERE status = $2
			  AND check_in < $3
			RETURNING id
		`
		rows, err := jr.db.QueryContext(ctx, query,
			domain.StatusNoShow, domain.StatusBookingConfirmed, calendar.Today())
		if err != nil {
			logger.Error("Failed to mark no-shows", "error", err)
			return
		}
		defer rows.Close()

		var ids []int32
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan no-show booking", "error", err)
				continue
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating no-show bookings", "error", err)
			return
		}

		for _, id := range ids {
			removed, err := jr.store.DeleteBlocksForBooking(ctx, id)
			if err != nil {
				logger.Error("Failed to release blocks for no-show", "booking_id", id, "error", err)
				continue
			}
			logger.Debug("Released inventory for no-show", "booking_id", id, "blocks_removed", removed)
		}
		logger.Info("Marked bookings as no-show", "count", len(ids))
	})
}

// ExpireStaleEnquiries cancels enquiries that have sat unanswered past the
// configured expiry window.
func (jr *JobRunner) ExpireStaleEnquiries() {
	jr.runWithRecovery("ExpireStaleEnquiries", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, -jr.config.Booking.EnquiryExpiryDays)
		query := `
			UPDATE bookings
			SET status = $1,
			    notes = notes || $2,
			    updated_on = NOW()
			WHERE status = $3
			  AND created_on < $4
		`
		note := fmt.Sprintf(" [auto-expired after %d days]", jr.config.Booking.EnquiryExpiryDays)
		res, err := jr.db.ExecContext(ctx, query,
			domain.StatusCancelled, note, domain.StatusNewEnquiry, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale enquiries", "error", err)
			return
		}
		count, _ := res.RowsAffected()
		logger.Info("Expired stale enquiries", "count", count)
	})
}

// ReconcileOrphanHolds finds inventory-holding bookings whose block count
// does not match their night count. These are the recoverable
// inconsistencies left behind when a booking row was persisted but the block
// write lost its race; they are logged for manual follow-up, never silently
// repaired.
func (jr *JobRunner) ReconcileOrphanHolds() {
	jr.runWithRecovery("ReconcileOrphanHolds", func() {
		ctx := context.Background()

		bookings, err := jr.store.ListHoldingInventory(ctx)
		if err != nil {
			logger.Error("Failed to list inventory-holding bookings", "error", err)
			return
		}

		flagged := 0
		for _, b := range bookings {
			nights := calendar.NightsBetween(b.CheckIn, b.CheckOut)
			held, err := jr.store.CountBlocksForBooking(ctx, b.ID)
			if err != nil {
				logger.Error("Failed to count blocks", "booking_id", b.ID, "error", err)
				continue
			}
			if held != nights {
				flagged++
				logger.Error("Booking holds inventory on paper but not in the ledger",
					"booking_id", b.ID,
					"room_id", b.RoomID,
					"status", b.Status,
					"nights", nights,
					"blocks_held", held,
					"check_in", calendar.FormatDate(b.CheckIn),
					"check_out", calendar.FormatDate(b.CheckOut))
			}
		}
		logger.Info("Reconciliation sweep finished", "checked", len(bookings), "flagged", flagged)
	})
}
