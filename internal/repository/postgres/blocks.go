package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository"
)

type blockRepository struct {
	db *sql.DB
}

func NewBlockRepository(db *sql.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

// uniqueViolation is the Postgres error code raised on the
// (room_id, block_date) unique constraint.
const uniqueViolation = "23505"

// BlockRange inserts one row per night in a single transaction. The ON
// CONFLICT clause upserts rows already owned by the same booking (or, for
// administrator blocks, any ownerless row) and silently skips rows held by a
// different owner; a skipped row makes the affected count fall short of the
// night count, and the whole transaction rolls back with ErrBlockConflict.
func (r *blockRepository) BlockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time, reason domain.BlockReason, bookingID *int32, source, notes string) error {
	nights := calendar.EnumerateNights(checkIn, checkOut)
	if len(nights) == 0 {
		return fmt.Errorf("block range: %w", domain.ErrInvalidRange)
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO date_blocks (room_id, block_date, reason, booking_id, source, notes, created_on) VALUES `)
	args := make([]interface{}, 0, len(nights)*7)
	now := time.Now()
	for i, night := range nights {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, roomID, night, reason, bookingID, source, notes, now)
	}
	sb.WriteString(` ON CONFLICT (room_id, block_date) DO UPDATE
		SET notes = EXCLUDED.notes, source = EXCLUDED.source
		WHERE date_blocks.booking_id IS NOT DISTINCT FROM EXCLUDED.booking_id`)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return fmt.Errorf("room %d: %w", roomID, domain.ErrBlockConflict)
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(nights)) {
		return fmt.Errorf("room %d: %d of %d nights already held: %w",
			roomID, int64(len(nights))-affected, len(nights), domain.ErrBlockConflict)
	}
	return tx.Commit()
}

func (r *blockRepository) UnblockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (int64, error) {
	if calendar.NightsBetween(checkIn, checkOut) <= 0 {
		return 0, fmt.Errorf("unblock range: %w", domain.ErrInvalidRange)
	}
	// booking_id IS NULL keeps booking-owned blocks immune; those are only
	// removed through the booking lifecycle.
	query := `DELETE FROM date_blocks
	          WHERE room_id = $1 AND block_date >= $2 AND block_date < $3 AND booking_id IS NULL`
	res, err := r.db.ExecContext(ctx, query, roomID, calendar.Normalize(checkIn), calendar.Normalize(checkOut))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *blockRepository) DeleteBlocksForBooking(ctx context.Context, bookingID int32) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM date_blocks WHERE booking_id = $1`, bookingID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *blockRepository) ListBlocks(ctx context.Context, roomIDs []int32, start, end time.Time) ([]domain.DateBlock, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, room_id, block_date, reason, booking_id, source, notes, created_on
	          FROM date_blocks
	          WHERE room_id = ANY($1) AND block_date >= $2 AND block_date < $3
	          ORDER BY room_id, block_date`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(roomIDs), calendar.Normalize(start), calendar.Normalize(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.DateBlock
	for rows.Next() {
		var b domain.DateBlock
		if err := rows.Scan(&b.ID, &b.RoomID, &b.Date, &b.Reason, &b.BookingID, &b.Source, &b.Notes, &b.CreatedOn); err != nil {
			return nil, err
		}
		b.Date = calendar.Normalize(b.Date)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *blockRepository) CountBlocksForBooking(ctx context.Context, bookingID int32) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM date_blocks WHERE booking_id = $1`, bookingID).Scan(&count)
	return count, err
}
