package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, reference, guest_name, guest_email, guest_phone, category_id, room_id,
	check_in, check_out, num_adults, num_children, meal_plan_code, package_id, is_enquiry_only,
	status, source, notes, room_total_paise, extra_guest_paise, meal_plan_paise, package_paise,
	subtotal_paise, tax_paise, discount_paise, grand_total_paise, season_multiplier_bps,
	created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (reference, guest_name, guest_email, guest_phone, category_id, room_id,
	            check_in, check_out, num_adults, num_children, meal_plan_code, package_id, is_enquiry_only,
	            status, source, notes, room_total_paise, extra_guest_paise, meal_plan_paise, package_paise,
	            subtotal_paise, tax_paise, discount_paise, grand_total_paise, season_multiplier_bps,
	            created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
	            $19, $20, $21, $22, $23, $24, $25, $26, $27)
	          RETURNING id`
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		b.Reference, b.GuestName, b.GuestEmail, b.GuestPhone, b.CategoryID, b.RoomID,
		b.CheckIn, b.CheckOut, b.NumAdults, b.NumChildren, b.MealPlanCode, b.PackageID, b.IsEnquiryOnly,
		b.Status, b.Source, b.Notes, b.RoomTotalPaise, b.ExtraGuestPaise, b.MealPlanPaise, b.PackagePaise,
		b.SubtotalPaise, b.TaxPaise, b.DiscountPaise, b.GrandTotalPaise, b.SeasonMultiplierBps,
		b.CreatedOn, b.UpdatedOn,
	).Scan(&b.ID)
}

func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := scan(&b.ID, &b.Reference, &b.GuestName, &b.GuestEmail, &b.GuestPhone, &b.CategoryID, &b.RoomID,
		&b.CheckIn, &b.CheckOut, &b.NumAdults, &b.NumChildren, &b.MealPlanCode, &b.PackageID, &b.IsEnquiryOnly,
		&b.Status, &b.Source, &b.Notes, &b.RoomTotalPaise, &b.ExtraGuestPaise, &b.MealPlanPaise, &b.PackagePaise,
		&b.SubtotalPaise, &b.TaxPaise, &b.DiscountPaise, &b.GrandTotalPaise, &b.SeasonMultiplierBps,
		&b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	b.CheckIn = calendar.Normalize(b.CheckIn)
	b.CheckOut = calendar.Normalize(b.CheckOut)
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET room_id=$1, status=$2, notes=$3, discount_paise=$4, grand_total_paise=$5,
	            is_enquiry_only=$6, updated_on=$7
	          WHERE id=$8`
	b.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, b.RoomID, b.Status, b.Notes, b.DiscountPaise, b.GrandTotalPaise,
		b.IsEnquiryOnly, b.UpdatedOn, b.ID)
	return err
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY created_on`
	return r.list(ctx, query, status)
}

func (r *bookingRepository) ListHoldingInventory(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status IN ($1, $2) ORDER BY check_in`
	return r.list(ctx, query, domain.StatusBookingConfirmed, domain.StatusCheckedIn)
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
