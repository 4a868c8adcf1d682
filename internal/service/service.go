package service

import (
	"context"
	"time"

	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/pricing"
)

// AvailabilityResult backs the guest-facing "X of Y available" messaging.
type AvailabilityResult struct {
	Available      bool          `json:"available"`
	AvailableRooms []domain.Room `json:"available_rooms"`
	TotalRooms     int           `json:"total_rooms"`
}

type AvailabilityService interface {
	// ListCategories returns the active categories in display order, the
	// guest UI's room-type picker.
	ListCategories(ctx context.Context) ([]domain.RoomCategory, error)
	// FindAvailableRooms returns the rooms of the category with no block on
	// any night of [checkIn, checkOut), ordered by room number ascending.
	FindAvailableRooms(ctx context.Context, categoryID int32, checkIn, checkOut time.Time) ([]domain.Room, error)
	CheckAvailability(ctx context.Context, categoryID int32, checkIn, checkOut time.Time) (*AvailabilityResult, error)
	// FullyBookedDays returns the days in [start, end) on which every active
	// room of the category carries a block.
	FullyBookedDays(ctx context.Context, categoryID int32, start, end time.Time) ([]time.Time, error)
}

type BlockService interface {
	// BlockRange places an administrator-owned manual hold (no booking id).
	BlockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time, reason domain.BlockReason, notes string) error
	// UnblockRange removes administrator-owned blocks in the range;
	// booking-owned blocks are untouched.
	UnblockRange(ctx context.Context, roomID int32, checkIn, checkOut time.Time) (int64, error)
	ListBlockedDates(ctx context.Context, roomIDs []int32, start, end time.Time) ([]domain.DateBlock, error)
}

// CreateBookingInput is the guest (or admin) booking form.
type CreateBookingInput struct {
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	GuestPhone    string `json:"guest_phone"`
	CategoryID    int32  `json:"category_id"`
	CheckIn       string `json:"check_in"`  // YYYY-MM-DD
	CheckOut      string `json:"check_out"` // YYYY-MM-DD
	NumAdults     int    `json:"num_adults"`
	NumChildren   int    `json:"num_children"`
	MealPlanCode  string `json:"meal_plan_code"`
	PackageID     *int32 `json:"package_id,omitempty"`
	IsEnquiryOnly bool   `json:"is_enquiry_only"`
	// Confirm requests booking_confirmed instead of quote_sent for the
	// non-enquiry path.
	Confirm       bool   `json:"confirm"`
	DiscountPaise int64  `json:"discount_paise"`
	Source        string `json:"source"`
	Notes         string `json:"notes"`
}

// QuoteInput is CreateBookingInput minus guest identity: the pricing preview
// the guest sees before submitting.
type QuoteInput struct {
	CategoryID   int32  `json:"category_id"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	NumAdults    int    `json:"num_adults"`
	NumChildren  int    `json:"num_children"`
	MealPlanCode string `json:"meal_plan_code"`
	PackageID    *int32 `json:"package_id,omitempty"`
}

type BookingService interface {
	Quote(ctx context.Context, in QuoteInput) (*pricing.Breakdown, error)
	CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	// ConvertEnquiry moves an enquiry to quote_sent without assigning a room;
	// assignment only happens at confirmation time.
	ConvertEnquiry(ctx context.Context, id int32) (*domain.Booking, error)
	// ConfirmBooking re-runs availability, assigns a room and blocks its
	// dates. Quote-time availability is never reused.
	ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error)
	TransitionStatus(ctx context.Context, id int32, target domain.BookingStatus) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int32) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	// ImportChannelBlocks maps an external channel-manager reservation onto a
	// concrete room through the same availability and blocking path used by
	// guest bookings.
	ImportChannelBlocks(ctx context.Context, categorySlug, guestName, checkIn, checkOut string) (*domain.Booking, error)
}
