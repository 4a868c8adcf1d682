package domain

import "time"

type BookingStatus string

const (
	StatusNewEnquiry       BookingStatus = "new_enquiry"
	StatusEnquiryResponded BookingStatus = "enquiry_responded"
	StatusQuoteSent        BookingStatus = "quote_sent"
	StatusBookingConfirmed BookingStatus = "booking_confirmed"
	StatusCheckedIn        BookingStatus = "checked_in"
	StatusCheckedOut       BookingStatus = "checked_out"
	StatusCancelled        BookingStatus = "cancelled"
	StatusNoShow           BookingStatus = "no_show"
)

// forwardTransitions is the happy-path lifecycle. cancelled and no_show are
// additionally reachable from every pre-checked_out state, handled in
// CanTransitionTo rather than listed per state.
var forwardTransitions = map[BookingStatus][]BookingStatus{
	StatusNewEnquiry:       {StatusEnquiryResponded, StatusQuoteSent, StatusBookingConfirmed},
	StatusEnquiryResponded: {StatusQuoteSent, StatusBookingConfirmed},
	StatusQuoteSent:        {StatusBookingConfirmed},
	StatusBookingConfirmed: {StatusCheckedIn},
	StatusCheckedIn:        {StatusCheckedOut},
	StatusCheckedOut:       {},
	StatusCancelled:        {},
	StatusNoShow:           {},
}

// Valid reports whether s is a known lifecycle status.
func (s BookingStatus) Valid() bool {
	_, ok := forwardTransitions[s]
	return ok
}

// HoldsInventory reports whether a booking in this status must hold a
// contiguous run of date blocks on its assigned room.
func (s BookingStatus) HoldsInventory() bool {
	return s == StatusBookingConfirmed || s == StatusCheckedIn
}

// Terminal reports whether no further transitions are allowed.
func (s BookingStatus) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled || s == StatusNoShow
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle step.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if !s.Valid() || !target.Valid() || s == target {
		return false
	}
	if target == StatusCancelled || target == StatusNoShow {
		return !s.Terminal()
	}
	for _, next := range forwardTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Booking is a reservation or enquiry. Price fields are a frozen snapshot of
// the computed breakdown at creation time; all later reads use the snapshot,
// never live rates. Bookings are never deleted, only status-transitioned.
type Booking struct {
	ID            int32         `json:"id"`
	Reference     string        `json:"reference"`
	GuestName     string        `json:"guest_name"`
	GuestEmail    string        `json:"guest_email"`
	GuestPhone    string        `json:"guest_phone"`
	CategoryID    int32         `json:"category_id"`
	RoomID        *int32        `json:"room_id,omitempty"`
	CheckIn       time.Time     `json:"check_in"`
	CheckOut      time.Time     `json:"check_out"`
	NumAdults     int           `json:"num_adults"`
	NumChildren   int           `json:"num_children"`
	MealPlanCode  string        `json:"meal_plan_code"`
	PackageID     *int32        `json:"package_id,omitempty"`
	IsEnquiryOnly bool          `json:"is_enquiry_only"`
	Status        BookingStatus `json:"status"`
	Source        string        `json:"source"`
	Notes         string        `json:"notes"`

	// Price snapshot fields, captured at creation.
	RoomTotalPaise      int64 `json:"room_total_paise"`
	ExtraGuestPaise     int64 `json:"extra_guest_paise"`
	MealPlanPaise       int64 `json:"meal_plan_paise"`
	PackagePaise        int64 `json:"package_paise"`
	SubtotalPaise       int64 `json:"subtotal_paise"`
	TaxPaise            int64 `json:"tax_paise"`
	DiscountPaise       int64 `json:"discount_paise"`
	GrandTotalPaise     int64 `json:"grand_total_paise"`
	SeasonMultiplierBps int64 `json:"season_multiplier_bps"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
