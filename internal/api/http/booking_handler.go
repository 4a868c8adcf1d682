package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/pricing"
	"resort-booking-backend/internal/service"
)

// BookingHandler serves quotes, booking creation and lifecycle transitions
type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type breakdownDTO struct {
	NumNights       int    `json:"num_nights"`
	RoomTotal       string `json:"room_total"`
	ExtraGuestTotal string `json:"extra_guest_total"`
	MealPlanTotal   string `json:"meal_plan_total"`
	PackageTotal    string `json:"package_total"`
	Subtotal        string `json:"subtotal"`
	Tax             string `json:"tax"`
	GrandTotal      string `json:"grand_total"`
}

func toBreakdownDTO(b *pricing.Breakdown) breakdownDTO {
	return breakdownDTO{
		NumNights:       b.NumNights,
		RoomTotal:       paiseToDecimal(b.RoomTotal),
		ExtraGuestTotal: paiseToDecimal(b.ExtraGuestTotal),
		MealPlanTotal:   paiseToDecimal(b.MealPlanTotal),
		PackageTotal:    paiseToDecimal(b.PackageTotal),
		Subtotal:        paiseToDecimal(b.Subtotal),
		Tax:             paiseToDecimal(b.Tax),
		GrandTotal:      paiseToDecimal(b.GrandTotal),
	}
}

type bookingDTO struct {
	ID         int32  `json:"id"`
	Reference  string `json:"reference"`
	GuestName  string `json:"guest_name"`
	CategoryID int32  `json:"category_id"`
	RoomID     *int32 `json:"room_id,omitempty"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status"`
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	Discount   string `json:"discount"`
	GrandTotal string `json:"grand_total"`
}

func toBookingDTO(b *domain.Booking) bookingDTO {
	return bookingDTO{
		ID:         b.ID,
		Reference:  b.Reference,
		GuestName:  b.GuestName,
		CategoryID: b.CategoryID,
		RoomID:     b.RoomID,
		CheckIn:    calendar.FormatDate(b.CheckIn),
		CheckOut:   calendar.FormatDate(b.CheckOut),
		Status:     string(b.Status),
		Subtotal:   paiseToDecimal(b.SubtotalPaise),
		Tax:        paiseToDecimal(b.TaxPaise),
		Discount:   paiseToDecimal(b.DiscountPaise),
		GrandTotal: paiseToDecimal(b.GrandTotalPaise),
	}
}

// HandleQuote handles POST /quotes
func (h *BookingHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	var in service.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRange))
		return
	}
	breakdown, err := h.bookings.Quote(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBreakdownDTO(breakdown))
}

// HandleCreateBooking handles POST /bookings
func (h *BookingHandler) HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRange))
		return
	}
	booking, err := h.bookings.CreateBooking(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toBookingDTO(booking))
}

func bookingIDFromPath(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid booking id: %w", domain.ErrNotFound)
	}
	return int32(id), nil
}

// HandleGetBooking handles GET /bookings/{id}
func (h *BookingHandler) HandleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := bookingIDFromPath(r)
	if err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBookingDTO(booking))
}

// HandleTransition handles POST /bookings/{id}/status
func (h *BookingHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	id, err := bookingIDFromPath(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRange))
		return
	}
	target := domain.BookingStatus(body.Status)
	if !target.Valid() {
		respondError(w, fmt.Errorf("unknown status %q: %w", body.Status, domain.ErrInvalidStatusTransition))
		return
	}
	booking, err := h.bookings.TransitionStatus(r.Context(), id, target)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBookingDTO(booking))
}

// HandleConvertEnquiry handles POST /bookings/{id}/convert
func (h *BookingHandler) HandleConvertEnquiry(w http.ResponseWriter, r *http.Request) {
	id, err := bookingIDFromPath(r)
	if err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.bookings.ConvertEnquiry(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBookingDTO(booking))
}

// HandleConfirm handles POST /bookings/{id}/confirm
func (h *BookingHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := bookingIDFromPath(r)
	if err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.bookings.ConfirmBooking(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBookingDTO(booking))
}

// HandleCancel handles POST /bookings/{id}/cancel
func (h *BookingHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := bookingIDFromPath(r)
	if err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.bookings.CancelBooking(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBookingDTO(booking))
}

// HandleChannelImport handles POST /channel/blocks, the entry point for the
// external channel-manager feed.
func (h *BookingHandler) HandleChannelImport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CategorySlug string `json:"category_slug"`
		GuestName    string `json:"guest_name"`
		CheckIn      string `json:"check_in"`
		CheckOut     string `json:"check_out"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRange))
		return
	}
	booking, err := h.bookings.ImportChannelBlocks(r.Context(), body.CategorySlug, body.GuestName, body.CheckIn, body.CheckOut)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toBookingDTO(booking))
}
