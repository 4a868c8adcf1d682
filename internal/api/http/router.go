package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"resort-booking-backend/internal/service"
)

// NewRouter wires all HTTP routes. Guest-facing endpoints sit alongside the
// admin calendar surface; authentication is handled by the deployment's edge,
// not here.
func NewRouter(
	availability service.AvailabilityService,
	blocks service.BlockService,
	bookings service.BookingService,
) *mux.Router {
	availabilityHandler := NewAvailabilityHandler(availability)
	bookingHandler := NewBookingHandler(bookings)
	calendarHandler := NewCalendarHandler(blocks)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Guest booking UI
	api.HandleFunc("/categories", availabilityHandler.HandleListCategories).Methods(http.MethodGet)
	api.HandleFunc("/availability", availabilityHandler.HandleCheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/availability/fully-booked", availabilityHandler.HandleFullyBookedDays).Methods(http.MethodGet)
	api.HandleFunc("/quotes", bookingHandler.HandleQuote).Methods(http.MethodPost)
	api.HandleFunc("/bookings", bookingHandler.HandleCreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.HandleGetBooking).Methods(http.MethodGet)

	// Admin back-office
	api.HandleFunc("/bookings/{id:[0-9]+}/status", bookingHandler.HandleTransition).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/convert", bookingHandler.HandleConvertEnquiry).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/confirm", bookingHandler.HandleConfirm).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.HandleCancel).Methods(http.MethodPost)
	api.HandleFunc("/calendar/blocks", calendarHandler.HandleListBlockedDates).Methods(http.MethodGet)
	api.HandleFunc("/admin/blocks", calendarHandler.HandleBlockRange).Methods(http.MethodPost)
	api.HandleFunc("/admin/blocks", calendarHandler.HandleUnblockRange).Methods(http.MethodDelete)

	// Channel-manager feed
	api.HandleFunc("/channel/blocks", bookingHandler.HandleChannelImport).Methods(http.MethodPost)

	return r
}
