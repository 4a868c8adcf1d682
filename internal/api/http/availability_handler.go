package http

import (
	"fmt"
	"net/http"
	"strconv"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/service"
)

// AvailabilityHandler serves the guest-facing availability queries
type AvailabilityHandler struct {
	availability service.AvailabilityService
}

func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

func parseDateParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", fmt.Errorf("missing %s parameter: %w", name, domain.ErrInvalidRange)
	}
	return v, nil
}

type categoryDTO struct {
	ID            int32  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	BasePrice     string `json:"base_price"`
	ExtraAdult    string `json:"extra_adult"`
	ExtraChild    string `json:"extra_child"`
	BaseOccupancy int    `json:"base_occupancy"`
	MaxAdults     int    `json:"max_adults"`
	MaxChildren   int    `json:"max_children"`
	TotalRooms    int    `json:"total_rooms"`
}

// HandleListCategories handles GET /categories, the guest room-type picker.
func (h *AvailabilityHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.availability.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryDTO{
			ID:            c.ID,
			Name:          c.Name,
			Slug:          c.Slug,
			BasePrice:     paiseToDecimal(c.BasePricePaise),
			ExtraAdult:    paiseToDecimal(c.ExtraAdultPaise),
			ExtraChild:    paiseToDecimal(c.ExtraChildPaise),
			BaseOccupancy: c.BaseOccupancy,
			MaxAdults:     c.MaxAdults,
			MaxChildren:   c.MaxChildren,
			TotalRooms:    c.TotalRooms,
		})
	}
	respondJSON(w, http.StatusOK, map[string][]categoryDTO{"categories": out})
}

type availabilityResponse struct {
	Available      bool     `json:"available"`
	AvailableCount int      `json:"available_count"`
	TotalRooms     int      `json:"total_rooms"`
	RoomNumbers    []string `json:"room_numbers"`
}

// HandleCheckAvailability handles GET /availability?category_id=&check_in=&check_out=
func (h *AvailabilityHandler) HandleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 32)
	if err != nil {
		respondError(w, fmt.Errorf("invalid category_id: %w", domain.ErrNotFound))
		return
	}
	checkInStr, err := parseDateParam(r, "check_in")
	if err != nil {
		respondError(w, err)
		return
	}
	checkOutStr, err := parseDateParam(r, "check_out")
	if err != nil {
		respondError(w, err)
		return
	}
	checkIn, err := calendar.ParseDate(checkInStr)
	if err != nil {
		respondError(w, fmt.Errorf("check_in: %w", domain.ErrInvalidRange))
		return
	}
	checkOut, err := calendar.ParseDate(checkOutStr)
	if err != nil {
		respondError(w, fmt.Errorf("check_out: %w", domain.ErrInvalidRange))
		return
	}

	result, err := h.availability.CheckAvailability(r.Context(), int32(categoryID), checkIn, checkOut)
	if err != nil {
		respondError(w, err)
		return
	}
	resp := availabilityResponse{
		Available:      result.Available,
		AvailableCount: len(result.AvailableRooms),
		TotalRooms:     result.TotalRooms,
		RoomNumbers:    make([]string, 0, len(result.AvailableRooms)),
	}
	for _, room := range result.AvailableRooms {
		resp.RoomNumbers = append(resp.RoomNumbers, room.RoomNumber)
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleFullyBookedDays handles GET /availability/fully-booked, backing the
// guest calendar's disabled days.
func (h *AvailabilityHandler) HandleFullyBookedDays(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 32)
	if err != nil {
		respondError(w, fmt.Errorf("invalid category_id: %w", domain.ErrNotFound))
		return
	}
	startStr, err := parseDateParam(r, "start")
	if err != nil {
		respondError(w, err)
		return
	}
	endStr, err := parseDateParam(r, "end")
	if err != nil {
		respondError(w, err)
		return
	}
	start, err := calendar.ParseDate(startStr)
	if err != nil {
		respondError(w, fmt.Errorf("start: %w", domain.ErrInvalidRange))
		return
	}
	end, err := calendar.ParseDate(endStr)
	if err != nil {
		respondError(w, fmt.Errorf("end: %w", domain.ErrInvalidRange))
		return
	}

	days, err := h.availability.FullyBookedDays(r.Context(), int32(categoryID), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, calendar.FormatDate(d))
	}
	respondJSON(w, http.StatusOK, map[string][]string{"fully_booked_days": out})
}
