package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/service"
)

// CalendarHandler serves the admin calendar: blocked dates plus manual holds
type CalendarHandler struct {
	blocks service.BlockService
}

func NewCalendarHandler(blocks service.BlockService) *CalendarHandler {
	return &CalendarHandler{blocks: blocks}
}

type blockDTO struct {
	RoomID    int32  `json:"room_id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	BookingID *int32 `json:"booking_id,omitempty"`
	Source    string `json:"source"`
	Notes     string `json:"notes,omitempty"`
}

// HandleListBlockedDates handles GET /calendar/blocks?room_ids=1,2&start=&end=
func (h *CalendarHandler) HandleListBlockedDates(w http.ResponseWriter, r *http.Request) {
	roomIDsParam := r.URL.Query().Get("room_ids")
	if roomIDsParam == "" {
		respondError(w, fmt.Errorf("missing room_ids parameter: %w", domain.ErrInvalidRange))
		return
	}
	var roomIDs []int32
	for _, part := range strings.Split(roomIDsParam, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 32)
		if err != nil {
			respondError(w, fmt.Errorf("invalid room id %q: %w", part, domain.ErrInvalidRange))
			return
		}
		roomIDs = append(roomIDs, int32(id))
	}
	start, err := calendar.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		respondError(w, fmt.Errorf("start: %w", domain.ErrInvalidRange))
		return
	}
	end, err := calendar.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		respondError(w, fmt.Errorf("end: %w", domain.ErrInvalidRange))
		return
	}

	blocks, err := h.blocks.ListBlockedDates(r.Context(), roomIDs, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]blockDTO, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockDTO{
			RoomID:    b.RoomID,
			Date:      calendar.FormatDate(b.Date),
			Reason:    string(b.Reason),
			BookingID: b.BookingID,
			Source:    b.Source,
			Notes:     b.Notes,
		})
	}
	respondJSON(w, http.StatusOK, map[string][]blockDTO{"blocks": out})
}

type manualBlockRequest struct {
	RoomID   int32  `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

// HandleBlockRange handles POST /admin/blocks (manual hold)
func (h *CalendarHandler) HandleBlockRange(w http.ResponseWriter, r *http.Request) {
	var body manualBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRange))
		return
	}
	checkIn, err := calendar.ParseDate(body.CheckIn)
	if err != nil {
		respondError(w, fmt.Errorf("check_in: %w", domain.ErrInvalidRange))
		return
	}
	checkOut, err := calendar.ParseDate(body.CheckOut)
	if err != nil {
		respondError(w, fmt.Errorf("check_out: %w", domain.ErrInvalidRange))
		return
	}
	if err := h.blocks.BlockRange(r.Context(), body.RoomID, checkIn, checkOut, domain.BlockReason(body.Reason), body.Notes); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "blocked"})
}

// HandleUnblockRange handles DELETE /admin/blocks
func (h *CalendarHandler) HandleUnblockRange(w http.ResponseWriter, r *http.Request) {
	var body manualBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrInvalidRange))
		return
	}
	checkIn, err := calendar.ParseDate(body.CheckIn)
	if err != nil {
		respondError(w, fmt.Errorf("check_in: %w", domain.ErrInvalidRange))
		return
	}
	checkOut, err := calendar.ParseDate(body.CheckOut)
	if err != nil {
		respondError(w, fmt.Errorf("check_out: %w", domain.ErrInvalidRange))
		return
	}
	removed, err := h.blocks.UnblockRange(r.Context(), body.RoomID, checkIn, checkOut)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}
