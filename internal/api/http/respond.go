package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/logger"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	if ve := domain.AsValidationError(err); ve != nil {
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: ve.Fields()})
		return
	}
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoAvailability):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "no rooms available for the selected dates, please try different dates"})
	case errors.Is(err, domain.ErrBlockConflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "the selected dates were just taken, please try again"})
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// paiseToDecimal renders a paise amount as a decimal rupee string, the price
// format the guest UI expects.
func paiseToDecimal(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}
