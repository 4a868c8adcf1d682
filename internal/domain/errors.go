package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange covers non-positive nights and malformed dates.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrNotFound covers unknown or inactive categories, rooms and bookings.
	ErrNotFound = errors.New("record not found")
	// ErrNoAvailability means zero candidate rooms at assignment time.
	ErrNoAvailability = errors.New("no rooms available")
	// ErrBlockConflict means the atomic block insert lost a race to a
	// concurrent writer for at least one night.
	ErrBlockConflict = errors.New("date block conflict")
	// ErrInvalidStatusTransition marks a disallowed lifecycle move.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ValidationError collects per-field input problems for guest-facing
// responses.
type ValidationError struct {
	fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.fields[field] = append(e.fields[field], msg)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.fields) > 0
}

func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %+v", e.fields)
}

// AsValidationError returns the wrapped *ValidationError, or nil.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
