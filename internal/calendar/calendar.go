package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates across the API and storage.
const DateLayout = "2006-01-02"

// Normalize truncates t to a calendar date at UTC midnight. All date math in
// this package assumes normalized inputs; callers at the system boundary go
// through ParseDate which normalizes for them.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) into a normalized time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Normalize(t), nil
}

// FormatDate renders a date in ISO YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current calendar date at UTC midnight.
func Today() time.Time {
	return Normalize(time.Now().UTC())
}

// NightsBetween returns the number of occupied nights for a stay with the
// given check-in and check-out, checkout exclusive. A checkout on or before
// the check-in yields 0; callers must reject such stays as invalid.
func NightsBetween(checkIn, checkOut time.Time) int {
	in, out := Normalize(checkIn), Normalize(checkOut)
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// EnumerateNights returns one entry per occupied night of the half-open
// range [checkIn, checkOut). An empty or inverted range yields nil.
func EnumerateNights(checkIn, checkOut time.Time) []time.Time {
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil
	}
	in := Normalize(checkIn)
	dates := make([]time.Time, 0, nights)
	for d := in; d.Before(Normalize(checkOut)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// RangesOverlap reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return Normalize(aStart).Before(Normalize(bEnd)) && Normalize(bStart).Before(Normalize(aEnd))
}

// ContainsDate reports whether date falls inside the inclusive interval
// [start, end] used by seasons and package validity windows.
func ContainsDate(start, end, date time.Time) bool {
	d := Normalize(date)
	return !d.Before(Normalize(start)) && !d.After(Normalize(end))
}
