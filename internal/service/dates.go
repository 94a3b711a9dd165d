package service

import (
	"fmt"
	"time"

	"backend/internal/apperrors"
)

const dateLayout = "2006-01-02"

// parseDate parses an ISO date string to a UTC midnight time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD)", apperrors.ErrInvalidInput, s)
	}
	return t, nil
}

// dateOnly truncates a timestamp to its UTC calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rentalDays returns the billable day count for a date range. Same-day
// rentals bill one day.
func rentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}
