package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns midnight UTC of that
// calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateDay(t), nil
}

func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RentalDays counts billable days between two calendar dates; end is the
// return day and is not billed.
func RentalDays(start, end time.Time) int {
	return int(TruncateDay(end).Sub(TruncateDay(start)).Hours() / 24)
}
