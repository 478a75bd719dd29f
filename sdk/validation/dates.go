package validation

import (
	"fmt"
	"time"
)

var dueDateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseInstant parses a date or date-time string. Inputs without an offset
// are read as UTC.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// ParseCalendarDate parses s and keeps only its calendar day, expressed
// as UTC midnight. For date-time inputs the day is taken in the offset
// the caller wrote, so 2025-03-01T23:30:00-05:00 is March 1.
func ParseCalendarDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// CalendarDate returns t's year, month and day at UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
