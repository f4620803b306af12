// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimeParam parses a query-string timestamp.
//
// Accepted forms are RFC 3339 ("2025-03-01T10:00:00-03:00") and a bare date
// ("2025-03-01"), the latter taken as midnight in loc. An empty value yields
// the zero time and no error.
//
// Example:
//
//	from, err := utils.ParseTimeParam(c.Query("from"), time.UTC)
func ParseTimeParam(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD or RFC 3339", s)
}

// EndOfDayIfDate moves a bare-date upper bound to the last instant of that
// day so that "to=2025-03-01" includes the whole day.
func EndOfDayIfDate(raw string, t time.Time) time.Time {
	if t.IsZero() || len(strings.TrimSpace(raw)) != len(time.DateOnly) {
		return t
	}
	return t.Add(24*time.Hour - time.Nanosecond)
}
