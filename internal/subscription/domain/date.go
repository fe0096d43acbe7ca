package domain

import (
	"strings"
	"time"
)

// ParseDate parses an ISO 8601 calendar date as midnight in loc.
func ParseDate(field, value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, &ParseError{Field: field, Value: value}
	}
	t, err := time.ParseInLocation(DateLayout, trimmed, loc)
	if err != nil {
		return time.Time{}, &ParseError{Field: field, Value: value, Err: err}
	}
	return t, nil
}

// FormatDate renders t as an ISO 8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
