// Package dates provides canonical date/datetime parsing helpers.
//
// This package exists to avoid duplicating date parsing logic across:
// - front matter timestamp resolution
// - session report timestamps
// - CLI output formatting
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Canonical layouts used throughout the vault.
const (
	DateLayout            = "2006-01-02"
	DatetimeLayout        = "2006-01-02T15:04"
	DatetimeSecondsLayout = "2006-01-02T15:04:05"
)

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.Parse(DateLayout, s)
}

// ParseDatetime parses a datetime in one of the accepted formats.
//
// Accepted formats:
// - RFC3339 (e.g. 2025-01-01T10:30:00Z, 2025-06-15T14:00:00+05:00)
// - YYYY-MM-DDTHH:MM
// - YYYY-MM-DDTHH:MM:SS
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid datetime: empty")
	}

	formats := []string{
		time.RFC3339,
		DatetimeLayout,
		DatetimeSecondsLayout,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime: %q", s)
}

// ParseTimestamp parses any scalar that YAML front matter commonly uses for
// dates: a plain date, one of the datetime formats, or the space-separated
// forms the YAML timestamp type allows. Returns false when the string is not
// a recognizable timestamp.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if dateRegex.MatchString(s) {
		t, err := time.Parse(DateLayout, s)
		return t, err == nil
	}
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		DatetimeSecondsLayout,
		DatetimeLayout,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
