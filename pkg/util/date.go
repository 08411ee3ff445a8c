package util

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the storage format of series dates.
const DateLayout = "2006-01-02"

// ParseTime tries RFC3339, RFC3339Nano, a plain date and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// FormatDate renders t as a UTC YYYY-MM-DD date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// NormalizeDate turns any timestamp ParseTime accepts into YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	t, ok := ParseTime(s)
	if !ok {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return FormatDate(t), nil
}

// QuarterLabel renders the calendar quarter of t as "Qn YY".
func QuarterLabel(t time.Time) string {
	t = t.UTC()
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d %02d", q, t.Year()%100)
}
