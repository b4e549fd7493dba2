package models

import "time"

// DateLayout is the calendar date format used by logbook exports
const DateLayout = "2006-01-02"

// Day is one calendar day. Dates are kept at UTC midnight so day arithmetic is exact.
const Day = 24 * time.Hour

// parseLayout accepts months and days with or without zero padding
const parseLayout = "2006-1-2"

// ParseDate parses a YYYY-MM-DD calendar date. 2024-6-1 is read as 2024-06-01.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(parseLayout, s)
}

// Civil drops the clock and zone of t, keeping its local calendar date at UTC midnight
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days returns a duration of n calendar days
func Days(n int) time.Duration {
	return time.Duration(n) * Day
}

// DaysBetween returns the number of whole days from a to b
func DaysBetween(a, b time.Time) int {
	return int(Civil(b).Sub(Civil(a)) / Day)
}
