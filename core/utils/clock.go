package utils

import (
	"fmt"
	"time"
)

// EndOfDay is the "24:00" closing time.
const EndOfDay = 24 * 60

// ParseClock parses a zero-padded 24h "HH:MM" string into minutes after
// midnight. "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return EndOfDay, nil
	}
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AtClock returns the instant minutes after midnight on day's calendar date
// in loc.
func AtClock(day time.Time, minutes int, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, loc)
}
