package utils

import (
	"fmt"
	"time"
)

// Clock times inside the scheduler are plain minutes-of-day; activities
// render them as "HH:MM".

// ParseClock converts "HH:MM" to minutes since midnight. Malformed input
// returns -1 so callers can treat it as unknown.
func ParseClock(s string) int {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return -1
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// FormatClock renders minutes since midnight as "HH:MM", clamping into a
// single day.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > 23*60+59 {
		minutes = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DayCountInclusive counts calendar days between start and end, both ends
// included. Same-day ranges count as 1; inverted ranges as 0.
func DayCountInclusive(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

func UnixToTime(seconds int64) time.Time { return time.Unix(seconds, 0).UTC() }
