package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"

	SecondsPerMinute = 60
	SecondsPerHour   = 3600
)

var clockRegex = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

// TimeOfDay is a clock-only value stored as seconds since midnight.
// Clock arithmetic reduces to plain integer subtraction, so there is no
// calendar date involved anywhere.
type TimeOfDay int

// IsClock reports whether s is a strict "HH:MM" clock string.
func IsClock(s string) bool {
	return clockRegex.MatchString(s)
}

// ParseClock parses a strict "HH:MM" string into a TimeOfDay.
func ParseClock(s string) (TimeOfDay, error) {
	if !IsClock(s) {
		return 0, fmt.Errorf("invalid clock string %q", s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*SecondsPerHour + t.Minute()*SecondsPerMinute), nil
}

// ClockOf extracts the clock component of an instant.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*SecondsPerHour + t.Minute()*SecondsPerMinute + t.Second())
}

// String renders the value back to "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/SecondsPerHour, int(t)%SecondsPerHour/SecondsPerMinute)
}

// Sub returns the signed difference t - other in seconds.
func (t TimeOfDay) Sub(other TimeOfDay) int {
	return int(t) - int(other)
}

// On places the clock value on the given calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		int(t)/SecondsPerHour, int(t)%SecondsPerHour/SecondsPerMinute, int(t)%SecondsPerMinute, 0, date.Location())
}

// ParseDate parses a "YYYY-MM-DD" string into a midnight instant.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders an instant as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Midnight truncates an instant to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two instants fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddWorkingDays advances start by n working days, skipping Sundays. A permit
// of duration 1 ends on its start date (unless that date is a Sunday).
func AddWorkingDays(start time.Time, n int) time.Time {
	d := start
	remaining := n
	for remaining > 0 {
		if d.Weekday() != time.Sunday {
			remaining--
		}
		if remaining > 0 {
			d = d.AddDate(0, 0, 1)
		}
	}
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// FormatDuration renders a positive second count as an Indonesian phrase
// ("1 jam 30 menit"). Non-positive durations have no phrase; ok is false.
func FormatDuration(seconds int) (string, bool) {
	if seconds <= 0 {
		return "", false
	}

	hours := seconds / SecondsPerHour
	minutes := seconds % SecondsPerHour / SecondsPerMinute
	secs := seconds % SecondsPerMinute

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d jam", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d menit", minutes))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%d detik", secs))
	}

	return strings.Join(parts, " "), true
}
