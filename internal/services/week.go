package services

import (
	"fmt"
	"math"
	"time"

	"workload-engine/internal/domain"
)

// WeekStart rolls a date back to the Monday of its ISO week, at midnight.
func WeekStart(t time.Time) time.Time {
	day := domain.DateOnly(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Friday of the week starting at the given Monday.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 4)
}

// IsWorkday reports whether the date falls on Monday through Friday.
func IsWorkday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// workdayIndex returns 0..4 for Monday..Friday and -1 otherwise.
func workdayIndex(t time.Time) int {
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return -1
	}
	return int(wd) - int(time.Monday)
}

// roundPct computes round(n/d × 100) guarding against a zero denominator.
func roundPct(n, d float64) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(n / d * 100))
}

// round2 rounds a currency figure to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatMinutes renders a minute count as "3h 25m" or "45m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	rest := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, rest)
	}
	return fmt.Sprintf("%dm", rest)
}
