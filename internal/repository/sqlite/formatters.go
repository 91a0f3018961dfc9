package sqlite

import (
	"time"
)

const dateLayout = "2006-01-02"

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent
// database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 string, returning
// nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// FormatDateForDB formats a calendar day as YYYY-MM-DD, dropping the clock
func FormatDateForDB(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseDateFromDB parses a YYYY-MM-DD date string from the database into a
// UTC midnight timestamp
func ParseDateFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
