package validation

import (
	"strings"
	"time"

	"workload-engine/internal/domain"
)

// Validator provides common validation utilities shared by the entity
// validators.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsPositiveMinutes checks that a duration is at least one whole minute
func (v *Validator) IsPositiveMinutes(minutes int) bool {
	return minutes >= 1
}

// IsValidSource checks that an entry source tag is one of the known values
func (v *Validator) IsValidSource(source domain.EntrySource) bool {
	return source.IsValid()
}

// IsFutureDate reports whether the calendar day of t falls strictly after
// the calendar day of today
func (v *Validator) IsFutureDate(t time.Time, today time.Time) bool {
	return domain.DateOnly(t).After(domain.DateOnly(today))
}

// IsReasonableDate checks if a date is within reasonable bounds: from ten
// years ago up to one year ahead
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := time.Now()
	tenYearsAgo := now.AddDate(-10, 0, 0)
	oneYearFromNow := now.AddDate(1, 0, 0)

	return t.After(tenYearsAgo) && t.Before(oneYearFromNow)
}

// IsValidTimeRange checks if start time is before end time
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true
	}
	return startTime.Before(*endTime)
}

// IsValidWeeklyHours checks that a capacity figure is sane: non-negative and
// within a single week
func (v *Validator) IsValidWeeklyHours(hours float64) bool {
	return hours >= 0 && hours <= 168
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
