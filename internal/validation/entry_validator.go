package validation

import (
	"time"

	"workload-engine/internal/domain"
)

// EntryValidator provides validation for time entry operations.
type EntryValidator struct {
	validator *Validator
}

// NewEntryValidator creates a new time entry validator
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{
		validator: NewValidator(),
	}
}

// ValidateEntryForCreation validates a time entry before it is stored.
// today anchors the future-date check so callers control the clock.
func (ev *EntryValidator) ValidateEntryForCreation(entry domain.TimeEntry, today time.Time) error {
	validationError := NewValidationError()

	if !ev.validator.IsNonEmptyString(entry.ActorID) {
		validationError.AddRequiredError("actor_id")
	}
	if !ev.validator.IsNonEmptyString(entry.ProjectID) {
		validationError.AddRequiredError("project_id")
	}

	if entry.Date.IsZero() {
		validationError.AddRequiredError("date")
	} else if ev.validator.IsFutureDate(entry.Date, today) {
		validationError.AddInvalidValueError("date", entry.Date, "must not be in the future")
	}

	if !ev.validator.IsPositiveMinutes(entry.DurationMinutes) {
		validationError.AddInvalidValueError("duration_minutes", entry.DurationMinutes, "must be a positive integer")
	}

	if !ev.validator.IsValidSource(entry.Source) {
		validationError.AddInvalidValueError("source", entry.Source, "must be timer or manual")
	}

	if entry.StartTime != nil && !ev.validator.IsValidTimeRange(*entry.StartTime, entry.EndTime) {
		validationError.AddInvalidRangeError("time_range", map[string]interface{}{
			"start": entry.StartTime,
			"end":   entry.EndTime,
		}, "end time must be after start time")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateEntryID validates a time entry id
func (ev *EntryValidator) ValidateEntryID(id string) error {
	if !ev.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("entry_id")
		return validationError
	}
	return nil
}

// ValidateQueryRange validates an optional date range filter
func (ev *EntryValidator) ValidateQueryRange(dateFrom, dateTo *time.Time) error {
	if dateFrom == nil || dateTo == nil {
		return nil
	}
	if dateTo.Before(*dateFrom) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("date_range", map[string]interface{}{
			"from": *dateFrom,
			"to":   *dateTo,
		}, "end of range must not be before its start")
		return validationError
	}
	return nil
}
