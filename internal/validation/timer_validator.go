package validation

// TimerValidator provides validation for timer lifecycle operations.
type TimerValidator struct {
	validator *Validator
}

// NewTimerValidator creates a new timer validator
func NewTimerValidator() *TimerValidator {
	return &TimerValidator{
		validator: NewValidator(),
	}
}

// ValidateStart validates the inputs to a timer start
func (tv *TimerValidator) ValidateStart(actorID, projectID string) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(actorID) {
		validationError.AddRequiredError("actor_id")
	}
	if !tv.validator.IsNonEmptyString(projectID) {
		validationError.AddRequiredError("project_id")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateActorID validates a bare actor id
func (tv *TimerValidator) ValidateActorID(actorID string) error {
	if !tv.validator.IsNonEmptyString(actorID) {
		validationError := NewValidationError()
		validationError.AddRequiredError("actor_id")
		return validationError
	}
	return nil
}

// ValidateCapacityHours validates one weekly-hours figure
func (tv *TimerValidator) ValidateCapacityHours(field string, hours float64) error {
	if !tv.validator.IsValidWeeklyHours(hours) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError(field, hours, "must be between 0 and 168 hours")
		return validationError
	}
	return nil
}
