package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-engine/internal/errors"
	"workload-engine/internal/validation"
)

func TestHandleValidationError(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("actor")

	err := eh.Handle("start timer", ve)
	require.Error(t, err)
	assert.Equal(t, "failed to start timer: actor is required", err.Error())
}

func TestHandleAppError(t *testing.T) {
	eh := NewErrorHandler()

	err := eh.Handle("stop timer", errors.NewNotFoundError("active timer", "m1"))
	require.Error(t, err)
	assert.Equal(t, "failed to stop timer: active timer not found: m1", err.Error())
}

func TestHandleMasksDatabaseDetails(t *testing.T) {
	eh := NewErrorHandler()

	cause := stderrors.New("SQLITE_BUSY: database is locked")
	err := eh.Handle("add entry", errors.NewDatabaseError("insert entry", cause))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SQLITE_BUSY")
	assert.Contains(t, err.Error(), "A database error occurred")
}

func TestHandlePassesThroughPlainErrors(t *testing.T) {
	eh := NewErrorHandler()

	plain := stderrors.New("something odd")
	err := eh.Handle("query", plain)
	require.Error(t, err)
	assert.Equal(t, "failed to query: something odd", err.Error())
	assert.True(t, stderrors.Is(err, plain))
}

func TestHandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddInvalidValueError("minutes", -5, "must be positive")
	assert.Equal(t, "minutes has invalid value: must be positive", eh.HandleSimple(ve).Error())

	conflict := errors.NewConflictError("timer", "m1", "a timer is already running")
	assert.Equal(t, "conflict on timer m1: a timer is already running", eh.HandleSimple(conflict).Error())
}

func TestErrorClassification(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("project")

	assert.True(t, eh.IsValidationError(ve))
	assert.True(t, eh.IsValidationError(errors.NewValidationError("bad input", nil)))
	assert.False(t, eh.IsValidationError(stderrors.New("plain")))

	assert.True(t, eh.IsNotFoundError(errors.NewNotFoundError("entry", "42")))
	assert.False(t, eh.IsNotFoundError(errors.NewConflictError("timer", "m1", "running")))

	assert.True(t, eh.IsConflictError(errors.NewConflictError("timer", "m1", "running")))
	assert.False(t, eh.IsConflictError(errors.NewNotFoundError("entry", "42")))

	assert.Equal(t, "NOT_FOUND", eh.GetErrorCode(errors.NewNotFoundError("entry", "42")))
	assert.Equal(t, "CONFLICT", eh.GetErrorCode(errors.NewConflictError("timer", "m1", "running")))
}
