package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-engine/internal/domain"
)

func validEntry(today time.Time) domain.TimeEntry {
	return domain.TimeEntry{
		ActorID:         "m1",
		ProjectID:       "p1",
		Date:            domain.DateOnly(today),
		DurationMinutes: 90,
		Source:          domain.SourceManual,
	}
}

func TestValidateEntryForCreation(t *testing.T) {
	ev := NewEntryValidator()
	today := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	t.Run("valid entry passes", func(t *testing.T) {
		assert.NoError(t, ev.ValidateEntryForCreation(validEntry(today), today))
	})

	t.Run("missing actor and project", func(t *testing.T) {
		entry := validEntry(today)
		entry.ActorID = ""
		entry.ProjectID = "  "

		err := ev.ValidateEntryForCreation(entry, today)
		require.Error(t, err)
		ve, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Len(t, ve.GetFieldErrors("actor_id"), 1)
		assert.Len(t, ve.GetFieldErrors("project_id"), 1)
	})

	t.Run("future date rejected", func(t *testing.T) {
		entry := validEntry(today)
		entry.Date = today.AddDate(0, 0, 1)

		err := ev.ValidateEntryForCreation(entry, today)
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.Len(t, ve.GetFieldErrors("date"), 1)
	})

	t.Run("today with later clock time accepted", func(t *testing.T) {
		entry := validEntry(today)
		entry.Date = time.Date(2025, 6, 16, 23, 0, 0, 0, time.UTC)

		assert.NoError(t, ev.ValidateEntryForCreation(entry, today))
	})

	t.Run("zero date required", func(t *testing.T) {
		entry := validEntry(today)
		entry.Date = time.Time{}

		err := ev.ValidateEntryForCreation(entry, today)
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.Len(t, ve.GetFieldErrors("date"), 1)
	})

	t.Run("non-positive minutes rejected", func(t *testing.T) {
		for _, minutes := range []int{0, -15} {
			entry := validEntry(today)
			entry.DurationMinutes = minutes

			err := ev.ValidateEntryForCreation(entry, today)
			require.Error(t, err)
			ve := err.(*ValidationError)
			assert.Len(t, ve.GetFieldErrors("duration_minutes"), 1)
		}
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		entry := validEntry(today)
		entry.Source = "imported"

		err := ev.ValidateEntryForCreation(entry, today)
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.Len(t, ve.GetFieldErrors("source"), 1)
	})

	t.Run("inverted time range rejected", func(t *testing.T) {
		entry := validEntry(today)
		start := today
		end := today.Add(-time.Hour)
		entry.StartTime = &start
		entry.EndTime = &end

		err := ev.ValidateEntryForCreation(entry, today)
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.Len(t, ve.GetFieldErrors("time_range"), 1)
	})
}

func TestValidateEntryID(t *testing.T) {
	ev := NewEntryValidator()

	assert.NoError(t, ev.ValidateEntryID("abc-123"))
	assert.Error(t, ev.ValidateEntryID(""))
	assert.Error(t, ev.ValidateEntryID("   "))
}

func TestValidateQueryRange(t *testing.T) {
	ev := NewEntryValidator()
	from := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ev.ValidateQueryRange(&from, &to))
	assert.NoError(t, ev.ValidateQueryRange(nil, &to))
	assert.NoError(t, ev.ValidateQueryRange(&from, nil))
	assert.NoError(t, ev.ValidateQueryRange(nil, nil))
	assert.NoError(t, ev.ValidateQueryRange(&from, &from))
	assert.Error(t, ev.ValidateQueryRange(&to, &from))
}

func TestTimerValidator(t *testing.T) {
	tv := NewTimerValidator()

	assert.NoError(t, tv.ValidateStart("m1", "p1"))
	assert.Error(t, tv.ValidateStart("", "p1"))
	assert.Error(t, tv.ValidateStart("m1", ""))
	assert.Error(t, tv.ValidateStart("", ""))

	assert.NoError(t, tv.ValidateActorID("m1"))
	assert.Error(t, tv.ValidateActorID(" "))

	assert.NoError(t, tv.ValidateCapacityHours("default_weekly_hours", 32))
	assert.Error(t, tv.ValidateCapacityHours("default_weekly_hours", -4))
	assert.Error(t, tv.ValidateCapacityHours("override.m1", 200))
}
