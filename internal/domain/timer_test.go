package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeRoundsToNearestMinute(t *testing.T) {
	started := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	timer := ActiveTimer{
		ActorID:   "m1",
		ProjectID: "p1",
		StartedAt: started,
		Billable:  true,
	}

	tests := []struct {
		name            string
		elapsed         time.Duration
		expectedMinutes int
	}{
		{"rounds down below half minute", 2*time.Minute + 5*time.Second, 2},
		{"rounds up above half minute", 2*time.Minute + 40*time.Second, 3},
		{"exact minutes unchanged", 25 * time.Minute, 25},
		{"floor of one for instant stop", 3 * time.Second, 1},
		{"floor of one for zero elapsed", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := timer.Materialize(started.Add(tt.elapsed))
			assert.Equal(t, tt.expectedMinutes, entry.DurationMinutes)
		})
	}
}

func TestMaterializeEntryFields(t *testing.T) {
	started := time.Date(2025, 6, 16, 22, 45, 0, 0, time.UTC)
	stopped := started.Add(90 * time.Minute)
	timer := ActiveTimer{
		ActorID:     "m1",
		ProjectID:   "p1",
		TaskID:      "t1",
		StartedAt:   started,
		Description: "late fix",
		Billable:    true,
	}

	entry := timer.Materialize(stopped)

	assert.Equal(t, "m1", entry.ActorID)
	assert.Equal(t, "p1", entry.ProjectID)
	assert.Equal(t, "t1", entry.TaskID)
	assert.Equal(t, SourceTimer, entry.Source)
	assert.True(t, entry.Billable)
	assert.Equal(t, "late fix", entry.Description)

	// The entry date is the start day, even when the stop crosses midnight.
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), entry.Date)
	require.NotNil(t, entry.StartTime)
	require.NotNil(t, entry.EndTime)
	assert.Equal(t, started, *entry.StartTime)
	assert.Equal(t, stopped, *entry.EndTime)
}

func TestElapsedMinutes(t *testing.T) {
	started := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	timer := ActiveTimer{ActorID: "m1", ProjectID: "p1", StartedAt: started}

	// Truncates, no floor: live display shows zero for the first minute.
	assert.Equal(t, 0, timer.ElapsedMinutes(started.Add(30*time.Second)))
	assert.Equal(t, 1, timer.ElapsedMinutes(started.Add(95*time.Second)))
	assert.Equal(t, 240, timer.ElapsedMinutes(started.Add(4*time.Hour)))
	assert.Equal(t, 0, timer.ElapsedMinutes(started.Add(-time.Minute)))
}

func TestActiveTimerIsValid(t *testing.T) {
	started := time.Now()

	assert.True(t, ActiveTimer{ActorID: "m1", ProjectID: "p1", StartedAt: started}.IsValid())
	assert.False(t, ActiveTimer{ProjectID: "p1", StartedAt: started}.IsValid())
	assert.False(t, ActiveTimer{ActorID: "m1", StartedAt: started}.IsValid())
	assert.False(t, ActiveTimer{ActorID: "m1", ProjectID: "p1"}.IsValid())
}

func TestDateOnly(t *testing.T) {
	stamp := time.Date(2025, 6, 16, 18, 42, 13, 500, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), DateOnly(stamp))
}

func TestCapacityConfigWeeklyHours(t *testing.T) {
	cfg := NewCapacityConfig()
	assert.Equal(t, DefaultWeeklyHours, cfg.WeeklyHours("anyone"))

	cfg.Overrides["m2"] = 32
	assert.Equal(t, 32.0, cfg.WeeklyHours("m2"))
	assert.Equal(t, DefaultWeeklyHours, cfg.WeeklyHours("m1"))
}

func TestCapacityConfigIsValid(t *testing.T) {
	cfg := NewCapacityConfig()
	assert.True(t, cfg.IsValid())

	cfg.Overrides["m1"] = -8
	assert.False(t, cfg.IsValid())

	cfg = CapacityConfig{DefaultWeeklyHours: -1}
	assert.False(t, cfg.IsValid())
}

func TestTimeEntryIsValid(t *testing.T) {
	entry := NewManualEntry("m1", "p1", time.Now(), 60)
	assert.True(t, entry.IsValid())

	broken := entry
	broken.DurationMinutes = 0
	assert.False(t, broken.IsValid())

	broken = entry
	broken.Source = "imported"
	assert.False(t, broken.IsValid())

	broken = entry
	broken.ActorID = ""
	assert.False(t, broken.IsValid())
}
