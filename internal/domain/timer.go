package domain

import (
	"time"
)

// ActiveTimer is the in-progress, not-yet-materialized work interval for one
// actor. At most one exists per actor; the actor id is the sole key.
type ActiveTimer struct {
	ActorID     string
	ProjectID   string
	TaskID      string
	StartedAt   time.Time
	Description string
	Billable    bool
}

// IsValid checks if the timer has valid data.
func (at ActiveTimer) IsValid() bool {
	return at.ActorID != "" && at.ProjectID != "" && !at.StartedAt.IsZero()
}

// ElapsedMinutes returns whole minutes elapsed since the timer started.
// Used for live display; no rounding floor is applied.
func (at ActiveTimer) ElapsedMinutes(now time.Time) int {
	elapsed := now.Sub(at.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed.Minutes())
}

// Materialize converts the timer into a completed time entry ending at the
// given instant. Duration is rounded to the nearest minute with a floor of
// one so that even the shortest tracked interval is billable.
func (at ActiveTimer) Materialize(stoppedAt time.Time) TimeEntry {
	minutes := int(stoppedAt.Sub(at.StartedAt).Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	started := at.StartedAt
	return TimeEntry{
		ActorID:         at.ActorID,
		ProjectID:       at.ProjectID,
		TaskID:          at.TaskID,
		Date:            DateOnly(at.StartedAt),
		StartTime:       &started,
		EndTime:         &stoppedAt,
		DurationMinutes: minutes,
		Description:     at.Description,
		Billable:        at.Billable,
		Source:          SourceTimer,
	}
}
