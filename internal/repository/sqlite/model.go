package sqlite

import "time"

// TimeEntry is the database model for a completed work interval.
type TimeEntry struct {
	ID              string
	ActorID         string
	ProjectID       string
	TaskID          string // empty string when the entry has no task
	EntryDate       time.Time
	StartTime       *time.Time // pointer to allow NULL values
	EndTime         *time.Time
	DurationMinutes int
	Description     string
	Billable        bool
	Source          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ActiveTimer is the database model for an in-progress timer. The actor id
// is the primary key, which enforces the one-timer-per-actor invariant at
// the storage layer.
type ActiveTimer struct {
	ActorID     string
	ProjectID   string
	TaskID      string
	StartedAt   time.Time
	Description string
	Billable    bool
}

// CapacityOverride is one per-actor weekly-hours override row.
type CapacityOverride struct {
	ActorID     string
	WeeklyHours float64
}

// CapacityConfig is the full stored capacity configuration: the single
// default row plus all override rows.
type CapacityConfig struct {
	DefaultWeeklyHours float64
	Overrides          []CapacityOverride
}

// AuditRecord is the database model for one activity-feed row.
type AuditRecord struct {
	ID         int64
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	EntityName string
	Reason     string
	CreatedAt  time.Time
}
