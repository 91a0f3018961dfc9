package domain

import (
	"time"
)

// EntrySource tags how a time entry came into existence.
type EntrySource string

const (
	SourceTimer  EntrySource = "timer"
	SourceManual EntrySource = "manual"
)

// IsValid checks that the source is one of the known tags.
func (s EntrySource) IsValid() bool {
	return s == SourceTimer || s == SourceManual
}

// TimeEntry represents one completed interval of tracked work.
// This is a pure domain model without database-specific concerns.
type TimeEntry struct {
	ID              string
	ActorID         string
	ProjectID       string
	TaskID          string // empty when the entry is not tied to a task
	Date            time.Time
	StartTime       *time.Time
	EndTime         *time.Time
	DurationMinutes int
	Description     string
	Billable        bool
	Source          EntrySource
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewManualEntry creates a manually logged entry for the given actor.
func NewManualEntry(actorID, projectID string, date time.Time, minutes int) TimeEntry {
	return TimeEntry{
		ActorID:         actorID,
		ProjectID:       projectID,
		Date:            DateOnly(date),
		DurationMinutes: minutes,
		Billable:        true,
		Source:          SourceManual,
	}
}

// IsValid checks if the entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.ActorID == "" || te.ProjectID == "" {
		return false
	}
	if te.Date.IsZero() {
		return false
	}
	if te.DurationMinutes < 1 {
		return false
	}
	return te.Source.IsValid()
}

// SameDate reports whether the entry falls on the given calendar day.
func (te TimeEntry) SameDate(day time.Time) bool {
	y1, m1, d1 := te.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly strips the clock from a timestamp, leaving the calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
