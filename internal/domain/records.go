package domain

import (
	"time"
)

// ProjectStatus enumerates the lifecycle states of an upstream project
// record. The engine only needs to tell terminal states from active ones.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectFinalized ProjectStatus = "finalized"
	ProjectCancelled ProjectStatus = "cancelled"
)

// IsTerminal reports whether normal time logging is blocked for the project.
func (s ProjectStatus) IsTerminal() bool {
	return s == ProjectFinalized || s == ProjectCancelled
}

// TaskStatus enumerates the lifecycle states of an upstream task record.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// IsTerminal reports whether the task no longer accepts tracked time.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

// Project is a read-only projection of an upstream project record.
// The engine consumes it; its lifecycle belongs to the dashboard CRUD layer.
type Project struct {
	ID          string
	Name        string
	Status      ProjectStatus
	Revenue     float64
	PlannedCost float64
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     string
	CreatedAt   time.Time
}

// Task is a read-only projection of an upstream task record. Owner may hold
// either an actor id or a display name; resolve it at the directory boundary.
type Task struct {
	ID              string
	ProjectID       string
	Name            string
	Owner           string
	Status          TaskStatus
	EstimateMinutes int
	DueDate         *time.Time
	CreatedAt       time.Time
}

// Member is an active (non-outsourced) team member who can log time.
type Member struct {
	ID   string
	Name string
}

// Compensation is a per-member monthly compensation figure. Records are
// matched by display name upstream, so the name is the key here too.
type Compensation struct {
	MemberName string
	Monthly    float64
}

// AuditRecord is one row of the activity feed written by mutating
// operations. Writes are fire-and-forget from the engine's perspective.
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
