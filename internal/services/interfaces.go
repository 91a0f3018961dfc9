package services

import (
	"context"
	"time"

	"workload-engine/internal/domain"
)

const (
	// OverCapacityFactor is the tolerance applied before an actor or week
	// counts as over capacity: load above capacity × 1.1 trips the flag.
	OverCapacityFactor = 1.1

	// OverBudgetFactor is the tolerance applied before a project counts as
	// over budget: tracked cost above planned × 1.2 trips the flag.
	OverBudgetFactor = 1.2

	// DefaultForgottenTimerMinutes is the elapsed-time threshold after which
	// a running timer is reported as probably forgotten.
	DefaultForgottenTimerMinutes = 240

	// DefaultForecastWeeks is the horizon of the capacity forecast.
	DefaultForecastWeeks = 8

	// UnassignedProjectLabel is the timesheet bucket for entries without a
	// project reference.
	UnassignedProjectLabel = "Unassigned"

	// NeutralGanttColor is used when the status color table has no entry.
	NeutralGanttColor = "#9ca3af"

	// DefaultActivityFeedLimit caps the activity feed when the caller does
	// not ask for a specific length.
	DefaultActivityFeedLimit = 50
)

// Capability is a caller-held permission injected into engine operations.
// Callers resolve roles to capabilities; the engine never compares role
// names.
type Capability string

const (
	// CapOverrideTerminal allows starting timers against finalized or
	// cancelled projects and completed tasks.
	CapOverrideTerminal Capability = "override_terminal"

	// CapManageEntries allows mutating time entries owned by other actors.
	CapManageEntries Capability = "manage_entries"
)

// CapabilitySet is the set of capabilities a caller holds.
type CapabilitySet map[Capability]bool

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, cap := range caps {
		set[cap] = true
	}
	return set
}

// Has reports whether the set contains the capability.
func (s CapabilitySet) Has(cap Capability) bool {
	return s[cap]
}

// StartInput carries the parameters of a timer start.
type StartInput struct {
	ActorID      string
	ProjectID    string
	TaskID       string
	Description  string
	Billable     bool
	Capabilities CapabilitySet
}

// StopResult is the outcome of stopping a timer.
type StopResult struct {
	Entry           *domain.TimeEntry
	DurationMinutes int
}

// TimerWarning describes one probably-forgotten running timer.
type TimerWarning struct {
	ActorID        string
	ActorName      string
	ProjectID      string
	StartedAt      time.Time
	ElapsedMinutes int
}

// EntryInput carries the parameters of a manual time entry.
type EntryInput struct {
	ActorID     string
	ProjectID   string
	TaskID      string
	Date        time.Time
	Minutes     int
	Description string
	Billable    bool
}

// EntryPatch holds partial updates to an existing entry. Nil fields are
// left unchanged.
type EntryPatch struct {
	ProjectID   *string
	TaskID      *string
	Date        *time.Time
	Minutes     *int
	Description *string
	Billable    *bool
}

// EntryQuery filters time entry listings.
type EntryQuery struct {
	ActorID   string
	ProjectID string
	TaskID    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Source    domain.EntrySource
}

// UtilizationSnapshot is the derived weekly load picture for one actor.
// With zero capacity the percentage fields are 0 and the over-capacity
// flags stay false: there is no threshold to measure against.
type UtilizationSnapshot struct {
	ActorID         string
	ActorName       string
	WeekStart       time.Time
	PlannedMinutes  int
	TrackedMinutes  int
	CapacityMinutes int
	UtilizationPct  int
	PlannedPct      int
	OverCapacity    bool
	OverPlanned     bool
}

// ProjectCostSnapshot is the derived cost picture for one project.
type ProjectCostSnapshot struct {
	ProjectID      string
	ProjectName    string
	Revenue        float64
	PlannedCost    float64
	TrackedCost    float64
	TrackedMinutes int
	VarianceCost   float64
	VariancePct    int
	MarginRealPct  int
	IsOverBudget   bool
}

// ForecastWeekStatus classifies a forecast week.
type ForecastWeekStatus string

const (
	ForecastOK      ForecastWeekStatus = "ok"
	ForecastWarning ForecastWeekStatus = "warning"
)

// ForecastWeek is one week of the team capacity projection.
type ForecastWeek struct {
	WeekStart            time.Time
	TotalCapacityMinutes int
	TotalPlannedMinutes  int
	GapMinutes           int
	UtilizationPct       int
	OverCapacityActors   []string
	Status               ForecastWeekStatus

	// IncludesUndatedBacklog marks future weeks whose planned load carries
	// estimates of tasks without a due date. Those estimates land in every
	// future week, so flagged weeks share backlog load rather than owning
	// it exclusively.
	IncludesUndatedBacklog bool
}

// TimesheetRow is one project's minutes across the five workdays.
type TimesheetRow struct {
	ProjectID    string
	ProjectName  string
	DayMinutes   [5]int // Monday..Friday
	TotalMinutes int
}

// Timesheet is the week's project × day matrix for one actor.
type Timesheet struct {
	ActorID      string
	WeekStart    time.Time
	Rows         []TimesheetRow
	DayTotals    [5]int
	TotalMinutes int
	MissingDays  []time.Time
}

// GanttRowKind distinguishes project rows from task rows.
type GanttRowKind string

const (
	GanttProject GanttRowKind = "project"
	GanttTask    GanttRowKind = "task"
)

// GanttRow is one timeline bar.
type GanttRow struct {
	ID       string
	ParentID string // empty for project rows
	Label    string
	Kind     GanttRowKind
	Start    time.Time
	End      time.Time
	Status   string
	Color    string
}

// AlertSeverity ranks alerts.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is one item of the composed warning feed.
type Alert struct {
	Severity   AlertSeverity
	Title      string
	Action     string
	EntityType string
	EntityID   string
}

// TimerService enforces the timer lifecycle: at most one active timer per
// actor, with stop materializing a time entry.
type TimerService interface {
	Start(ctx context.Context, in StartInput) (*domain.ActiveTimer, error)
	Stop(ctx context.Context, actorID string) (*StopResult, error)
	RunningDuration(ctx context.Context, actorID string) (int, error)
	ForgottenTimers(ctx context.Context, thresholdMinutes int) ([]*TimerWarning, error)
}

// EntryService handles the durable log of completed work intervals.
type EntryService interface {
	Add(ctx context.Context, in EntryInput) (*domain.TimeEntry, error)
	Update(ctx context.Context, id string, patch EntryPatch, actorID string, caps CapabilitySet) (*domain.TimeEntry, error)
	Delete(ctx context.Context, id string, actorID string, caps CapabilitySet) error
	Query(ctx context.Context, q EntryQuery) ([]*domain.TimeEntry, error)
}

// CapacityService owns the weekly capacity configuration.
type CapacityService interface {
	WeeklyHours(ctx context.Context, actorID string) (float64, error)
	Config(ctx context.Context) (*domain.CapacityConfig, error)
	Update(ctx context.Context, cfg domain.CapacityConfig, actorID string) error
}

// UtilizationService derives tracked/planned load against capacity.
type UtilizationService interface {
	WeeklyUtilization(ctx context.Context, actorID string, weekStart time.Time) (*UtilizationSnapshot, error)
	TeamUtilization(ctx context.Context, weekStart time.Time) ([]*UtilizationSnapshot, error)
}

// CostService derives hourly rates and project cost metrics.
type CostService interface {
	HourlyRate(ctx context.Context, actorID string) (float64, error)
	ProjectTrackedCost(ctx context.Context, projectID string) (float64, error)
	ProjectTrackedMinutes(ctx context.Context, projectID string) (int, error)
	CostMetrics(ctx context.Context, projectID string) (*ProjectCostSnapshot, error)
}

// ForecastService projects team capacity against planned load.
type ForecastService interface {
	Forecast(ctx context.Context, weeksAhead int) ([]*ForecastWeek, error)
}

// TimesheetService reshapes a week's entries into a project × day matrix.
type TimesheetService interface {
	WeeklyTimesheet(ctx context.Context, actorID string, weekStart time.Time) (*Timesheet, error)
}

// GanttService derives timeline rows for projects and tasks.
type GanttService interface {
	GanttRows(ctx context.Context) ([]*GanttRow, error)
}

// AlertService composes warnings from all derived views.
type AlertService interface {
	GenerateAlerts(ctx context.Context) ([]*Alert, error)
}

// ActivityService reads the persisted activity feed.
type ActivityService interface {
	Recent(ctx context.Context, limit int) ([]*domain.AuditRecord, error)
}
