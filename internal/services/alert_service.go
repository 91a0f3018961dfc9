package services

import (
	"context"
	"fmt"
	"time"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
	"workload-engine/pkg/logger"
)

// AlertConfig names the thresholds the alert feed is built with.
type AlertConfig struct {
	// ForgottenTimerMinutes is the running time beyond which a timer is
	// assumed forgotten.
	ForgottenTimerMinutes int
}

// DefaultAlertConfig returns the stock thresholds.
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{ForgottenTimerMinutes: DefaultForgottenTimerMinutes}
}

// alertServiceImpl implements the AlertService interface
type alertServiceImpl struct {
	repo        sqlite.Repository
	dir         directory.Directory
	timers      TimerService
	cost        CostService
	utilization UtilizationService
	mapper      *domain.Mapper
	cfg         AlertConfig
	now         func() time.Time
}

// NewAlertService creates a new AlertService instance
func NewAlertService(repo sqlite.Repository, dir directory.Directory, timers TimerService, cost CostService, utilization UtilizationService, cfg AlertConfig) AlertService {
	return &alertServiceImpl{
		repo:        repo,
		dir:         dir,
		timers:      timers,
		cost:        cost,
		utilization: utilization,
		mapper:      domain.NewMapper(),
		cfg:         cfg,
		now:         time.Now,
	}
}

// GenerateAlerts composes the warning feed from all derived views. Alerts
// are appended in source order without deduplication; callers may re-sort
// by severity.
func (a *alertServiceImpl) GenerateAlerts(ctx context.Context) ([]*Alert, error) {
	alerts := make([]*Alert, 0)

	forgotten, err := a.forgottenTimerAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, forgotten...)

	missing, err := a.missingTimesheetAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, missing...)

	budget, err := a.budgetAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, budget...)

	capacity, err := a.capacityAlerts(ctx)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, capacity...)

	log := logger.L()
	log.Debug().Int("count", len(alerts)).Msg("alert feed generated")
	return alerts, nil
}

func (a *alertServiceImpl) forgottenTimerAlerts(ctx context.Context) ([]*Alert, error) {
	warnings, err := a.timers.ForgottenTimers(ctx, a.cfg.ForgottenTimerMinutes)
	if err != nil {
		return nil, err
	}

	alerts := make([]*Alert, 0, len(warnings))
	for _, warning := range warnings {
		alerts = append(alerts, &Alert{
			Severity:   SeverityWarning,
			Title:      fmt.Sprintf("%s has a timer running for %s", warning.ActorName, FormatMinutes(warning.ElapsedMinutes)),
			Action:     "Stop the timer and correct the entry if needed",
			EntityType: "timer",
			EntityID:   warning.ActorID,
		})
	}
	return alerts, nil
}

// missingTimesheetAlerts notices team members with nothing logged yesterday.
// Skipped entirely when yesterday was not a workday.
func (a *alertServiceImpl) missingTimesheetAlerts(ctx context.Context) ([]*Alert, error) {
	yesterday := domain.DateOnly(a.now()).AddDate(0, 0, -1)
	if !IsWorkday(yesterday) {
		return nil, nil
	}

	roster, err := a.dir.Roster(ctx)
	if err != nil {
		return nil, err
	}

	var alerts []*Alert
	for _, member := range roster {
		entries, err := entriesInWindow(ctx, a.repo, a.mapper, member.ID, yesterday, yesterday)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, entry := range entries {
			total += entry.DurationMinutes
		}
		if total == 0 {
			alerts = append(alerts, &Alert{
				Severity:   SeverityInfo,
				Title:      fmt.Sprintf("%s logged no time yesterday", member.Name),
				Action:     "Remind them to fill in their timesheet",
				EntityType: "member",
				EntityID:   member.ID,
			})
		}
	}
	return alerts, nil
}

// budgetAlerts raises criticals for running projects whose tracked cost
// blew past the planned budget.
func (a *alertServiceImpl) budgetAlerts(ctx context.Context) ([]*Alert, error) {
	projects, err := a.dir.Projects(ctx)
	if err != nil {
		return nil, err
	}

	var alerts []*Alert
	for _, project := range projects {
		if project.Status.IsTerminal() || project.PlannedCost <= 0 {
			continue
		}
		metrics, err := a.cost.CostMetrics(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		if !metrics.IsOverBudget {
			continue
		}
		alerts = append(alerts, &Alert{
			Severity:   SeverityCritical,
			Title:      fmt.Sprintf("%s is over budget: %.2f tracked vs %.2f planned", project.Name, metrics.TrackedCost, metrics.PlannedCost),
			Action:     "Review the project scope or renegotiate the budget",
			EntityType: "project",
			EntityID:   project.ID,
		})
	}
	return alerts, nil
}

func (a *alertServiceImpl) capacityAlerts(ctx context.Context) ([]*Alert, error) {
	snapshots, err := a.utilization.TeamUtilization(ctx, a.now())
	if err != nil {
		return nil, err
	}

	var alerts []*Alert
	for _, snapshot := range snapshots {
		if !snapshot.OverCapacity {
			continue
		}
		alerts = append(alerts, &Alert{
			Severity:   SeverityWarning,
			Title:      fmt.Sprintf("%s is at %d%% of capacity this week", snapshot.ActorName, snapshot.UtilizationPct),
			Action:     "Rebalance assignments or extend deadlines",
			EntityType: "member",
			EntityID:   snapshot.ActorID,
		})
	}
	return alerts, nil
}
