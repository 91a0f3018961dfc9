package services

import (
	"context"
	"time"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
)

// CostConfig names the cost-model constants. The reference values are
// industry rules of thumb; hosts may override them through configuration.
type CostConfig struct {
	// OverheadFactor converts gross compensation to employer cost.
	OverheadFactor float64
	// WeeksPerMonth is the average number of weeks in a calendar month.
	WeeksPerMonth float64
	// MinimumHourlyRate substitutes for actors with no compensation record,
	// so cost estimation always produces a number.
	MinimumHourlyRate float64
	// RateOverrides holds explicit per-actor hourly rates.
	RateOverrides map[string]float64
}

// DefaultCostConfig returns the reference cost model.
func DefaultCostConfig() CostConfig {
	return CostConfig{
		OverheadFactor:    1.7,
		WeeksPerMonth:     4.33,
		MinimumHourlyRate: 50,
	}
}

// costServiceImpl implements the CostService interface
type costServiceImpl struct {
	repo     sqlite.Repository
	dir      directory.Directory
	capacity CapacityService
	mapper   *domain.Mapper
	cfg      CostConfig
}

// NewCostService creates a new CostService instance
func NewCostService(repo sqlite.Repository, dir directory.Directory, capacity CapacityService, cfg CostConfig) CostService {
	return &costServiceImpl{
		repo:     repo,
		dir:      dir,
		capacity: capacity,
		mapper:   domain.NewMapper(),
		cfg:      cfg,
	}
}

// HourlyRate derives the employer cost per tracked hour for an actor:
// monthly compensation × overhead, spread over the actor's monthly
// capacity. Falls back to the minimum rate when no compensation record
// matches, so dashboards always render a figure.
func (c *costServiceImpl) HourlyRate(ctx context.Context, actorID string) (float64, error) {
	if rate, ok := c.cfg.RateOverrides[actorID]; ok {
		return rate, nil
	}

	member, err := c.dir.Member(ctx, actorID)
	if err != nil {
		return c.cfg.MinimumHourlyRate, nil
	}

	monthly, found, err := c.dir.MonthlyCompensation(ctx, member.Name)
	if err != nil {
		return 0, err
	}
	if !found || monthly <= 0 {
		return c.cfg.MinimumHourlyRate, nil
	}

	weeklyHours, err := c.capacity.WeeklyHours(ctx, actorID)
	if err != nil {
		return 0, err
	}
	if weeklyHours <= 0 {
		return c.cfg.MinimumHourlyRate, nil
	}

	rate := (monthly * c.cfg.OverheadFactor) / (weeklyHours * c.cfg.WeeksPerMonth)
	return round2(rate), nil
}

// ProjectTrackedCost sums minutes/60 × actor rate over the project's
// entries.
func (c *costServiceImpl) ProjectTrackedCost(ctx context.Context, projectID string) (float64, error) {
	entries, err := c.projectEntries(ctx, projectID)
	if err != nil {
		return 0, err
	}

	rates := make(map[string]float64)
	total := 0.0
	for _, entry := range entries {
		rate, ok := rates[entry.ActorID]
		if !ok {
			rate, err = c.HourlyRate(ctx, entry.ActorID)
			if err != nil {
				return 0, err
			}
			rates[entry.ActorID] = rate
		}
		total += float64(entry.DurationMinutes) / 60 * rate
	}

	return round2(total), nil
}

// ProjectTrackedMinutes sums tracked minutes over the project's entries.
func (c *costServiceImpl) ProjectTrackedMinutes(ctx context.Context, projectID string) (int, error) {
	entries, err := c.projectEntries(ctx, projectID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, entry := range entries {
		total += entry.DurationMinutes
	}
	return total, nil
}

// CostMetrics combines the external project record with tracked cost into
// the project cost snapshot.
func (c *costServiceImpl) CostMetrics(ctx context.Context, projectID string) (*ProjectCostSnapshot, error) {
	project, err := c.dir.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	trackedCost, err := c.ProjectTrackedCost(ctx, projectID)
	if err != nil {
		return nil, err
	}
	trackedMinutes, err := c.ProjectTrackedMinutes(ctx, projectID)
	if err != nil {
		return nil, err
	}

	snapshot := &ProjectCostSnapshot{
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		Revenue:        project.Revenue,
		PlannedCost:    project.PlannedCost,
		TrackedCost:    trackedCost,
		TrackedMinutes: trackedMinutes,
		VarianceCost:   round2(trackedCost - project.PlannedCost),
		VariancePct:    roundPct(trackedCost-project.PlannedCost, project.PlannedCost),
		IsOverBudget:   project.PlannedCost > 0 && trackedCost > project.PlannedCost*OverBudgetFactor,
	}
	if project.Revenue > 0 {
		snapshot.MarginRealPct = roundPct(project.Revenue-trackedCost, project.Revenue)
	}

	return snapshot, nil
}

func (c *costServiceImpl) projectEntries(ctx context.Context, projectID string) ([]*domain.TimeEntry, error) {
	filter := sqlite.EntryFilter{ProjectID: &projectID}
	dbEntries, err := c.repo.SearchTimeEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	return c.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

// entriesInWindow is shared by the week-scoped services.
func entriesInWindow(ctx context.Context, repo sqlite.Repository, mapper *domain.Mapper, actorID string, from, to time.Time) ([]*domain.TimeEntry, error) {
	filter := sqlite.EntryFilter{DateFrom: &from, DateTo: &to}
	if actorID != "" {
		filter.ActorID = &actorID
	}
	dbEntries, err := repo.SearchTimeEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}
