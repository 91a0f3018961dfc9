package services

import (
	"context"
	"sort"
	"time"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
)

// forecastServiceImpl implements the ForecastService interface
type forecastServiceImpl struct {
	repo     sqlite.Repository
	dir      directory.Directory
	capacity CapacityService
	mapper   *domain.Mapper
	now      func() time.Time
}

// NewForecastService creates a new ForecastService instance
func NewForecastService(repo sqlite.Repository, dir directory.Directory, capacity CapacityService) ForecastService {
	return &forecastServiceImpl{
		repo:     repo,
		dir:      dir,
		capacity: capacity,
		mapper:   domain.NewMapper(),
		now:      time.Now,
	}
}

// Forecast projects team capacity against load for the coming weeks,
// starting at the current week's Monday. The current week uses tracked
// minutes as ground truth; future weeks use task estimates due in the
// window. Tasks without a due date are counted into every future week —
// a deliberate carry-over of the upstream behavior, flagged per week via
// IncludesUndatedBacklog because it can overstate several weeks at once.
func (f *forecastServiceImpl) Forecast(ctx context.Context, weeksAhead int) ([]*ForecastWeek, error) {
	if weeksAhead <= 0 {
		weeksAhead = DefaultForecastWeeks
	}

	roster, err := f.dir.Roster(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := f.dir.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	// Individual capacities are fixed across the horizon.
	capacities := make(map[string]int, len(roster))
	totalCapacity := 0
	for _, member := range roster {
		hours, err := f.capacity.WeeklyHours(ctx, member.ID)
		if err != nil {
			return nil, err
		}
		minutes := int(hours * 60)
		capacities[member.ID] = minutes
		totalCapacity += minutes
	}

	currentMonday := WeekStart(f.now())
	weeks := make([]*ForecastWeek, 0, weeksAhead)
	for offset := 0; offset < weeksAhead; offset++ {
		weekStart := currentMonday.AddDate(0, 0, 7*offset)
		var (
			loads      map[string]int
			hasBacklog bool
		)
		if offset == 0 {
			loads, err = f.trackedLoads(ctx, weekStart)
			if err != nil {
				return nil, err
			}
		} else {
			loads, hasBacklog = f.estimatedLoads(ctx, tasks, weekStart)
		}

		totalPlanned := 0
		var overloaded []string
		for _, member := range roster {
			load := loads[member.ID]
			totalPlanned += load
			capacity := capacities[member.ID]
			if capacity > 0 && float64(load) > float64(capacity)*OverCapacityFactor {
				overloaded = append(overloaded, member.Name)
			}
		}
		sort.Strings(overloaded)

		week := &ForecastWeek{
			WeekStart:              weekStart,
			TotalCapacityMinutes:   totalCapacity,
			TotalPlannedMinutes:    totalPlanned,
			GapMinutes:             totalCapacity - totalPlanned,
			UtilizationPct:         roundPct(float64(totalPlanned), float64(totalCapacity)),
			OverCapacityActors:     overloaded,
			Status:                 ForecastOK,
			IncludesUndatedBacklog: hasBacklog,
		}
		if week.GapMinutes < 0 {
			week.Status = ForecastWarning
		}
		weeks = append(weeks, week)
	}

	return weeks, nil
}

// trackedLoads sums tracked minutes per actor over the week window.
func (f *forecastServiceImpl) trackedLoads(ctx context.Context, weekStart time.Time) (map[string]int, error) {
	entries, err := entriesInWindow(ctx, f.repo, f.mapper, "", weekStart, WeekEnd(weekStart))
	if err != nil {
		return nil, err
	}

	loads := make(map[string]int)
	for _, entry := range entries {
		loads[entry.ActorID] += entry.DurationMinutes
	}
	return loads, nil
}

// estimatedLoads sums open-task estimates per actor for a future week.
// Returns whether any undated task contributed.
func (f *forecastServiceImpl) estimatedLoads(ctx context.Context, tasks []*domain.Task, weekStart time.Time) (map[string]int, bool) {
	weekFriday := WeekEnd(weekStart)
	loads := make(map[string]int)
	hasBacklog := false

	for _, task := range tasks {
		if task.Status.IsTerminal() {
			continue
		}
		if task.DueDate != nil {
			due := domain.DateOnly(*task.DueDate)
			if due.Before(weekStart) || due.After(weekFriday) {
				continue
			}
		}
		ownerID, ok := f.dir.ResolveOwner(ctx, task.Owner)
		if !ok {
			continue
		}
		if task.DueDate == nil {
			hasBacklog = true
		}
		loads[ownerID] += task.EstimateMinutes
	}

	return loads, hasBacklog
}
