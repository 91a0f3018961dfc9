package services

import (
	"context"
	"sort"
	"time"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
)

// utilizationServiceImpl implements the UtilizationService interface
type utilizationServiceImpl struct {
	repo     sqlite.Repository
	dir      directory.Directory
	capacity CapacityService
	mapper   *domain.Mapper
	now      func() time.Time
}

// NewUtilizationService creates a new UtilizationService instance
func NewUtilizationService(repo sqlite.Repository, dir directory.Directory, capacity CapacityService) UtilizationService {
	return &utilizationServiceImpl{
		repo:     repo,
		dir:      dir,
		capacity: capacity,
		mapper:   domain.NewMapper(),
		now:      time.Now,
	}
}

// WeeklyUtilization aggregates tracked and planned minutes against capacity
// for one actor over the Monday–Friday window containing weekStart.
func (u *utilizationServiceImpl) WeeklyUtilization(ctx context.Context, actorID string, weekStart time.Time) (*UtilizationSnapshot, error) {
	monday := WeekStart(weekStart)
	friday := WeekEnd(monday)

	entries, err := entriesInWindow(ctx, u.repo, u.mapper, actorID, monday, friday)
	if err != nil {
		return nil, err
	}
	tracked := 0
	for _, entry := range entries {
		tracked += entry.DurationMinutes
	}

	planned, err := u.plannedMinutes(ctx, actorID)
	if err != nil {
		return nil, err
	}

	weeklyHours, err := u.capacity.WeeklyHours(ctx, actorID)
	if err != nil {
		return nil, err
	}
	capacityMinutes := int(weeklyHours * 60)

	snapshot := &UtilizationSnapshot{
		ActorID:         actorID,
		ActorName:       actorID,
		WeekStart:       monday,
		PlannedMinutes:  planned,
		TrackedMinutes:  tracked,
		CapacityMinutes: capacityMinutes,
		UtilizationPct:  roundPct(float64(tracked), float64(capacityMinutes)),
		PlannedPct:      roundPct(float64(planned), float64(capacityMinutes)),
		OverCapacity:    capacityMinutes > 0 && float64(tracked) > float64(capacityMinutes)*OverCapacityFactor,
		OverPlanned:     capacityMinutes > 0 && float64(planned) > float64(capacityMinutes)*OverCapacityFactor,
	}
	if member, err := u.dir.Member(ctx, actorID); err == nil {
		snapshot.ActorName = member.Name
	}

	return snapshot, nil
}

// plannedMinutes sums estimates of the actor's open tasks. Upstream task
// records may reference the owner by id or display name; the directory
// normalizes both to a canonical id. Tasks are de-duplicated by id.
func (u *utilizationServiceImpl) plannedMinutes(ctx context.Context, actorID string) (int, error) {
	tasks, err := u.dir.Tasks(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	planned := 0
	for _, task := range tasks {
		if task.Status.IsTerminal() || seen[task.ID] {
			continue
		}
		ownerID, ok := u.dir.ResolveOwner(ctx, task.Owner)
		if !ok || ownerID != actorID {
			continue
		}
		seen[task.ID] = true
		planned += task.EstimateMinutes
	}

	return planned, nil
}

// TeamUtilization maps WeeklyUtilization over the active roster, sorted by
// utilization descending.
func (u *utilizationServiceImpl) TeamUtilization(ctx context.Context, weekStart time.Time) ([]*UtilizationSnapshot, error) {
	roster, err := u.dir.Roster(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*UtilizationSnapshot, 0, len(roster))
	for _, member := range roster {
		snapshot, err := u.WeeklyUtilization(ctx, member.ID, weekStart)
		if err != nil {
			return nil, err
		}
		snapshot.ActorName = member.Name
		snapshots = append(snapshots, snapshot)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].UtilizationPct > snapshots[j].UtilizationPct
	})

	return snapshots, nil
}
