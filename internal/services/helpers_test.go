package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
)

// testMonday is a fixed Monday anchoring the week arithmetic in tests.
var testMonday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) sqlite.Repository {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "workload.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

// newTestDirectory builds the standard two-member fixture: one active
// project with tasks and one finalized project, plus compensation and
// status colors.
func newTestDirectory() *directory.InMemory {
	created := testMonday.AddDate(0, 0, -30)
	due := testMonday.AddDate(0, 0, 4) // Friday of the anchor week

	projects := []*domain.Project{
		{ID: "p1", Name: "Website Relaunch", Status: domain.ProjectActive, Revenue: 20000, PlannedCost: 1000, CreatedAt: created},
		{ID: "p2", Name: "Brand Refresh", Status: domain.ProjectFinalized, CreatedAt: created},
	}
	tasks := []*domain.Task{
		{ID: "t1", ProjectID: "p1", Name: "Design", Owner: "m1", Status: domain.TaskInProgress, EstimateMinutes: 600, DueDate: &due, CreatedAt: created},
		{ID: "t2", ProjectID: "p1", Name: "Build", Owner: "Ana García", Status: domain.TaskPending, EstimateMinutes: 300, DueDate: &due, CreatedAt: created},
		{ID: "t3", ProjectID: "p1", Name: "Done already", Owner: "m1", Status: domain.TaskCompleted, EstimateMinutes: 900, DueDate: &due, CreatedAt: created},
		{ID: "t4", ProjectID: "p2", Name: "Handover", Owner: "m2", Status: domain.TaskPending, EstimateMinutes: 240, DueDate: &due, CreatedAt: created},
	}
	roster := []*domain.Member{
		{ID: "m1", Name: "Ana García"},
		{ID: "m2", Name: "Ben Osei"},
	}
	compensations := []domain.Compensation{
		{MemberName: "Ana García", Monthly: 3000},
	}
	colors := map[string]string{
		"active":      "#22c55e",
		"in_progress": "#3b82f6",
	}

	return directory.NewInMemory(projects, tasks, roster, compensations, colors)
}

func capacityConfigWithOverride(actorID string, hours float64) domain.CapacityConfig {
	return domain.CapacityConfig{
		DefaultWeeklyHours: domain.DefaultWeeklyHours,
		Overrides:          map[string]float64{actorID: hours},
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func addEntry(t *testing.T, repo sqlite.Repository, actorID, projectID string, date time.Time, minutes int) {
	t.Helper()

	entry := &sqlite.TimeEntry{
		ActorID:         actorID,
		ProjectID:       projectID,
		EntryDate:       date,
		DurationMinutes: minutes,
		Billable:        true,
		Source:          "manual",
	}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), entry))
}
