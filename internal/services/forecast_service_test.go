package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
)

// forecastDirectory builds a roster of two members with tasks due in the
// week after the anchor week, plus one undated backlog task.
func forecastDirectory(dueNextWeek bool, includeUndated bool) *directory.InMemory {
	created := testMonday.AddDate(0, 0, -30)

	projects := []*domain.Project{
		{ID: "p1", Name: "Website Relaunch", Status: domain.ProjectActive, CreatedAt: created},
	}

	var tasks []*domain.Task
	if dueNextWeek {
		due := testMonday.AddDate(0, 0, 9) // Wednesday of week offset 1
		tasks = append(tasks,
			&domain.Task{ID: "t1", ProjectID: "p1", Name: "Design", Owner: "m1", Status: domain.TaskInProgress, EstimateMinutes: 3000, DueDate: &due, CreatedAt: created},
			&domain.Task{ID: "t2", ProjectID: "p1", Name: "Build", Owner: "m2", Status: domain.TaskPending, EstimateMinutes: 3000, DueDate: &due, CreatedAt: created},
		)
	}
	if includeUndated {
		tasks = append(tasks, &domain.Task{
			ID: "t9", ProjectID: "p1", Name: "Backlog item", Owner: "m1",
			Status: domain.TaskPending, EstimateMinutes: 600, CreatedAt: created,
		})
	}

	roster := []*domain.Member{
		{ID: "m1", Name: "Ana García"},
		{ID: "m2", Name: "Ben Osei"},
	}

	return directory.NewInMemory(projects, tasks, roster, nil, nil)
}

func newTestForecastService(t *testing.T, dir *directory.InMemory) (*forecastServiceImpl, sqlite.Repository, CapacityService) {
	t.Helper()

	repo := newTestRepo(t)
	capacity := NewCapacityService(repo)
	svc := NewForecastService(repo, dir, capacity).(*forecastServiceImpl)
	svc.now = fixedClock(testMonday.Add(10 * time.Hour))
	return svc, repo, capacity
}

func TestForecastOverloadedWeek(t *testing.T) {
	// Two members at 40h each (4800 minutes of capacity) against 100h of
	// estimates due next week.
	svc, _, _ := newTestForecastService(t, forecastDirectory(true, false))

	weeks, err := svc.Forecast(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, weeks, 3)

	// Week 0 counts tracked minutes only; nothing is logged
	assert.Equal(t, testMonday, weeks[0].WeekStart)
	assert.Equal(t, 4800, weeks[0].TotalCapacityMinutes)
	assert.Equal(t, 0, weeks[0].TotalPlannedMinutes)
	assert.Equal(t, ForecastOK, weeks[0].Status)

	// Week 1 carries the due estimates and goes negative
	next := weeks[1]
	assert.Equal(t, testMonday.AddDate(0, 0, 7), next.WeekStart)
	assert.Equal(t, 6000, next.TotalPlannedMinutes)
	assert.Equal(t, -1200, next.GapMinutes)
	assert.Equal(t, 125, next.UtilizationPct)
	assert.Equal(t, ForecastWarning, next.Status)
	assert.Equal(t, []string{"Ana García", "Ben Osei"}, next.OverCapacityActors)
	assert.False(t, next.IncludesUndatedBacklog)

	// Week 2 is past the due dates and clear again
	assert.Equal(t, ForecastOK, weeks[2].Status)
	assert.Equal(t, 0, weeks[2].TotalPlannedMinutes)
}

func TestForecastCurrentWeekUsesTrackedMinutes(t *testing.T) {
	svc, repo, _ := newTestForecastService(t, forecastDirectory(true, false))
	ctx := context.Background()

	addEntry(t, repo, "m1", "p1", testMonday, 300)
	addEntry(t, repo, "m2", "p1", testMonday.AddDate(0, 0, 2), 200)

	weeks, err := svc.Forecast(ctx, 1)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 500, weeks[0].TotalPlannedMinutes)
}

func TestForecastUndatedBacklogInEveryFutureWeek(t *testing.T) {
	svc, _, _ := newTestForecastService(t, forecastDirectory(false, true))

	weeks, err := svc.Forecast(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, weeks, 4)

	// The current week uses tracked minutes, so no flag there
	assert.False(t, weeks[0].IncludesUndatedBacklog)
	assert.Equal(t, 0, weeks[0].TotalPlannedMinutes)

	// Every future week carries the undated estimate and the flag
	for _, week := range weeks[1:] {
		assert.True(t, week.IncludesUndatedBacklog)
		assert.Equal(t, 600, week.TotalPlannedMinutes)
	}
}

func TestForecastDefaultHorizon(t *testing.T) {
	svc, _, _ := newTestForecastService(t, forecastDirectory(false, false))

	weeks, err := svc.Forecast(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, weeks, DefaultForecastWeeks)
}

func TestForecastRespectsCapacityOverrides(t *testing.T) {
	svc, _, capacity := newTestForecastService(t, forecastDirectory(false, false))
	ctx := context.Background()

	require.NoError(t, capacity.Update(ctx, capacityConfigWithOverride("m1", 20), "admin"))

	weeks, err := svc.Forecast(ctx, 1)
	require.NoError(t, err)
	// 20h + 40h in minutes
	assert.Equal(t, 3600, weeks[0].TotalCapacityMinutes)
}
