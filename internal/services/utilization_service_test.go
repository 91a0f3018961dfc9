package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-engine/internal/repository/sqlite"
)

func newTestUtilizationService(t *testing.T) (UtilizationService, CapacityService, sqlite.Repository) {
	t.Helper()

	repo := newTestRepo(t)
	capacity := NewCapacityService(repo)
	return NewUtilizationService(repo, newTestDirectory(), capacity), capacity, repo
}

func TestWeeklyUtilization(t *testing.T) {
	svc, _, repo := newTestUtilizationService(t)
	ctx := context.Background()

	// 5h tracked inside the week, plus noise outside the window and from
	// another actor
	addEntry(t, repo, "m1", "p1", testMonday, 180)
	addEntry(t, repo, "m1", "p1", testMonday.AddDate(0, 0, 3), 120)
	addEntry(t, repo, "m1", "p1", testMonday.AddDate(0, 0, 7), 600)
	addEntry(t, repo, "m2", "p1", testMonday, 240)

	snapshot, err := svc.WeeklyUtilization(ctx, "m1", testMonday)
	require.NoError(t, err)

	assert.Equal(t, testMonday, snapshot.WeekStart)
	assert.Equal(t, 300, snapshot.TrackedMinutes)
	assert.Equal(t, 2400, snapshot.CapacityMinutes)
	assert.Equal(t, 13, snapshot.UtilizationPct) // 300/2400 = 12.5, rounds up

	// Open tasks owned via id (t1, 600) and display name (t2, 300);
	// the completed t3 does not count
	assert.Equal(t, 900, snapshot.PlannedMinutes)
	assert.Equal(t, 38, snapshot.PlannedPct)

	assert.False(t, snapshot.OverCapacity)
	assert.False(t, snapshot.OverPlanned)
	assert.Equal(t, "Ana García", snapshot.ActorName)
}

func TestWeeklyUtilizationMidWeekDateNormalizes(t *testing.T) {
	svc, _, repo := newTestUtilizationService(t)
	addEntry(t, repo, "m1", "p1", testMonday, 60)

	// Passing the Thursday lands in the same week
	snapshot, err := svc.WeeklyUtilization(context.Background(), "m1", testMonday.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, testMonday, snapshot.WeekStart)
	assert.Equal(t, 60, snapshot.TrackedMinutes)
}

func TestWeeklyUtilizationOverCapacity(t *testing.T) {
	svc, capacity, repo := newTestUtilizationService(t)
	ctx := context.Background()

	// 10h capacity; flag trips above 600 × 1.1 = 660 minutes
	require.NoError(t, capacity.Update(ctx, capacityConfigWithOverride("m2", 10), "admin"))

	addEntry(t, repo, "m2", "p1", testMonday, 660)
	snapshot, err := svc.WeeklyUtilization(ctx, "m2", testMonday)
	require.NoError(t, err)
	assert.False(t, snapshot.OverCapacity) // exactly at tolerance

	addEntry(t, repo, "m2", "p1", testMonday.AddDate(0, 0, 1), 1)
	snapshot, err = svc.WeeklyUtilization(ctx, "m2", testMonday)
	require.NoError(t, err)
	assert.True(t, snapshot.OverCapacity)
}

func TestWeeklyUtilizationZeroCapacity(t *testing.T) {
	svc, capacity, repo := newTestUtilizationService(t)
	ctx := context.Background()

	require.NoError(t, capacity.Update(ctx, capacityConfigWithOverride("m1", 0), "admin"))
	addEntry(t, repo, "m1", "p1", testMonday, 300)

	snapshot, err := svc.WeeklyUtilization(ctx, "m1", testMonday)
	require.NoError(t, err)

	// Zero capacity yields zero percentages and no flags, never a division
	// by zero or a spurious overload
	assert.Equal(t, 0, snapshot.UtilizationPct)
	assert.Equal(t, 0, snapshot.PlannedPct)
	assert.False(t, snapshot.OverCapacity)
	assert.False(t, snapshot.OverPlanned)
}

func TestTeamUtilization(t *testing.T) {
	svc, _, repo := newTestUtilizationService(t)
	ctx := context.Background()

	addEntry(t, repo, "m1", "p1", testMonday, 300)
	addEntry(t, repo, "m2", "p1", testMonday, 1200)

	snapshots, err := svc.TeamUtilization(ctx, testMonday)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	// Sorted by utilization descending
	assert.Equal(t, "m2", snapshots[0].ActorID)
	assert.Equal(t, "Ben Osei", snapshots[0].ActorName)
	assert.Equal(t, 50, snapshots[0].UtilizationPct)
	assert.Equal(t, "m1", snapshots[1].ActorID)
	assert.Equal(t, 13, snapshots[1].UtilizationPct)
}
