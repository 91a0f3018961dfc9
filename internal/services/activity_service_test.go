package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityFeedRecent(t *testing.T) {
	repo := newTestRepo(t)
	dir := newTestDirectory()
	ctx := context.Background()

	timers := NewTimerService(repo, dir).(*timerServiceImpl)
	timers.now = fixedClock(testMonday.Add(9 * time.Hour))
	_, err := timers.Start(ctx, StartInput{ActorID: "m1", ProjectID: "p1", Billable: true})
	require.NoError(t, err)

	timers.now = fixedClock(testMonday.Add(11 * time.Hour))
	_, err = timers.Stop(ctx, "m1")
	require.NoError(t, err)

	svc := NewActivityService(repo)
	records, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first: the stop follows the start.
	stopped := records[0]
	assert.Equal(t, "timer_stopped", stopped.Action)
	assert.Equal(t, "time_entry", stopped.EntityType)
	assert.Equal(t, "m1", stopped.ActorID)
	assert.NotZero(t, stopped.ID)
	assert.False(t, stopped.CreatedAt.IsZero())

	assert.Equal(t, "timer_started", records[1].Action)
	assert.Equal(t, "p1", records[1].EntityName)
}

func TestActivityFeedLimit(t *testing.T) {
	repo := newTestRepo(t)
	_ = newTestDirectory()
	ctx := context.Background()

	entries := NewEntryService(repo).(*entryServiceImpl)
	entries.now = fixedClock(testMonday.Add(9 * time.Hour))
	for i := 0; i < 3; i++ {
		_, err := entries.Add(ctx, EntryInput{
			ActorID:   "m1",
			ProjectID: "p1",
			Date:      testMonday,
			Minutes:   30,
			Billable:  true,
		})
		require.NoError(t, err)
	}

	records, err := NewActivityService(repo).Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
