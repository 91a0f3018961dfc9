package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-engine/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "workload.db")
	repo, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func testEntry(actorID, projectID string, date time.Time, minutes int) *TimeEntry {
	return &TimeEntry{
		ActorID:         actorID,
		ProjectID:       projectID,
		EntryDate:       date,
		DurationMinutes: minutes,
		Billable:        true,
		Source:          "manual",
	}
}

func TestCreateTimeEntry(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	entry := testEntry("m1", "p1", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 90)
	err := repo.CreateTimeEntry(ctx, entry)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	retrieved, err := repo.GetTimeEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "m1", retrieved.ActorID)
	assert.Equal(t, "p1", retrieved.ProjectID)
	assert.Equal(t, 90, retrieved.DurationMinutes)
	assert.Equal(t, "manual", retrieved.Source)
	assert.True(t, retrieved.Billable)
	assert.Equal(t, entry.EntryDate, retrieved.EntryDate)
	assert.Nil(t, retrieved.StartTime)
	assert.Nil(t, retrieved.EndTime)
}

func TestCreateTimeEntryKeepsProvidedID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	entry := testEntry("m1", "p1", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 30)
	entry.ID = "fixed-id"
	require.NoError(t, repo.CreateTimeEntry(ctx, entry))
	assert.Equal(t, "fixed-id", entry.ID)
}

func TestGetTimeEntryNotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetTimeEntry(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestUpdateTimeEntry(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	entry := testEntry("m1", "p1", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 60)
	require.NoError(t, repo.CreateTimeEntry(ctx, entry))

	entry.DurationMinutes = 75
	entry.ProjectID = "p2"
	require.NoError(t, repo.UpdateTimeEntry(ctx, entry))

	retrieved, err := repo.GetTimeEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, retrieved.DurationMinutes)
	assert.Equal(t, "p2", retrieved.ProjectID)

	// Updating a missing row reports not found
	ghost := testEntry("m1", "p1", entry.EntryDate, 10)
	ghost.ID = "missing"
	err = repo.UpdateTimeEntry(ctx, ghost)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestDeleteTimeEntry(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	entry := testEntry("m1", "p1", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 60)
	require.NoError(t, repo.CreateTimeEntry(ctx, entry))
	require.NoError(t, repo.DeleteTimeEntry(ctx, entry.ID))

	_, err := repo.GetTimeEntry(ctx, entry.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = repo.DeleteTimeEntry(ctx, entry.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSearchTimeEntries(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	wednesday := monday.AddDate(0, 0, 2)
	nextMonday := monday.AddDate(0, 0, 7)

	require.NoError(t, repo.CreateTimeEntry(ctx, testEntry("m1", "p1", wednesday, 60)))
	require.NoError(t, repo.CreateTimeEntry(ctx, testEntry("m1", "p2", monday, 30)))
	require.NoError(t, repo.CreateTimeEntry(ctx, testEntry("m2", "p1", monday, 45)))
	require.NoError(t, repo.CreateTimeEntry(ctx, testEntry("m1", "p1", nextMonday, 120)))

	t.Run("no filter returns all sorted by date", func(t *testing.T) {
		entries, err := repo.SearchTimeEntries(ctx, EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 4)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].EntryDate.Before(entries[i-1].EntryDate))
		}
	})

	t.Run("filter by actor", func(t *testing.T) {
		actor := "m1"
		entries, err := repo.SearchTimeEntries(ctx, EntryFilter{ActorID: &actor})
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("filter by project", func(t *testing.T) {
		project := "p2"
		entries, err := repo.SearchTimeEntries(ctx, EntryFilter{ProjectID: &project})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 30, entries[0].DurationMinutes)
	})

	t.Run("filter by date window", func(t *testing.T) {
		from := monday
		to := monday.AddDate(0, 0, 4)
		entries, err := repo.SearchTimeEntries(ctx, EntryFilter{DateFrom: &from, DateTo: &to})
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("filter by source", func(t *testing.T) {
		source := "timer"
		entries, err := repo.SearchTimeEntries(ctx, EntryFilter{Source: &source})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestCreateActiveTimerConflict(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	started := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	first := &ActiveTimer{ActorID: "m1", ProjectID: "p1", StartedAt: started, Billable: true}
	require.NoError(t, repo.CreateActiveTimer(ctx, first))

	// Second start for the same actor hits the primary key
	second := &ActiveTimer{ActorID: "m1", ProjectID: "p2", StartedAt: started.Add(time.Hour)}
	err := repo.CreateActiveTimer(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))

	// The original timer is untouched
	current, err := repo.GetActiveTimer(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "p1", current.ProjectID)
	assert.Equal(t, started, current.StartedAt.UTC())

	// A different actor can still start
	other := &ActiveTimer{ActorID: "m2", ProjectID: "p1", StartedAt: started}
	assert.NoError(t, repo.CreateActiveTimer(ctx, other))
}

func TestListActiveTimers(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	started := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateActiveTimer(ctx, &ActiveTimer{ActorID: "m2", ProjectID: "p1", StartedAt: started.Add(time.Hour)}))
	require.NoError(t, repo.CreateActiveTimer(ctx, &ActiveTimer{ActorID: "m1", ProjectID: "p1", StartedAt: started}))

	timers, err := repo.ListActiveTimers(ctx)
	require.NoError(t, err)
	require.Len(t, timers, 2)
	assert.Equal(t, "m1", timers[0].ActorID) // oldest first
	assert.Equal(t, "m2", timers[1].ActorID)
}

func TestStopTimerWithEntry(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	started := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	timer := &ActiveTimer{ActorID: "m1", ProjectID: "p1", StartedAt: started, Billable: true}
	require.NoError(t, repo.CreateActiveTimer(ctx, timer))

	stopped := started.Add(2 * time.Hour)
	entry := &TimeEntry{
		ActorID:         "m1",
		ProjectID:       "p1",
		EntryDate:       started,
		StartTime:       &started,
		EndTime:         &stopped,
		DurationMinutes: 120,
		Billable:        true,
		Source:          "timer",
	}
	require.NoError(t, repo.StopTimerWithEntry(ctx, "m1", entry))
	assert.NotEmpty(t, entry.ID)

	// Timer is gone and the entry is durable
	_, err := repo.GetActiveTimer(ctx, "m1")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	retrieved, err := repo.GetTimeEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, retrieved.DurationMinutes)
	assert.Equal(t, "timer", retrieved.Source)
}

func TestStopTimerWithEntryNoTimer(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	entry := testEntry("m1", "p1", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 60)
	err := repo.StopTimerWithEntry(ctx, "m1", entry)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	// The transaction rolled back; no orphan entry exists
	entries, err := repo.SearchTimeEntries(ctx, EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCapacityConfigRoundTrip(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	// Migration seeds the 40-hour default with no overrides
	cfg, err := repo.GetCapacityConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, cfg.DefaultWeeklyHours)
	assert.Empty(t, cfg.Overrides)

	update := &CapacityConfig{
		DefaultWeeklyHours: 36,
		Overrides: []CapacityOverride{
			{ActorID: "m1", WeeklyHours: 20},
			{ActorID: "m2", WeeklyHours: 32},
		},
	}
	require.NoError(t, repo.ReplaceCapacityConfig(ctx, update))

	cfg, err = repo.GetCapacityConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 36.0, cfg.DefaultWeeklyHours)
	require.Len(t, cfg.Overrides, 2)
	assert.Equal(t, "m1", cfg.Overrides[0].ActorID)
	assert.Equal(t, 20.0, cfg.Overrides[0].WeeklyHours)

	// Replacement clears previous overrides
	require.NoError(t, repo.ReplaceCapacityConfig(ctx, &CapacityConfig{DefaultWeeklyHours: 40}))
	cfg, err = repo.GetCapacityConfig(ctx)
	require.NoError(t, err)
	assert.Empty(t, cfg.Overrides)
}

func TestAuditRecords(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := &AuditRecord{
		EntityType: "timer",
		EntityID:   "m1",
		Action:     "timer_started",
		ActorID:    "m1",
		EntityName: "p1",
	}
	require.NoError(t, repo.CreateAuditRecord(ctx, first))
	assert.Greater(t, first.ID, int64(0))

	second := &AuditRecord{
		EntityType: "time_entry",
		EntityID:   "e1",
		Action:     "entry_created",
		ActorID:    "m1",
		Reason:     "1h 30m",
	}
	require.NoError(t, repo.CreateAuditRecord(ctx, second))

	records, err := repo.ListAuditRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "entry_created", records[0].Action) // newest first
	assert.Equal(t, "timer_started", records[1].Action)

	limited, err := repo.ListAuditRecords(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
