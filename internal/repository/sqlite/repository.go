package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"workload-engine/internal/errors"
	"workload-engine/internal/repository/sqlite/migrations"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// EntryFilter contains all possible time entry search parameters.
type EntryFilter struct {
	ActorID   *string
	ProjectID *string
	TaskID    *string
	DateFrom  *time.Time
	DateTo    *time.Time
	Source    *string
}

// Repository defines the interface for database operations
type Repository interface {
	// Time entry operations
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id string) error
	SearchTimeEntries(ctx context.Context, filter EntryFilter) ([]*TimeEntry, error)

	// Active timer operations
	CreateActiveTimer(ctx context.Context, timer *ActiveTimer) error
	GetActiveTimer(ctx context.Context, actorID string) (*ActiveTimer, error)
	ListActiveTimers(ctx context.Context) ([]*ActiveTimer, error)
	DeleteActiveTimer(ctx context.Context, actorID string) error
	StopTimerWithEntry(ctx context.Context, actorID string, entry *TimeEntry) error

	// Capacity configuration
	GetCapacityConfig(ctx context.Context) (*CapacityConfig, error)
	ReplaceCapacityConfig(ctx context.Context, cfg *CapacityConfig) error

	// Audit log
	CreateAuditRecord(ctx context.Context, record *AuditRecord) error
	ListAuditRecords(ctx context.Context, limit int) ([]*AuditRecord, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const timeEntryColumns = `id, actor_id, project_id, task_id, entry_date, start_time, end_time,
	duration_minutes, description, billable, source, created_at, updated_at`

// CreateTimeEntry creates a new time entry, assigning an id and timestamps
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `
	INSERT INTO time_entries (` + timeEntryColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.ActorID, entry.ProjectID, entry.TaskID,
		FormatDateForDB(entry.EntryDate), FormatTimePtrForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		entry.DurationMinutes, entry.Description, entry.Billable, entry.Source,
		FormatTimeForDB(entry.CreatedAt), FormatTimeForDB(entry.UpdatedAt))
	if err != nil {
		return HandleDatabaseError("create time entry", err)
	}
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", id, id)
}

// UpdateTimeEntry updates an existing time entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	entry.UpdatedAt = time.Now().UTC()

	query := `
	UPDATE time_entries
	SET actor_id = ?, project_id = ?, task_id = ?, entry_date = ?, start_time = ?, end_time = ?,
		duration_minutes = ?, description = ?, billable = ?, source = ?, updated_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", entry.ID,
		entry.ActorID, entry.ProjectID, entry.TaskID,
		FormatDateForDB(entry.EntryDate), FormatTimePtrForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		entry.DurationMinutes, entry.Description, entry.Billable, entry.Source,
		FormatTimeForDB(entry.UpdatedAt), entry.ID)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id string) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", id, id)
}

// SearchTimeEntries searches for time entries based on the provided filter.
// Results are sorted by (entry_date, start_time) ascending.
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, filter EntryFilter) ([]*TimeEntry, error) {
	var conditions []string
	var args []interface{}

	if filter.ActorID != nil {
		conditions = append(conditions, "actor_id = ?")
		args = append(args, *filter.ActorID)
	}
	if filter.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.TaskID != nil {
		conditions = append(conditions, "task_id = ?")
		args = append(args, *filter.TaskID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "entry_date >= ?")
		args = append(args, FormatDateForDB(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "entry_date <= ?")
		args = append(args, FormatDateForDB(*filter.DateTo))
	}
	if filter.Source != nil {
		conditions = append(conditions, "source = ?")
		args = append(args, *filter.Source)
	}

	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_date ASC, start_time ASC"

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
}

const activeTimerColumns = `actor_id, project_id, task_id, started_at, description, billable`

// CreateActiveTimer inserts a timer for the actor. The primary key on
// actor_id turns a second concurrent start into a conflict error.
func (r *SQLiteRepository) CreateActiveTimer(ctx context.Context, timer *ActiveTimer) error {
	query := `
	INSERT INTO active_timers (` + activeTimerColumns + `)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		timer.ActorID, timer.ProjectID, timer.TaskID,
		FormatTimeForDB(timer.StartedAt), timer.Description, timer.Billable)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewConflictError("active timer", timer.ActorID, "actor already has a running timer")
		}
		return HandleDatabaseError("create active timer", err)
	}
	return nil
}

// GetActiveTimer retrieves the active timer for an actor
func (r *SQLiteRepository) GetActiveTimer(ctx context.Context, actorID string) (*ActiveTimer, error) {
	query := `
	SELECT ` + activeTimerColumns + `
	FROM active_timers
	WHERE actor_id = ?`

	return QuerySingle(ctx, r.db, query, ScanActiveTimer, "active timer", actorID, actorID)
}

// ListActiveTimers retrieves all active timers
func (r *SQLiteRepository) ListActiveTimers(ctx context.Context) ([]*ActiveTimer, error) {
	query := `
	SELECT ` + activeTimerColumns + `
	FROM active_timers
	ORDER BY started_at ASC`

	return QueryMultiple(ctx, r.db, query, ScanActiveTimers, "active timers")
}

// DeleteActiveTimer deletes the active timer for an actor
func (r *SQLiteRepository) DeleteActiveTimer(ctx context.Context, actorID string) error {
	query := `DELETE FROM active_timers WHERE actor_id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "active timer", actorID, actorID)
}

// StopTimerWithEntry atomically deletes the actor's timer and inserts the
// materialized entry. A reader never observes a state where the timer is
// gone but the entry is missing, or both are present.
func (r *SQLiteRepository) StopTimerWithEntry(ctx context.Context, actorID string, entry *TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin stop transaction", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM active_timers WHERE actor_id = ?`, actorID)
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("delete active timer", err)
	}
	if err := ValidateRowsAffected(result, "active timer", actorID); err != nil {
		tx.Rollback()
		return err
	}

	insert := `
	INSERT INTO time_entries (` + timeEntryColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, insert,
		entry.ID, entry.ActorID, entry.ProjectID, entry.TaskID,
		FormatDateForDB(entry.EntryDate), FormatTimePtrForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		entry.DurationMinutes, entry.Description, entry.Billable, entry.Source,
		FormatTimeForDB(entry.CreatedAt), FormatTimeForDB(entry.UpdatedAt))
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("create time entry", err)
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit stop transaction", err)
	}
	return nil
}

// GetCapacityConfig loads the default weekly hours plus all overrides
func (r *SQLiteRepository) GetCapacityConfig(ctx context.Context) (*CapacityConfig, error) {
	cfg := &CapacityConfig{}

	row := r.db.QueryRowContext(ctx, `SELECT default_weekly_hours FROM capacity_settings WHERE id = 1`)
	if err := row.Scan(&cfg.DefaultWeeklyHours); err != nil {
		return nil, HandleDatabaseError("read capacity settings", err)
	}

	overrides, err := QueryMultiple(ctx, r.db,
		`SELECT actor_id, weekly_hours FROM capacity_overrides ORDER BY actor_id ASC`,
		ScanCapacityOverrides, "capacity overrides")
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		cfg.Overrides = append(cfg.Overrides, *override)
	}

	return cfg, nil
}

// ReplaceCapacityConfig atomically replaces the whole capacity configuration
func (r *SQLiteRepository) ReplaceCapacityConfig(ctx context.Context, cfg *CapacityConfig) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin capacity transaction", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE capacity_settings SET default_weekly_hours = ? WHERE id = 1`, cfg.DefaultWeeklyHours); err != nil {
		tx.Rollback()
		return HandleDatabaseError("update capacity settings", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM capacity_overrides`); err != nil {
		tx.Rollback()
		return HandleDatabaseError("clear capacity overrides", err)
	}
	for _, override := range cfg.Overrides {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO capacity_overrides (actor_id, weekly_hours) VALUES (?, ?)`,
			override.ActorID, override.WeeklyHours); err != nil {
			tx.Rollback()
			return HandleDatabaseError("insert capacity override", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit capacity transaction", err)
	}
	return nil
}

// CreateAuditRecord appends one row to the audit log
func (r *SQLiteRepository) CreateAuditRecord(ctx context.Context, record *AuditRecord) error {
	record.CreatedAt = time.Now().UTC()

	query := `
	INSERT INTO audit_records (entity_type, entity_id, action, actor_id, entity_name, reason, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		record.EntityType, record.EntityID, record.Action, record.ActorID,
		record.EntityName, record.Reason, FormatTimeForDB(record.CreatedAt))
	if err != nil {
		return HandleDatabaseError("create audit record", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return HandleDatabaseError("get audit record id", err)
	}
	record.ID = id
	return nil
}

// ListAuditRecords returns the most recent audit records, newest first
func (r *SQLiteRepository) ListAuditRecords(ctx context.Context, limit int) ([]*AuditRecord, error) {
	query := `
	SELECT id, entity_type, entity_id, action, actor_id, entity_name, reason, created_at
	FROM audit_records
	ORDER BY id DESC
	LIMIT ?`

	return QueryMultiple(ctx, r.db, query, ScanAuditRecords, "audit records", limit)
}

// isUniqueConstraintError recognizes sqlite unique/primary key violations
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
