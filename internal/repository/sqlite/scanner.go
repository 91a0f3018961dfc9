package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row
// and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var (
		entryDate string
		startTime sql.NullString
		endTime   sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&entry.ID,
		&entry.ActorID,
		&entry.ProjectID,
		&entry.TaskID,
		&entryDate,
		&startTime,
		&endTime,
		&entry.DurationMinutes,
		&entry.Description,
		&entry.Billable,
		&entry.Source,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.EntryDate, err = ParseDateFromDB(entryDate); err != nil {
		return nil, err
	}
	if startTime.Valid {
		t, err := ParseTimeFromDB(startTime.String)
		if err != nil {
			return nil, err
		}
		entry.StartTime = &t
	}
	if endTime.Valid {
		t, err := ParseTimeFromDB(endTime.String)
		if err != nil {
			return nil, err
		}
		entry.EndTime = &t
	}
	if entry.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanActiveTimer scans a single active timer from a database row
func ScanActiveTimer(scanner Scanner) (*ActiveTimer, error) {
	timer := &ActiveTimer{}
	var startedAt string

	err := scanner.Scan(
		&timer.ActorID,
		&timer.ProjectID,
		&timer.TaskID,
		&startedAt,
		&timer.Description,
		&timer.Billable,
	)
	if err != nil {
		return nil, err
	}

	if timer.StartedAt, err = ParseTimeFromDB(startedAt); err != nil {
		return nil, err
	}

	return timer, nil
}

// ScanActiveTimers scans multiple active timers from database rows
func ScanActiveTimers(rows Rows) ([]*ActiveTimer, error) {
	var timers []*ActiveTimer
	for rows.Next() {
		timer, err := ScanActiveTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, timer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timers, nil
}

// ScanCapacityOverride scans a single capacity override row
func ScanCapacityOverride(scanner Scanner) (*CapacityOverride, error) {
	override := &CapacityOverride{}
	err := scanner.Scan(&override.ActorID, &override.WeeklyHours)
	if err != nil {
		return nil, err
	}
	return override, nil
}

// ScanCapacityOverrides scans multiple capacity override rows
func ScanCapacityOverrides(rows Rows) ([]*CapacityOverride, error) {
	var overrides []*CapacityOverride
	for rows.Next() {
		override, err := ScanCapacityOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// ScanAuditRecord scans a single audit record from a database row
func ScanAuditRecord(scanner Scanner) (*AuditRecord, error) {
	record := &AuditRecord{}
	var createdAt string

	err := scanner.Scan(
		&record.ID,
		&record.EntityType,
		&record.EntityID,
		&record.Action,
		&record.ActorID,
		&record.EntityName,
		&record.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if record.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}

	return record, nil
}

// ScanAuditRecords scans multiple audit records from database rows
func ScanAuditRecords(rows Rows) ([]*AuditRecord, error) {
	var records []*AuditRecord
	for rows.Next() {
		record, err := ScanAuditRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
