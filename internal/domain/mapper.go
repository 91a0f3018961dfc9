package domain

import (
	"workload-engine/internal/repository/sqlite"
)

// TimeEntryMapper handles conversion between domain and database TimeEntry
// models.
type TimeEntryMapper struct{}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:              entry.ID,
		ActorID:         entry.ActorID,
		ProjectID:       entry.ProjectID,
		TaskID:          entry.TaskID,
		EntryDate:       entry.Date,
		StartTime:       entry.StartTime,
		EndTime:         entry.EndTime,
		DurationMinutes: entry.DurationMinutes,
		Description:     entry.Description,
		Billable:        entry.Billable,
		Source:          string(entry.Source),
		CreatedAt:       entry.CreatedAt,
		UpdatedAt:       entry.UpdatedAt,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:              dbEntry.ID,
		ActorID:         dbEntry.ActorID,
		ProjectID:       dbEntry.ProjectID,
		TaskID:          dbEntry.TaskID,
		Date:            dbEntry.EntryDate,
		StartTime:       dbEntry.StartTime,
		EndTime:         dbEntry.EndTime,
		DurationMinutes: dbEntry.DurationMinutes,
		Description:     dbEntry.Description,
		Billable:        dbEntry.Billable,
		Source:          EntrySource(dbEntry.Source),
		CreatedAt:       dbEntry.CreatedAt,
		UpdatedAt:       dbEntry.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain ones.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []*TimeEntry {
	entries := make([]*TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entry := m.FromDatabase(*dbEntry)
		entries[i] = &entry
	}
	return entries
}

// ActiveTimerMapper handles conversion between domain and database
// ActiveTimer models.
type ActiveTimerMapper struct{}

// ToDatabase converts a domain ActiveTimer to a database ActiveTimer.
func (m *ActiveTimerMapper) ToDatabase(timer ActiveTimer) sqlite.ActiveTimer {
	return sqlite.ActiveTimer{
		ActorID:     timer.ActorID,
		ProjectID:   timer.ProjectID,
		TaskID:      timer.TaskID,
		StartedAt:   timer.StartedAt,
		Description: timer.Description,
		Billable:    timer.Billable,
	}
}

// FromDatabase converts a database ActiveTimer to a domain ActiveTimer.
func (m *ActiveTimerMapper) FromDatabase(dbTimer sqlite.ActiveTimer) ActiveTimer {
	return ActiveTimer{
		ActorID:     dbTimer.ActorID,
		ProjectID:   dbTimer.ProjectID,
		TaskID:      dbTimer.TaskID,
		StartedAt:   dbTimer.StartedAt,
		Description: dbTimer.Description,
		Billable:    dbTimer.Billable,
	}
}

// CapacityConfigMapper handles conversion between the domain capacity
// configuration and its stored representation.
type CapacityConfigMapper struct{}

// ToDatabase converts a domain CapacityConfig to database rows.
func (m *CapacityConfigMapper) ToDatabase(cfg CapacityConfig) sqlite.CapacityConfig {
	dbCfg := sqlite.CapacityConfig{DefaultWeeklyHours: cfg.DefaultWeeklyHours}
	for actorID, hours := range cfg.Overrides {
		dbCfg.Overrides = append(dbCfg.Overrides, sqlite.CapacityOverride{
			ActorID:     actorID,
			WeeklyHours: hours,
		})
	}
	return dbCfg
}

// FromDatabase converts stored capacity rows to a domain CapacityConfig.
func (m *CapacityConfigMapper) FromDatabase(dbCfg sqlite.CapacityConfig) CapacityConfig {
	cfg := CapacityConfig{
		DefaultWeeklyHours: dbCfg.DefaultWeeklyHours,
		Overrides:          make(map[string]float64, len(dbCfg.Overrides)),
	}
	for _, override := range dbCfg.Overrides {
		cfg.Overrides[override.ActorID] = override.WeeklyHours
	}
	return cfg
}

// AuditRecordMapper handles conversion between domain and database
// AuditRecord models.
type AuditRecordMapper struct{}

// ToDatabase converts a domain AuditRecord to a database AuditRecord.
func (m *AuditRecordMapper) ToDatabase(record AuditRecord) sqlite.AuditRecord {
	return sqlite.AuditRecord{
		ID:         record.ID,
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		Action:     record.Action,
		ActorID:    record.ActorID,
		EntityName: record.EntityName,
		Reason:     record.Reason,
		CreatedAt:  record.CreatedAt,
	}
}

// FromDatabase converts a database AuditRecord to a domain AuditRecord.
func (m *AuditRecordMapper) FromDatabase(dbRecord sqlite.AuditRecord) AuditRecord {
	return AuditRecord{
		ID:         dbRecord.ID,
		EntityType: dbRecord.EntityType,
		EntityID:   dbRecord.EntityID,
		Action:     dbRecord.Action,
		ActorID:    dbRecord.ActorID,
		EntityName: dbRecord.EntityName,
		Reason:     dbRecord.Reason,
		CreatedAt:  dbRecord.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database AuditRecords to domain ones.
func (m *AuditRecordMapper) FromDatabaseSlice(dbRecords []*sqlite.AuditRecord) []*AuditRecord {
	records := make([]*AuditRecord, len(dbRecords))
	for i, dbRecord := range dbRecords {
		record := m.FromDatabase(*dbRecord)
		records[i] = &record
	}
	return records
}

// Mapper aggregates all model mappers.
type Mapper struct {
	TimeEntry      *TimeEntryMapper
	ActiveTimer    *ActiveTimerMapper
	CapacityConfig *CapacityConfigMapper
	AuditRecord    *AuditRecordMapper
}

// NewMapper creates a new aggregate mapper instance.
func NewMapper() *Mapper {
	return &Mapper{
		TimeEntry:      &TimeEntryMapper{},
		ActiveTimer:    &ActiveTimerMapper{},
		CapacityConfig: &CapacityConfigMapper{},
		AuditRecord:    &AuditRecordMapper{},
	}
}
