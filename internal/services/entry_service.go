package services

import (
	"context"
	"fmt"
	"time"

	"workload-engine/internal/domain"
	"workload-engine/internal/errors"
	"workload-engine/internal/repository/sqlite"
	"workload-engine/internal/validation"
)

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.EntryValidator
	auditor   *auditor
	now       func() time.Time
}

// NewEntryService creates a new EntryService instance
func NewEntryService(repo sqlite.Repository) EntryService {
	return &entryServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewEntryValidator(),
		auditor:   newAuditor(repo),
		now:       time.Now,
	}
}

// Add validates and stores a manual time entry.
func (e *entryServiceImpl) Add(ctx context.Context, in EntryInput) (*domain.TimeEntry, error) {
	entry := domain.TimeEntry{
		ActorID:         in.ActorID,
		ProjectID:       in.ProjectID,
		TaskID:          in.TaskID,
		Date:            domain.DateOnly(in.Date),
		DurationMinutes: in.Minutes,
		Description:     in.Description,
		Billable:        in.Billable,
		Source:          domain.SourceManual,
	}

	if err := e.validator.ValidateEntryForCreation(entry, e.now()); err != nil {
		return nil, err
	}

	dbEntry := e.mapper.TimeEntry.ToDatabase(entry)
	if err := e.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}
	entry = e.mapper.TimeEntry.FromDatabase(dbEntry)

	e.auditor.record(ctx, "time_entry", entry.ID, "entry_created", entry.ActorID,
		entry.ProjectID, FormatMinutes(entry.DurationMinutes))

	return &entry, nil
}

// Update applies a partial patch to an entry. Only the owning actor or a
// caller holding the manage-entries capability may mutate it. The audit
// record captures the semantic delta.
func (e *entryServiceImpl) Update(ctx context.Context, id string, patch EntryPatch, actorID string, caps CapabilitySet) (*domain.TimeEntry, error) {
	if err := e.validator.ValidateEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := e.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := e.mapper.TimeEntry.FromDatabase(*dbEntry)

	if err := e.checkOwnership(entry, actorID, caps, "update time entry"); err != nil {
		return nil, err
	}

	delta := applyPatch(&entry, patch)

	if err := e.validator.ValidateEntryForCreation(entry, e.now()); err != nil {
		return nil, err
	}

	updated := e.mapper.TimeEntry.ToDatabase(entry)
	if err := e.repo.UpdateTimeEntry(ctx, &updated); err != nil {
		return nil, err
	}
	entry = e.mapper.TimeEntry.FromDatabase(updated)

	e.auditor.record(ctx, "time_entry", entry.ID, "entry_updated", actorID,
		entry.ProjectID, delta)

	return &entry, nil
}

// Delete removes an entry, subject to the same ownership rule as Update.
func (e *entryServiceImpl) Delete(ctx context.Context, id string, actorID string, caps CapabilitySet) error {
	if err := e.validator.ValidateEntryID(id); err != nil {
		return err
	}

	dbEntry, err := e.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return err
	}
	entry := e.mapper.TimeEntry.FromDatabase(*dbEntry)

	if err := e.checkOwnership(entry, actorID, caps, "delete time entry"); err != nil {
		return err
	}

	if err := e.repo.DeleteTimeEntry(ctx, id); err != nil {
		return err
	}

	e.auditor.record(ctx, "time_entry", id, "entry_deleted", actorID, entry.ProjectID,
		fmt.Sprintf("%s on %s", FormatMinutes(entry.DurationMinutes), entry.Date.Format("2006-01-02")))

	return nil
}

// Query returns entries matching the filter, sorted by (date, start time)
// ascending. Never mutates.
func (e *entryServiceImpl) Query(ctx context.Context, q EntryQuery) ([]*domain.TimeEntry, error) {
	if err := e.validator.ValidateQueryRange(q.DateFrom, q.DateTo); err != nil {
		return nil, err
	}

	filter := sqlite.EntryFilter{
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	}
	if q.ActorID != "" {
		filter.ActorID = &q.ActorID
	}
	if q.ProjectID != "" {
		filter.ProjectID = &q.ProjectID
	}
	if q.TaskID != "" {
		filter.TaskID = &q.TaskID
	}
	if q.Source != "" {
		source := string(q.Source)
		filter.Source = &source
	}

	dbEntries, err := e.repo.SearchTimeEntries(ctx, filter)
	if err != nil {
		return nil, err
	}

	return e.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

func (e *entryServiceImpl) checkOwnership(entry domain.TimeEntry, actorID string, caps CapabilitySet, action string) error {
	if entry.ActorID == actorID || caps.Has(CapManageEntries) {
		return nil
	}
	return errors.NewPolicyError(action, "entry belongs to another actor")
}

// applyPatch mutates the entry in place and returns a human-readable delta
// for the audit trail.
func applyPatch(entry *domain.TimeEntry, patch EntryPatch) string {
	delta := ""
	if patch.Minutes != nil && *patch.Minutes != entry.DurationMinutes {
		delta = fmt.Sprintf("duration %s -> %s",
			FormatMinutes(entry.DurationMinutes), FormatMinutes(*patch.Minutes))
		entry.DurationMinutes = *patch.Minutes
	}
	if patch.Date != nil {
		day := domain.DateOnly(*patch.Date)
		if !entry.SameDate(day) {
			delta = appendDelta(delta, fmt.Sprintf("date %s -> %s",
				entry.Date.Format("2006-01-02"), day.Format("2006-01-02")))
			entry.Date = day
		}
	}
	if patch.ProjectID != nil && *patch.ProjectID != entry.ProjectID {
		delta = appendDelta(delta, fmt.Sprintf("project %s -> %s", entry.ProjectID, *patch.ProjectID))
		entry.ProjectID = *patch.ProjectID
	}
	if patch.TaskID != nil {
		entry.TaskID = *patch.TaskID
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Billable != nil {
		entry.Billable = *patch.Billable
	}
	return delta
}

func appendDelta(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + ", " + addition
}
