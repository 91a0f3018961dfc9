package services

import (
	"context"

	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
	"workload-engine/pkg/logger"
)

// auditor writes activity-feed records. Writes are fire-and-forget: a
// failed audit write never fails the operation that triggered it.
type auditor struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

func newAuditor(repo sqlite.Repository) *auditor {
	return &auditor{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

func (a *auditor) record(ctx context.Context, entityType, entityID, action, actorID, entityName, reason string) {
	rec := domain.AuditRecord{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		EntityName: entityName,
		Reason:     reason,
	}
	dbRec := a.mapper.AuditRecord.ToDatabase(rec)
	if err := a.repo.CreateAuditRecord(ctx, &dbRec); err != nil {
		log := logger.L()
		log.Warn().
			Err(err).
			Str("action", action).
			Str("entity_id", entityID).
			Msg("audit record write failed")
	}
}

// activityServiceImpl implements the ActivityService interface
type activityServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewActivityService creates a new ActivityService instance
func NewActivityService(repo sqlite.Repository) ActivityService {
	return &activityServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// Recent returns the newest audit records, most recent first.
func (s *activityServiceImpl) Recent(ctx context.Context, limit int) ([]*domain.AuditRecord, error) {
	if limit <= 0 {
		limit = DefaultActivityFeedLimit
	}
	dbRecords, err := s.repo.ListAuditRecords(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.mapper.AuditRecord.FromDatabaseSlice(dbRecords), nil
}
