package services

import (
	"context"
	"fmt"

	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
	"workload-engine/internal/validation"
)

// capacityServiceImpl implements the CapacityService interface
type capacityServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.TimerValidator
	auditor   *auditor
}

// NewCapacityService creates a new CapacityService instance
func NewCapacityService(repo sqlite.Repository) CapacityService {
	return &capacityServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewTimerValidator(),
		auditor:   newAuditor(repo),
	}
}

// WeeklyHours returns the actor's override if present, else the global
// default.
func (c *capacityServiceImpl) WeeklyHours(ctx context.Context, actorID string) (float64, error) {
	cfg, err := c.Config(ctx)
	if err != nil {
		return 0, err
	}
	return cfg.WeeklyHours(actorID), nil
}

// Config loads the full capacity configuration.
func (c *capacityServiceImpl) Config(ctx context.Context) (*domain.CapacityConfig, error) {
	dbCfg, err := c.repo.GetCapacityConfig(ctx)
	if err != nil {
		return nil, err
	}
	cfg := c.mapper.CapacityConfig.FromDatabase(*dbCfg)
	return &cfg, nil
}

// Update replaces the whole configuration atomically. Callers must supply
// the full structure; there are no partial-field merge semantics.
func (c *capacityServiceImpl) Update(ctx context.Context, cfg domain.CapacityConfig, actorID string) error {
	if err := c.validator.ValidateCapacityHours("default_weekly_hours", cfg.DefaultWeeklyHours); err != nil {
		return err
	}
	for id, hours := range cfg.Overrides {
		if err := c.validator.ValidateCapacityHours("override."+id, hours); err != nil {
			return err
		}
	}

	dbCfg := c.mapper.CapacityConfig.ToDatabase(cfg)
	if err := c.repo.ReplaceCapacityConfig(ctx, &dbCfg); err != nil {
		return err
	}

	c.auditor.record(ctx, "capacity_config", "global", "capacity_updated", actorID, "",
		fmt.Sprintf("default %.1fh, %d overrides", cfg.DefaultWeeklyHours, len(cfg.Overrides)))

	return nil
}
