package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/errors"
	"workload-engine/internal/repository/sqlite"
	"workload-engine/internal/validation"
	"workload-engine/pkg/logger"
)

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	repo      sqlite.Repository
	dir       directory.Directory
	mapper    *domain.Mapper
	validator *validation.TimerValidator
	auditor   *auditor
	now       func() time.Time
}

// NewTimerService creates a new TimerService instance
func NewTimerService(repo sqlite.Repository, dir directory.Directory) TimerService {
	return &timerServiceImpl{
		repo:      repo,
		dir:       dir,
		mapper:    domain.NewMapper(),
		validator: validation.NewTimerValidator(),
		auditor:   newAuditor(repo),
		now:       time.Now,
	}
}

// Start begins a timer for the actor. It fails with a conflict error when
// the actor already has one, and with a policy error when the target
// project or task is in a terminal state and the caller cannot override.
func (t *timerServiceImpl) Start(ctx context.Context, in StartInput) (*domain.ActiveTimer, error) {
	if err := t.validator.ValidateStart(in.ActorID, in.ProjectID); err != nil {
		return nil, err
	}

	if err := t.checkStartPolicy(ctx, in); err != nil {
		return nil, err
	}

	timer := domain.ActiveTimer{
		ActorID:     in.ActorID,
		ProjectID:   in.ProjectID,
		TaskID:      in.TaskID,
		StartedAt:   t.now(),
		Description: in.Description,
		Billable:    in.Billable,
	}

	dbTimer := t.mapper.ActiveTimer.ToDatabase(timer)
	if err := t.repo.CreateActiveTimer(ctx, &dbTimer); err != nil {
		return nil, err
	}

	t.auditor.record(ctx, "timer", in.ActorID, "timer_started", in.ActorID, in.ProjectID, in.Description)
	log := logger.L()
	log.Debug().
		Str("actor", in.ActorID).
		Str("project", in.ProjectID).
		Msg("timer started")

	return &timer, nil
}

// checkStartPolicy blocks timers against terminal projects and completed
// tasks unless the caller holds the override capability.
func (t *timerServiceImpl) checkStartPolicy(ctx context.Context, in StartInput) error {
	if in.Capabilities.Has(CapOverrideTerminal) {
		return nil
	}

	project, err := t.dir.Project(ctx, in.ProjectID)
	if err != nil {
		return err
	}
	if project.Status.IsTerminal() {
		return errors.NewPolicyError("start timer",
			fmt.Sprintf("project %s is %s", project.Name, project.Status))
	}

	if in.TaskID != "" {
		task, err := t.dir.Task(ctx, in.TaskID)
		if err != nil {
			return err
		}
		if task.Status == domain.TaskCompleted {
			return errors.NewPolicyError("start timer",
				fmt.Sprintf("task %s is completed", task.Name))
		}
	}

	return nil
}

// Stop ends the actor's timer and materializes the corresponding time
// entry in a single transaction. Duration is rounded to the nearest minute
// with a floor of one.
func (t *timerServiceImpl) Stop(ctx context.Context, actorID string) (*StopResult, error) {
	if err := t.validator.ValidateActorID(actorID); err != nil {
		return nil, err
	}

	dbTimer, err := t.repo.GetActiveTimer(ctx, actorID)
	if err != nil {
		return nil, err
	}
	timer := t.mapper.ActiveTimer.FromDatabase(*dbTimer)

	entry := timer.Materialize(t.now())
	dbEntry := t.mapper.TimeEntry.ToDatabase(entry)
	if err := t.repo.StopTimerWithEntry(ctx, actorID, &dbEntry); err != nil {
		return nil, err
	}
	entry = t.mapper.TimeEntry.FromDatabase(dbEntry)

	t.auditor.record(ctx, "time_entry", entry.ID, "timer_stopped", actorID,
		entry.ProjectID, FormatMinutes(entry.DurationMinutes))
	log := logger.L()
	log.Debug().
		Str("actor", actorID).
		Int("minutes", entry.DurationMinutes).
		Msg("timer stopped")

	return &StopResult{
		Entry:           &entry,
		DurationMinutes: entry.DurationMinutes,
	}, nil
}

// RunningDuration returns whole minutes elapsed on the actor's timer, or 0
// when no timer is running. Side-effect free; used for live display.
func (t *timerServiceImpl) RunningDuration(ctx context.Context, actorID string) (int, error) {
	dbTimer, err := t.repo.GetActiveTimer(ctx, actorID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return 0, nil
		}
		return 0, err
	}
	timer := t.mapper.ActiveTimer.FromDatabase(*dbTimer)
	return timer.ElapsedMinutes(t.now()), nil
}

// ForgottenTimers returns a warning for every running timer older than the
// threshold, longest-running first.
func (t *timerServiceImpl) ForgottenTimers(ctx context.Context, thresholdMinutes int) ([]*TimerWarning, error) {
	if thresholdMinutes <= 0 {
		thresholdMinutes = DefaultForgottenTimerMinutes
	}

	dbTimers, err := t.repo.ListActiveTimers(ctx)
	if err != nil {
		return nil, err
	}

	now := t.now()
	var warnings []*TimerWarning
	for _, dbTimer := range dbTimers {
		timer := t.mapper.ActiveTimer.FromDatabase(*dbTimer)
		elapsed := timer.ElapsedMinutes(now)
		if elapsed <= thresholdMinutes {
			continue
		}
		warnings = append(warnings, &TimerWarning{
			ActorID:        timer.ActorID,
			ActorName:      t.actorName(ctx, timer.ActorID),
			ProjectID:      timer.ProjectID,
			StartedAt:      timer.StartedAt,
			ElapsedMinutes: elapsed,
		})
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].ElapsedMinutes > warnings[j].ElapsedMinutes
	})

	return warnings, nil
}

// actorName resolves a display name, falling back to the id for actors that
// have left the roster.
func (t *timerServiceImpl) actorName(ctx context.Context, actorID string) string {
	member, err := t.dir.Member(ctx, actorID)
	if err != nil {
		return actorID
	}
	return member.Name
}
