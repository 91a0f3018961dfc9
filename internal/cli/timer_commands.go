package cli

import (
	"context"
	"fmt"

	"workload-engine/internal/services"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app, errorHandler: NewErrorHandler()}
}

// StartOptions carries the parsed flags of a start invocation
type StartOptions struct {
	Actor       string
	ProjectID   string
	TaskID      string
	Description string
	Billable    bool
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, opts StartOptions) error {
	actorID, err := c.app.CurrentActor(ctx, opts.Actor)
	if err != nil {
		return err
	}

	timer, err := c.app.services.Timers.Start(ctx, services.StartInput{
		ActorID:      actorID,
		ProjectID:    opts.ProjectID,
		TaskID:       opts.TaskID,
		Description:  opts.Description,
		Billable:     opts.Billable,
		Capabilities: c.app.Capabilities(),
	})
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	label := timer.ProjectID
	if project, perr := c.app.directory.Project(ctx, timer.ProjectID); perr == nil {
		label = project.Name
	}
	fmt.Printf("Timer started on %s at %s\n", label, timer.StartedAt.Local().Format("15:04"))
	return nil
}

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context, actor string) error {
	actorID, err := c.app.CurrentActor(ctx, actor)
	if err != nil {
		return err
	}

	result, err := c.app.services.Timers.Stop(ctx, actorID)
	if err != nil {
		if c.errorHandler.IsNotFoundError(err) {
			return fmt.Errorf("no timer is running for %s", actorID)
		}
		return c.errorHandler.Handle("stop timer", err)
	}

	fmt.Printf("Timer stopped: %s logged on %s\n",
		services.FormatMinutes(result.DurationMinutes), result.Entry.Date.Format("2006-01-02"))
	return nil
}

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, actor string) error {
	actorID, err := c.app.CurrentActor(ctx, actor)
	if err != nil {
		return err
	}

	minutes, err := c.app.services.Timers.RunningDuration(ctx, actorID)
	if err != nil {
		return c.errorHandler.Handle("read timer status", err)
	}
	if minutes == 0 {
		fmt.Println("No timer running")
		return nil
	}
	fmt.Printf("Timer running for %s\n", services.FormatMinutes(minutes))
	return nil
}
