package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"workload-engine/internal/domain"
	"workload-engine/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHandler: NewErrorHandler()}
}

// AddOptions carries the parsed flags of an add invocation
type AddOptions struct {
	Actor       string
	ProjectID   string
	TaskID      string
	Date        string
	Minutes     int
	Description string
	Billable    bool
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, opts AddOptions) error {
	actorID, err := c.app.CurrentActor(ctx, opts.Actor)
	if err != nil {
		return err
	}
	date, err := parseDateArg(opts.Date)
	if err != nil {
		return err
	}

	entry, err := c.app.services.Entries.Add(ctx, services.EntryInput{
		ActorID:     actorID,
		ProjectID:   opts.ProjectID,
		TaskID:      opts.TaskID,
		Date:        date,
		Minutes:     opts.Minutes,
		Description: opts.Description,
		Billable:    opts.Billable,
	})
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}

	fmt.Printf("Logged %s on %s (%s)\n",
		services.FormatMinutes(entry.DurationMinutes), entry.Date.Format("2006-01-02"), entry.ID)
	return nil
}

// EntriesCommand handles the entries listing command
type EntriesCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEntriesCommand creates a new entries command handler
func NewEntriesCommand(app *App) *EntriesCommand {
	return &EntriesCommand{app: app, errorHandler: NewErrorHandler()}
}

// EntriesOptions carries the parsed flags of an entries invocation
type EntriesOptions struct {
	Actor     string
	ProjectID string
	From      string
	To        string
	Source    string
}

// Execute runs the entries command
func (c *EntriesCommand) Execute(ctx context.Context, opts EntriesOptions) error {
	query := services.EntryQuery{
		ProjectID: opts.ProjectID,
		Source:    domain.EntrySource(opts.Source),
	}

	if opts.Actor != "" {
		actorID, err := c.app.CurrentActor(ctx, opts.Actor)
		if err != nil {
			return err
		}
		query.ActorID = actorID
	}
	if opts.From != "" {
		from, err := parseDateArg(opts.From)
		if err != nil {
			return err
		}
		query.DateFrom = &from
	}
	if opts.To != "" {
		to, err := parseDateArg(opts.To)
		if err != nil {
			return err
		}
		query.DateTo = &to
	}

	entries, err := c.app.services.Entries.Query(ctx, query)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	if len(entries) == 0 {
		fmt.Println("No entries found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tACTOR\tPROJECT\tDURATION\tSOURCE\tDESCRIPTION")
	total := 0
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Date.Format("2006-01-02"),
			entry.ActorID,
			c.projectLabel(ctx, entry.ProjectID),
			services.FormatMinutes(entry.DurationMinutes),
			entry.Source,
			entry.Description,
		)
		total += entry.DurationMinutes
	}
	w.Flush()
	fmt.Printf("\nTotal: %s across %d entries\n", services.FormatMinutes(total), len(entries))
	return nil
}

func (c *EntriesCommand) projectLabel(ctx context.Context, projectID string) string {
	if projectID == "" {
		return services.UnassignedProjectLabel
	}
	if project, err := c.app.directory.Project(ctx, projectID); err == nil {
		return project.Name
	}
	return projectID
}
