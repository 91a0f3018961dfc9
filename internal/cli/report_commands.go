package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"workload-engine/internal/services"
)

var workdayHeaders = [5]string{"MON", "TUE", "WED", "THU", "FRI"}

// TimesheetCommand handles the timesheet command
type TimesheetCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTimesheetCommand creates a new timesheet command handler
func NewTimesheetCommand(app *App) *TimesheetCommand {
	return &TimesheetCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the timesheet command
func (c *TimesheetCommand) Execute(ctx context.Context, actor, week string) error {
	actorID, err := c.app.CurrentActor(ctx, actor)
	if err != nil {
		return err
	}
	weekStart, err := parseDateArg(week)
	if err != nil {
		return err
	}

	sheet, err := c.app.services.Timesheets.WeeklyTimesheet(ctx, actorID, weekStart)
	if err != nil {
		return c.errorHandler.Handle("build timesheet", err)
	}

	fmt.Printf("Timesheet for %s, week of %s\n\n", actorID, sheet.WeekStart.Format("2006-01-02"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "PROJECT\t%s\t%s\t%s\t%s\t%s\tTOTAL\n",
		workdayHeaders[0], workdayHeaders[1], workdayHeaders[2], workdayHeaders[3], workdayHeaders[4])
	for _, row := range sheet.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ProjectName,
			formatCell(row.DayMinutes[0]), formatCell(row.DayMinutes[1]), formatCell(row.DayMinutes[2]),
			formatCell(row.DayMinutes[3]), formatCell(row.DayMinutes[4]),
			services.FormatMinutes(row.TotalMinutes))
	}
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\t%s\t%s\t%s\n",
		formatCell(sheet.DayTotals[0]), formatCell(sheet.DayTotals[1]), formatCell(sheet.DayTotals[2]),
		formatCell(sheet.DayTotals[3]), formatCell(sheet.DayTotals[4]),
		services.FormatMinutes(sheet.TotalMinutes))
	w.Flush()

	if len(sheet.MissingDays) > 0 {
		fmt.Print("\nMissing days:")
		for _, day := range sheet.MissingDays {
			fmt.Printf(" %s", day.Format("Mon 2006-01-02"))
		}
		fmt.Println()
	}
	return nil
}

func formatCell(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	return services.FormatMinutes(minutes)
}

// UtilizationCommand handles the utilization command
type UtilizationCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewUtilizationCommand creates a new utilization command handler
func NewUtilizationCommand(app *App) *UtilizationCommand {
	return &UtilizationCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the utilization command
func (c *UtilizationCommand) Execute(ctx context.Context, week string) error {
	weekStart, err := parseDateArg(week)
	if err != nil {
		return err
	}

	snapshots, err := c.app.services.Utilization.TeamUtilization(ctx, weekStart)
	if err != nil {
		return c.errorHandler.Handle("compute utilization", err)
	}
	if len(snapshots) == 0 {
		fmt.Println("No team members in the roster")
		return nil
	}

	fmt.Printf("Team utilization, week of %s\n\n", snapshots[0].WeekStart.Format("2006-01-02"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tTRACKED\tPLANNED\tCAPACITY\tUTIL%\tPLAN%\tFLAGS")
	for _, s := range snapshots {
		flags := ""
		if s.OverCapacity {
			flags = "over-capacity"
		}
		if s.OverPlanned {
			if flags != "" {
				flags += ", "
			}
			flags += "over-planned"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\t%d%%\t%s\n",
			s.ActorName,
			services.FormatMinutes(s.TrackedMinutes),
			services.FormatMinutes(s.PlannedMinutes),
			services.FormatMinutes(s.CapacityMinutes),
			s.UtilizationPct, s.PlannedPct, flags)
	}
	w.Flush()
	return nil
}

// ForecastCommand handles the forecast command
type ForecastCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewForecastCommand creates a new forecast command handler
func NewForecastCommand(app *App) *ForecastCommand {
	return &ForecastCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the forecast command
func (c *ForecastCommand) Execute(ctx context.Context, weeks int) error {
	if weeks <= 0 {
		weeks = c.app.config.Forecast.WeeksAhead
	}

	forecast, err := c.app.services.Forecast.Forecast(ctx, weeks)
	if err != nil {
		return c.errorHandler.Handle("build forecast", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WEEK\tCAPACITY\tPLANNED\tGAP\tUTIL%\tSTATUS\tOVERLOADED")
	for _, wk := range forecast {
		status := string(wk.Status)
		if wk.IncludesUndatedBacklog {
			status += " (incl. undated backlog)"
		}
		overloaded := ""
		for i, name := range wk.OverCapacityActors {
			if i > 0 {
				overloaded += ", "
			}
			overloaded += name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\t%s\t%s\n",
			wk.WeekStart.Format("2006-01-02"),
			services.FormatMinutes(wk.TotalCapacityMinutes),
			services.FormatMinutes(wk.TotalPlannedMinutes),
			services.FormatMinutes(wk.GapMinutes),
			wk.UtilizationPct, status, overloaded)
	}
	w.Flush()
	return nil
}

// CostsCommand handles the costs command
type CostsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCostsCommand creates a new costs command handler
func NewCostsCommand(app *App) *CostsCommand {
	return &CostsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the costs command. With a project argument it reports that
// project only, otherwise every project in the snapshot.
func (c *CostsCommand) Execute(ctx context.Context, projectID string) error {
	var ids []string
	if projectID != "" {
		ids = append(ids, projectID)
	} else {
		projects, err := c.app.directory.Projects(ctx)
		if err != nil {
			return c.errorHandler.Handle("list projects", err)
		}
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tREVENUE\tPLANNED\tTRACKED\tVARIANCE\tMARGIN%\tFLAGS")
	for _, id := range ids {
		snapshot, err := c.app.services.Cost.CostMetrics(ctx, id)
		if err != nil {
			return c.errorHandler.Handle("compute project costs", err)
		}
		flags := ""
		if snapshot.IsOverBudget {
			flags = "over-budget"
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f (%d%%)\t%d%%\t%s\n",
			snapshot.ProjectName, snapshot.Revenue, snapshot.PlannedCost,
			snapshot.TrackedCost, snapshot.VarianceCost, snapshot.VariancePct,
			snapshot.MarginRealPct, flags)
	}
	w.Flush()
	return nil
}

// GanttCommand handles the gantt command
type GanttCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewGanttCommand creates a new gantt command handler
func NewGanttCommand(app *App) *GanttCommand {
	return &GanttCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the gantt command
func (c *GanttCommand) Execute(ctx context.Context) error {
	rows, err := c.app.services.Gantt.GanttRows(ctx)
	if err != nil {
		return c.errorHandler.Handle("build gantt data", err)
	}
	if len(rows) == 0 {
		fmt.Println("No projects to chart")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tKIND\tSTART\tEND\tSTATUS")
	for _, row := range rows {
		label := row.Label
		if row.Kind == services.GanttTask {
			label = "  " + label
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			label, row.Kind,
			row.Start.Format("2006-01-02"), row.End.Format("2006-01-02"),
			row.Status)
	}
	w.Flush()
	return nil
}

// AlertsCommand handles the alerts command
type AlertsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAlertsCommand creates a new alerts command handler
func NewAlertsCommand(app *App) *AlertsCommand {
	return &AlertsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the alerts command
func (c *AlertsCommand) Execute(ctx context.Context) error {
	alerts, err := c.app.services.Alerts.GenerateAlerts(ctx)
	if err != nil {
		return c.errorHandler.Handle("generate alerts", err)
	}
	if len(alerts) == 0 {
		fmt.Println("No alerts")
		return nil
	}

	for _, alert := range alerts {
		fmt.Printf("[%s] %s\n", alert.Severity, alert.Title)
		if alert.Action != "" {
			fmt.Printf("        %s\n", alert.Action)
		}
	}
	return nil
}

// ActivityCommand handles the activity command
type ActivityCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewActivityCommand creates a new activity command handler
func NewActivityCommand(app *App) *ActivityCommand {
	return &ActivityCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the activity command
func (c *ActivityCommand) Execute(ctx context.Context, limit int) error {
	records, err := c.app.services.Activity.Recent(ctx, limit)
	if err != nil {
		return c.errorHandler.Handle("list activity", err)
	}
	if len(records) == 0 {
		fmt.Println("No activity recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tENTITY\tDETAIL")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			record.CreatedAt.Format("2006-01-02 15:04"),
			record.ActorID,
			record.Action,
			record.EntityID,
			record.Reason,
		)
	}
	w.Flush()
	return nil
}
