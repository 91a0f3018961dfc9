package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"workload-engine/internal/config"
	"workload-engine/internal/directory"
	"workload-engine/internal/services"
)

// commandTimeout bounds a single CLI invocation end to end.
const commandTimeout = 30 * time.Second

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with all subcommands wired
func NewRootCommand(container *services.Container, dir directory.Directory, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app: NewApp(container, dir, cfg),
	}

	root.cmd = &cobra.Command{
		Use:   "we",
		Short: "Workload and capacity engine for small teams",
		Long: `Workload Engine (we) tracks time against projects and tasks and derives
capacity views from the log: utilization, forecasts, costs, timesheets,
gantt data, and alerts.

EXAMPLES:
  we start --project p1 --task t1          # Start a timer
  we stop                                  # Stop it and log the entry
  we add --project p1 --minutes 90         # Log time by hand
  we timesheet                             # This week's project x day matrix
  we utilization                           # Team load vs capacity
  we forecast --weeks 8                    # Capacity projection
  we costs                                 # Cost and margin per project
  we alerts                                # Composed warning feed

CONFIGURATION:
  WE_DB_DIR                                Database directory (default: ~/.workload-engine)
  WE_DB_FILENAME                           Database filename (default: workload.db)
  WE_DIRECTORY_FILE                        Path to the exported project/roster snapshot
  WE_ACTOR                                 Default acting member (id or display name)
  WE_CAPABILITIES                          Granted capabilities, comma-separated
  WE_COST_OVERHEAD_FACTOR                  Cost overhead multiplier (default: 1.7)
  WE_COST_WEEKS_PER_MONTH                  Weeks per month divisor (default: 4.33)
  WE_COST_MINIMUM_RATE                     Hourly rate floor (default: 50)
  WE_FORECAST_WEEKS                        Forecast horizon in weeks (default: 8)
  WE_ALERT_FORGOTTEN_TIMER_MINUTES         Forgotten timer threshold (default: 240)
  WE_LOG_LEVEL                             Log level (default: info)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func (r *RootCommand) addGlobalFlags() {
	r.cmd.PersistentFlags().String("actor", "", "Acting member, id or display name (overrides WE_ACTOR)")
}

func (r *RootCommand) actorFlag(cmd *cobra.Command) string {
	actor, _ := cmd.Flags().GetString("actor")
	return actor
}

func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a timer",
		Long:  "Start a timer for the acting member. Fails if a timer is already running.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			opts := StartOptions{Actor: r.actorFlag(cmd)}
			opts.ProjectID, _ = cmd.Flags().GetString("project")
			opts.TaskID, _ = cmd.Flags().GetString("task")
			opts.Description, _ = cmd.Flags().GetString("desc")
			opts.Billable, _ = cmd.Flags().GetBool("billable")
			return NewStartCommand(r.app).Execute(ctx, opts)
		},
	}
	startCmd.Flags().String("project", "", "Project to bill the time to")
	startCmd.Flags().String("task", "", "Optional task within the project")
	startCmd.Flags().String("desc", "", "Optional description")
	startCmd.Flags().Bool("billable", true, "Whether the time is billable")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer and log the entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewStopCommand(r.app).Execute(ctx, r.actorFlag(cmd))
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewStatusCommand(r.app).Execute(ctx, r.actorFlag(cmd))
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Log a manual time entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			opts := AddOptions{Actor: r.actorFlag(cmd)}
			opts.ProjectID, _ = cmd.Flags().GetString("project")
			opts.TaskID, _ = cmd.Flags().GetString("task")
			opts.Date, _ = cmd.Flags().GetString("date")
			opts.Minutes, _ = cmd.Flags().GetInt("minutes")
			opts.Description, _ = cmd.Flags().GetString("desc")
			opts.Billable, _ = cmd.Flags().GetBool("billable")
			return NewAddCommand(r.app).Execute(ctx, opts)
		},
	}
	addCmd.Flags().String("project", "", "Project to bill the time to")
	addCmd.Flags().String("task", "", "Optional task within the project")
	addCmd.Flags().String("date", "", "Entry date YYYY-MM-DD (default: today)")
	addCmd.Flags().Int("minutes", 0, "Duration in minutes")
	addCmd.Flags().String("desc", "", "Optional description")
	addCmd.Flags().Bool("billable", true, "Whether the time is billable")

	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "List time entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			opts := EntriesOptions{Actor: r.actorFlag(cmd)}
			opts.ProjectID, _ = cmd.Flags().GetString("project")
			opts.From, _ = cmd.Flags().GetString("from")
			opts.To, _ = cmd.Flags().GetString("to")
			opts.Source, _ = cmd.Flags().GetString("source")
			if all, _ := cmd.Flags().GetBool("all"); all {
				opts.Actor = ""
			}
			return NewEntriesCommand(r.app).Execute(ctx, opts)
		},
	}
	entriesCmd.Flags().String("project", "", "Filter by project")
	entriesCmd.Flags().String("from", "", "Start date YYYY-MM-DD")
	entriesCmd.Flags().String("to", "", "End date YYYY-MM-DD")
	entriesCmd.Flags().String("source", "", "Filter by source: timer or manual")
	entriesCmd.Flags().Bool("all", false, "List entries for every member, not just the actor")

	timesheetCmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Show the week's project x day matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			week, _ := cmd.Flags().GetString("week")
			return NewTimesheetCommand(r.app).Execute(ctx, r.actorFlag(cmd), week)
		},
	}
	timesheetCmd.Flags().String("week", "", "Any date in the target week, YYYY-MM-DD (default: this week)")

	utilizationCmd := &cobra.Command{
		Use:   "utilization",
		Short: "Show team load against capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			week, _ := cmd.Flags().GetString("week")
			return NewUtilizationCommand(r.app).Execute(ctx, week)
		},
	}
	utilizationCmd.Flags().String("week", "", "Any date in the target week, YYYY-MM-DD (default: this week)")

	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project team capacity against planned work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			weeks, _ := cmd.Flags().GetInt("weeks")
			return NewForecastCommand(r.app).Execute(ctx, weeks)
		},
	}
	forecastCmd.Flags().Int("weeks", 0, "Forecast horizon in weeks (default: WE_FORECAST_WEEKS)")

	costsCmd := &cobra.Command{
		Use:   "costs [project]",
		Short: "Show cost and margin metrics per project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			projectID := ""
			if len(args) == 1 {
				projectID = args[0]
			}
			return NewCostsCommand(r.app).Execute(ctx, projectID)
		},
	}

	ganttCmd := &cobra.Command{
		Use:   "gantt",
		Short: "Show timeline rows for projects and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewGanttCommand(r.app).Execute(ctx)
		},
	}

	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show the composed warning feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewAlertsCommand(r.app).Execute(ctx)
		},
	}

	activityCmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the recent activity feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			limit, _ := cmd.Flags().GetInt("limit")
			return NewActivityCommand(r.app).Execute(ctx, limit)
		},
	}
	activityCmd.Flags().Int("limit", 0, "Maximum number of records (default: 50)")

	capacityCmd := &cobra.Command{
		Use:   "capacity [set <hours> | set <member> <hours>]",
		Short: "Show or update weekly capacity configuration",
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewCapacityCommand(r.app).Execute(ctx, args, r.actorFlag(cmd))
		},
	}

	r.cmd.AddCommand(
		startCmd,
		stopCmd,
		statusCmd,
		addCmd,
		entriesCmd,
		timesheetCmd,
		utilizationCmd,
		forecastCmd,
		costsCmd,
		ganttCmd,
		alertsCmd,
		activityCmd,
		capacityCmd,
	)
}
