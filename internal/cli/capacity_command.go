package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"workload-engine/internal/domain"
)

// CapacityCommand handles the capacity command
type CapacityCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCapacityCommand creates a new capacity command handler
func NewCapacityCommand(app *App) *CapacityCommand {
	return &CapacityCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the capacity command. Without arguments it prints the current
// configuration; "set" updates it.
func (c *CapacityCommand) Execute(ctx context.Context, args []string, actor string) error {
	if len(args) == 0 {
		return c.show(ctx)
	}
	if args[0] == "set" {
		return c.set(ctx, args[1:], actor)
	}
	return fmt.Errorf("unknown capacity subcommand %q: expected \"set\" or no arguments", args[0])
}

func (c *CapacityCommand) show(ctx context.Context) error {
	cfg, err := c.app.services.Capacity.Config(ctx)
	if err != nil {
		return c.errorHandler.Handle("read capacity configuration", err)
	}

	fmt.Printf("Default weekly capacity: %.1fh\n", cfg.DefaultWeeklyHours)
	if len(cfg.Overrides) == 0 {
		return nil
	}

	ids := make([]string, 0, len(cfg.Overrides))
	for id := range cfg.Overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("\nOverrides:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, id := range ids {
		name := id
		if member, merr := c.app.directory.Member(ctx, id); merr == nil {
			name = member.Name
		}
		fmt.Fprintf(w, "  %s\t%.1fh\n", name, cfg.Overrides[id])
	}
	w.Flush()
	return nil
}

// set accepts either "set <hours>" for the default or "set <member> <hours>"
// for a per-member override.
func (c *CapacityCommand) set(ctx context.Context, args []string, actor string) error {
	actorID, err := c.app.CurrentActor(ctx, actor)
	if err != nil {
		return err
	}

	cfg, err := c.app.services.Capacity.Config(ctx)
	if err != nil {
		return c.errorHandler.Handle("read capacity configuration", err)
	}
	updated := domain.CapacityConfig{
		DefaultWeeklyHours: cfg.DefaultWeeklyHours,
		Overrides:          make(map[string]float64, len(cfg.Overrides)+1),
	}
	for id, hours := range cfg.Overrides {
		updated.Overrides[id] = hours
	}

	switch len(args) {
	case 1:
		hours, perr := parseHours(args[0])
		if perr != nil {
			return perr
		}
		updated.DefaultWeeklyHours = hours
	case 2:
		memberID, ok := c.app.directory.ResolveOwner(ctx, args[0])
		if !ok {
			memberID = args[0]
		}
		hours, perr := parseHours(args[1])
		if perr != nil {
			return perr
		}
		updated.Overrides[memberID] = hours
	default:
		return fmt.Errorf("usage: we capacity set <hours> | we capacity set <member> <hours>")
	}

	if err := c.app.services.Capacity.Update(ctx, updated, actorID); err != nil {
		return c.errorHandler.Handle("update capacity configuration", err)
	}
	fmt.Println("Capacity configuration updated")
	return nil
}

func parseHours(value string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSuffix(value, "h"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours value %q", value)
	}
	return hours, nil
}
