package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"workload-engine/internal/config"
	"workload-engine/internal/directory"
	"workload-engine/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App bundles the service container with the loaded dashboard snapshot
// and configuration. Command handlers pull what they need from it.
type App struct {
	services  *services.Container
	directory directory.Directory
	config    *config.Config
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(container *services.Container, dir directory.Directory, cfg *config.Config) *App {
	return &App{
		services:  container,
		directory: dir,
		config:    cfg,
	}
}

// CurrentActor resolves the acting member for a command. The --actor flag
// wins, then WE_ACTOR, then the OS username as a last resort.
func (a *App) CurrentActor(ctx context.Context, flagValue string) (string, error) {
	raw := flagValue
	if raw == "" {
		raw = os.Getenv("WE_ACTOR")
	}
	if raw == "" {
		raw = os.Getenv("USER")
	}
	if raw == "" {
		return "", fmt.Errorf("no actor specified: use --actor or set WE_ACTOR")
	}
	if id, ok := a.directory.ResolveOwner(ctx, raw); ok {
		return id, nil
	}
	// Not in the roster; keep the raw value so tracking still works for
	// members the snapshot has not picked up yet.
	return raw, nil
}

// Capabilities returns the capability set granted to the current invocation.
// Grants come from WE_CAPABILITIES as a comma-separated list.
func (a *App) Capabilities() services.CapabilitySet {
	raw := os.Getenv("WE_CAPABILITIES")
	if raw == "" {
		return services.NewCapabilitySet()
	}
	var caps []services.Capability
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			caps = append(caps, services.Capability(part))
		}
	}
	return services.NewCapabilitySet(caps...)
}

// parseDateArg parses a YYYY-MM-DD argument, defaulting to today.
func parseDateArg(value string) (time.Time, error) {
	if value == "" {
		return timeNow().UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}
