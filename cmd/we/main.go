package main

import (
	"context"
	"fmt"
	"os"

	"workload-engine/internal/cli"
	"workload-engine/internal/config"
	"workload-engine/internal/directory"
	"workload-engine/internal/repository/sqlite"
	"workload-engine/internal/services"
	"workload-engine/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(logger.Options{
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console,
	})

	if err := cfg.EnsureDatabaseDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating database directory: %v\n", err)
		os.Exit(1)
	}

	repo, err := sqlite.New(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	dir, err := loadDirectory(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading directory snapshot: %v\n", err)
		os.Exit(1)
	}

	container := services.NewContainer(repo, dir, services.CostConfig{
		OverheadFactor:    cfg.Cost.OverheadFactor,
		WeeksPerMonth:     cfg.Cost.WeeksPerMonth,
		MinimumHourlyRate: cfg.Cost.MinimumHourlyRate,
	}, services.AlertConfig{
		ForgottenTimerMinutes: cfg.Alerts.ForgottenTimerMinutes,
	})

	root := cli.NewRootCommand(container, dir, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDirectory reads the exported dashboard snapshot. Without one the
// engine still tracks time; derived views just see an empty roster.
func loadDirectory(cfg *config.Config) (directory.Directory, error) {
	if cfg.Directory.File == "" {
		return directory.NewInMemory(nil, nil, nil, nil, nil), nil
	}
	return directory.LoadFile(cfg.Directory.File)
}
