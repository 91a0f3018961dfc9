package services

import (
	"workload-engine/internal/directory"
	"workload-engine/internal/repository/sqlite"
)

// Container manages all engine services and their dependencies.
type Container struct {
	Timers      TimerService
	Entries     EntryService
	Capacity    CapacityService
	Utilization UtilizationService
	Cost        CostService
	Forecast    ForecastService
	Timesheets  TimesheetService
	Gantt       GanttService
	Alerts      AlertService
	Activity    ActivityService
}

// NewContainer wires the full engine over a repository and a directory.
func NewContainer(repo sqlite.Repository, dir directory.Directory, costCfg CostConfig, alertCfg AlertConfig) *Container {
	capacity := NewCapacityService(repo)
	timers := NewTimerService(repo, dir)
	cost := NewCostService(repo, dir, capacity, costCfg)
	utilization := NewUtilizationService(repo, dir, capacity)

	return &Container{
		Timers:      timers,
		Entries:     NewEntryService(repo),
		Capacity:    capacity,
		Utilization: utilization,
		Cost:        cost,
		Forecast:    NewForecastService(repo, dir, capacity),
		Timesheets:  NewTimesheetService(repo, dir),
		Gantt:       NewGanttService(dir),
		Alerts:      NewAlertService(repo, dir, timers, cost, utilization, alertCfg),
		Activity:    NewActivityService(repo),
	}
}
