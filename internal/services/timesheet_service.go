package services

import (
	"context"
	"sort"
	"time"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
	"workload-engine/internal/repository/sqlite"
)

// timesheetServiceImpl implements the TimesheetService interface
type timesheetServiceImpl struct {
	repo   sqlite.Repository
	dir    directory.Directory
	mapper *domain.Mapper
	now    func() time.Time
}

// NewTimesheetService creates a new TimesheetService instance
func NewTimesheetService(repo sqlite.Repository, dir directory.Directory) TimesheetService {
	return &timesheetServiceImpl{
		repo:   repo,
		dir:    dir,
		mapper: domain.NewMapper(),
		now:    time.Now,
	}
}

// WeeklyTimesheet reshapes the actor's week into a project × day matrix
// with row, column and grand totals, plus the workdays that have nothing
// logged yet.
func (t *timesheetServiceImpl) WeeklyTimesheet(ctx context.Context, actorID string, weekStart time.Time) (*Timesheet, error) {
	monday := WeekStart(weekStart)
	friday := WeekEnd(monday)

	entries, err := entriesInWindow(ctx, t.repo, t.mapper, actorID, monday, friday)
	if err != nil {
		return nil, err
	}

	rowsByProject := make(map[string]*TimesheetRow)
	sheet := &Timesheet{
		ActorID:   actorID,
		WeekStart: monday,
	}

	for _, entry := range entries {
		day := workdayIndex(entry.Date)
		if day < 0 {
			continue // weekend entries stay out of the five-day grid
		}

		projectID := entry.ProjectID
		row, ok := rowsByProject[projectID]
		if !ok {
			row = &TimesheetRow{
				ProjectID:   projectID,
				ProjectName: t.projectLabel(ctx, projectID),
			}
			rowsByProject[projectID] = row
		}

		row.DayMinutes[day] += entry.DurationMinutes
		row.TotalMinutes += entry.DurationMinutes
		sheet.DayTotals[day] += entry.DurationMinutes
		sheet.TotalMinutes += entry.DurationMinutes
	}

	for _, row := range rowsByProject {
		sheet.Rows = append(sheet.Rows, *row)
	}
	sort.Slice(sheet.Rows, func(i, j int) bool {
		return sheet.Rows[i].ProjectName < sheet.Rows[j].ProjectName
	})

	sheet.MissingDays = t.missingDays(monday, sheet.DayTotals)

	return sheet, nil
}

// missingDays lists workdays of the week, on or before today, where nothing
// was logged. Weekend days are never reported.
func (t *timesheetServiceImpl) missingDays(monday time.Time, dayTotals [5]int) []time.Time {
	today := domain.DateOnly(t.now())
	var missing []time.Time
	for i := 0; i < 5; i++ {
		day := monday.AddDate(0, 0, i)
		if day.After(today) {
			break
		}
		if dayTotals[i] == 0 {
			missing = append(missing, day)
		}
	}
	return missing
}

// projectLabel resolves a display name, using the sentinel bucket when the
// entry has no project reference and the raw id when the record is gone.
func (t *timesheetServiceImpl) projectLabel(ctx context.Context, projectID string) string {
	if projectID == "" {
		return UnassignedProjectLabel
	}
	project, err := t.dir.Project(ctx, projectID)
	if err != nil {
		// Deleted upstream records keep their raw id as the label.
		return projectID
	}
	return project.Name
}
