package services

import (
	"context"
	"time"

	"workload-engine/internal/directory"
	"workload-engine/internal/domain"
)

// ganttServiceImpl implements the GanttService interface
type ganttServiceImpl struct {
	dir directory.Directory
}

// NewGanttService creates a new GanttService instance
func NewGanttService(dir directory.Directory) GanttService {
	return &ganttServiceImpl{dir: dir}
}

// GanttRows derives timeline bars for every non-cancelled project and its
// non-cancelled tasks, inferring dates where the records carry none.
func (g *ganttServiceImpl) GanttRows(ctx context.Context) ([]*GanttRow, error) {
	projects, err := g.dir.Projects(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*GanttRow
	for _, project := range projects {
		if project.Status == domain.ProjectCancelled {
			continue
		}

		tasks, err := g.dir.TasksForProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}

		start, end := g.projectWindow(project, tasks)
		rows = append(rows, &GanttRow{
			ID:     project.ID,
			Label:  project.Name,
			Kind:   GanttProject,
			Start:  start,
			End:    end,
			Status: string(project.Status),
			Color:  g.color(string(project.Status)),
		})

		for _, task := range tasks {
			if task.Status == domain.TaskCancelled {
				continue
			}
			taskStart, taskEnd := g.taskWindow(task, start)
			rows = append(rows, &GanttRow{
				ID:       task.ID,
				ParentID: project.ID,
				Label:    task.Name,
				Kind:     GanttTask,
				Start:    taskStart,
				End:      taskEnd,
				Status:   string(task.Status),
				Color:    g.color(string(task.Status)),
			})
		}
	}

	return rows, nil
}

// projectWindow resolves the project's bar: explicit dates win; otherwise
// start falls back to creation and end to the latest task due date, or
// creation + 30 days when no task carries one.
func (g *ganttServiceImpl) projectWindow(project *domain.Project, tasks []*domain.Task) (time.Time, time.Time) {
	start := project.CreatedAt
	if project.StartDate != nil {
		start = *project.StartDate
	}

	if project.EndDate != nil {
		return start, *project.EndDate
	}

	var latestDue *time.Time
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		if latestDue == nil || task.DueDate.After(*latestDue) {
			latestDue = task.DueDate
		}
	}
	if latestDue != nil {
		return start, *latestDue
	}
	return start, project.CreatedAt.AddDate(0, 0, 30)
}

// taskWindow resolves a task's bar: start falls back to the project start
// or the task's creation date, end to start + 7 days.
func (g *ganttServiceImpl) taskWindow(task *domain.Task, projectStart time.Time) (time.Time, time.Time) {
	start := projectStart
	if start.IsZero() {
		start = task.CreatedAt
	}

	if task.DueDate != nil {
		return start, *task.DueDate
	}
	return start, start.AddDate(0, 0, 7)
}

func (g *ganttServiceImpl) color(status string) string {
	if color, ok := g.dir.StatusColor(status); ok {
		return color
	}
	return NeutralGanttColor
}
