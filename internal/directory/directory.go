// Package directory exposes the read-only upstream records the engine
// consumes: projects, tasks, the team roster, compensation figures and the
// status color table. The engine never owns their lifecycle; the dashboard
// CRUD layer does.
package directory

import (
	"context"
	"strings"

	"workload-engine/internal/domain"
	"workload-engine/internal/errors"
)

// Directory is the read surface over upstream records.
type Directory interface {
	Projects(ctx context.Context) ([]*domain.Project, error)
	Project(ctx context.Context, id string) (*domain.Project, error)
	Tasks(ctx context.Context) ([]*domain.Task, error)
	Task(ctx context.Context, id string) (*domain.Task, error)
	TasksForProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Roster(ctx context.Context) ([]*domain.Member, error)
	Member(ctx context.Context, id string) (*domain.Member, error)

	// MonthlyCompensation looks up a compensation figure by member display
	// name. Matching is case-insensitive and substring-tolerant, since the
	// upstream records are keyed by hand-typed names.
	MonthlyCompensation(ctx context.Context, memberName string) (float64, bool, error)

	// ResolveOwner normalizes a task owner field, which may hold either an
	// actor id or a display name, to a canonical actor id.
	ResolveOwner(ctx context.Context, owner string) (string, bool)

	// StatusColor returns the styling color for a project or task status.
	StatusColor(status string) (string, bool)
}

// InMemory is a Directory backed by in-process slices, loaded from an
// exported snapshot file or assembled directly in tests.
type InMemory struct {
	projects      []*domain.Project
	tasks         []*domain.Task
	roster        []*domain.Member
	compensations []domain.Compensation
	statusColors  map[string]string

	ownersByID   map[string]string
	ownersByName map[string]string
}

// NewInMemory builds a directory over the given records.
func NewInMemory(projects []*domain.Project, tasks []*domain.Task, roster []*domain.Member, compensations []domain.Compensation, statusColors map[string]string) *InMemory {
	d := &InMemory{
		projects:      projects,
		tasks:         tasks,
		roster:        roster,
		compensations: compensations,
		statusColors:  statusColors,
		ownersByID:    make(map[string]string, len(roster)),
		ownersByName:  make(map[string]string, len(roster)),
	}
	for _, member := range roster {
		d.ownersByID[member.ID] = member.ID
		d.ownersByName[strings.ToLower(strings.TrimSpace(member.Name))] = member.ID
	}
	return d
}

// Projects returns all known projects.
func (d *InMemory) Projects(ctx context.Context) ([]*domain.Project, error) {
	return d.projects, nil
}

// Project returns one project by id.
func (d *InMemory) Project(ctx context.Context, id string) (*domain.Project, error) {
	for _, project := range d.projects {
		if project.ID == id {
			return project, nil
		}
	}
	return nil, errors.NewNotFoundError("project", id)
}

// Tasks returns all known tasks.
func (d *InMemory) Tasks(ctx context.Context) ([]*domain.Task, error) {
	return d.tasks, nil
}

// Task returns one task by id.
func (d *InMemory) Task(ctx context.Context, id string) (*domain.Task, error) {
	for _, task := range d.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, errors.NewNotFoundError("task", id)
}

// TasksForProject returns all tasks belonging to a project.
func (d *InMemory) TasksForProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for _, task := range d.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// Roster returns all active team members.
func (d *InMemory) Roster(ctx context.Context) ([]*domain.Member, error) {
	return d.roster, nil
}

// Member returns one roster member by id.
func (d *InMemory) Member(ctx context.Context, id string) (*domain.Member, error) {
	for _, member := range d.roster {
		if member.ID == id {
			return member, nil
		}
	}
	return nil, errors.NewNotFoundError("member", id)
}

// MonthlyCompensation finds a compensation figure for the named member.
// Either side may carry extra text (e.g. "Ana García" vs "Ana García -
// Design"), so the match accepts substrings in both directions.
func (d *InMemory) MonthlyCompensation(ctx context.Context, memberName string) (float64, bool, error) {
	needle := strings.ToLower(strings.TrimSpace(memberName))
	if needle == "" {
		return 0, false, nil
	}
	for _, comp := range d.compensations {
		candidate := strings.ToLower(strings.TrimSpace(comp.MemberName))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return comp.Monthly, true, nil
		}
	}
	return 0, false, nil
}

// ResolveOwner maps an actor id or display name to the canonical actor id.
func (d *InMemory) ResolveOwner(ctx context.Context, owner string) (string, bool) {
	trimmed := strings.TrimSpace(owner)
	if trimmed == "" {
		return "", false
	}
	if id, ok := d.ownersByID[trimmed]; ok {
		return id, true
	}
	if id, ok := d.ownersByName[strings.ToLower(trimmed)]; ok {
		return id, true
	}
	return "", false
}

// StatusColor returns the styling color for a status, if mapped.
func (d *InMemory) StatusColor(status string) (string, bool) {
	color, ok := d.statusColors[status]
	return color, ok
}
