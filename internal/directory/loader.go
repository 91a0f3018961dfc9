package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"workload-engine/internal/domain"
)

// snapshotFile mirrors the JSON export produced by the dashboard: plain
// records with string dates.
type snapshotFile struct {
	Projects      []snapshotProject      `json:"projects"`
	Tasks         []snapshotTask         `json:"tasks"`
	Roster        []snapshotMember       `json:"team"`
	Compensations []snapshotCompensation `json:"compensations"`
	StatusColors  map[string]string      `json:"status_colors"`
}

type snapshotProject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Revenue     float64 `json:"revenue"`
	PlannedCost float64 `json:"planned_cost"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	OwnerID     string  `json:"owner_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type snapshotTask struct {
	ID              string `json:"id"`
	ProjectID       string `json:"project_id"`
	Name            string `json:"name"`
	Owner           string `json:"owner"`
	Status          string `json:"status"`
	EstimateMinutes int    `json:"estimate_minutes"`
	DueDate         string `json:"due_date,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type snapshotMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type snapshotCompensation struct {
	MemberName string  `json:"member_name"`
	Monthly    float64 `json:"monthly"`
}

// LoadFile reads an exported dashboard snapshot and builds a directory
// over it.
func LoadFile(path string) (*InMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory snapshot: %w", err)
	}

	var snapshot snapshotFile
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse directory snapshot: %w", err)
	}

	projects := make([]*domain.Project, 0, len(snapshot.Projects))
	for _, p := range snapshot.Projects {
		project := &domain.Project{
			ID:          p.ID,
			Name:        p.Name,
			Status:      domain.ProjectStatus(p.Status),
			Revenue:     p.Revenue,
			PlannedCost: p.PlannedCost,
			OwnerID:     p.OwnerID,
		}
		if project.CreatedAt, err = parseDate(p.CreatedAt); err != nil {
			return nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		if project.StartDate, err = parseOptionalDate(p.StartDate); err != nil {
			return nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		if project.EndDate, err = parseOptionalDate(p.EndDate); err != nil {
			return nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		projects = append(projects, project)
	}

	tasks := make([]*domain.Task, 0, len(snapshot.Tasks))
	for _, t := range snapshot.Tasks {
		task := &domain.Task{
			ID:              t.ID,
			ProjectID:       t.ProjectID,
			Name:            t.Name,
			Owner:           t.Owner,
			Status:          domain.TaskStatus(t.Status),
			EstimateMinutes: t.EstimateMinutes,
		}
		if task.CreatedAt, err = parseDate(t.CreatedAt); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		if task.DueDate, err = parseOptionalDate(t.DueDate); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		tasks = append(tasks, task)
	}

	roster := make([]*domain.Member, 0, len(snapshot.Roster))
	for _, m := range snapshot.Roster {
		roster = append(roster, &domain.Member{ID: m.ID, Name: m.Name})
	}

	compensations := make([]domain.Compensation, 0, len(snapshot.Compensations))
	for _, c := range snapshot.Compensations {
		compensations = append(compensations, domain.Compensation{
			MemberName: c.MemberName,
			Monthly:    c.Monthly,
		})
	}

	return NewInMemory(projects, tasks, roster, compensations, snapshot.StatusColors), nil
}

// parseDate accepts either a bare date or a full RFC3339 instant.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
