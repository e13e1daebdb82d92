package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

const projectSelect = "id,name,description,status,priority,start_date,end_date,duration_days,created_by,created_at"

// RESTProjectRepo implements ProjectRepo over PostgREST.
type RESTProjectRepo struct {
	client *postgrest.Client
}

func NewRESTProjectRepo(client *postgrest.Client) *RESTProjectRepo {
	return &RESTProjectRepo{client: client}
}

func (r *RESTProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	row := projectRow{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Status:       string(p.Status),
		Priority:     string(domain.ParsePriority(string(p.Priority))),
		StartDate:    formatDatePtr(p.StartDate),
		EndDate:      formatDatePtr(p.EndDate),
		DurationDays: p.DurationDays,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    formatTimestamp(p.CreatedAt),
	}
	if row.Status == "" {
		row.Status = string(domain.ProjectPending)
	}
	if err := r.client.Insert(ctx, "projects", row, nil); err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *RESTProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var row projectRow
	q := postgrest.From("projects").Select(projectSelect).Eq("id", id).Single()
	if err := r.client.Select(ctx, q, &row); err != nil {
		return nil, translate("project", err)
	}
	return row.toDomain(), nil
}

func (r *RESTProjectRepo) List(ctx context.Context, f ProjectFilter) ([]*domain.Project, error) {
	if f.IDs != nil && len(f.IDs) == 0 {
		return nil, nil
	}
	q := postgrest.From("projects").Select(projectSelect)
	if f.IDs != nil {
		q.In("id", f.IDs)
	}
	if f.CreatedBy != "" {
		q.Eq("created_by", f.CreatedBy)
	}
	if len(f.Statuses) > 0 {
		q.In("status", statusStrings(f.Statuses))
	}
	if len(f.ExcludeStatuses) > 0 {
		q.NotIn("status", statusStrings(f.ExcludeStatuses))
	}
	if f.Priority != "" {
		q.Eq("priority", string(f.Priority))
	}
	q.Order("created_at", true).Order("id", false)

	var rows []projectRow
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	out := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RESTProjectRepo) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus, endDate *time.Time) (domain.ProjectStatus, error) {
	patch := map[string]any{"status": string(status)}
	if endDate != nil {
		patch["end_date"] = endDate.Format(domain.DateLayout)
	}
	var rows []projectRow
	if err := r.client.Update(ctx, postgrest.From("projects").Eq("id", id), patch, &rows); err != nil {
		return "", fmt.Errorf("updating project status: %w", err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("project: %w", ErrNotFound)
	}
	return domain.ProjectStatus(rows[0].Status), nil
}

// RESTRequirementRepo implements RequirementRepo over PostgREST.
type RESTRequirementRepo struct {
	client *postgrest.Client
}

func NewRESTRequirementRepo(client *postgrest.Client) *RESTRequirementRepo {
	return &RESTRequirementRepo{client: client}
}

func (r *RESTRequirementRepo) Create(ctx context.Context, req *domain.ProjectRequirement) error {
	row := requirementRow{ID: req.ID, ProjectID: req.ProjectID, Position: req.Position, QuantityNeeded: req.QuantityNeeded}
	if err := r.client.Insert(ctx, "project_requirements", row, nil); err != nil {
		return fmt.Errorf("inserting project requirement: %w", err)
	}
	return nil
}

func (r *RESTRequirementRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectRequirement, error) {
	var rows []requirementRow
	q := postgrest.From("project_requirements").Eq("project_id", projectID).Order("id", false)
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("listing project requirements: %w", err)
	}
	out := make([]*domain.ProjectRequirement, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.ProjectRequirement{
			ID:             row.ID,
			ProjectID:      row.ProjectID,
			Position:       row.Position,
			QuantityNeeded: row.QuantityNeeded,
		})
	}
	return out, nil
}
