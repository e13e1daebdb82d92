package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

const (
	assignmentSelect       = "id,project_id,user_id,role_in_project,assigned_hours,assignment_type,allocation_percent,status,created_at"
	assignmentMemberSelect = assignmentSelect +
		",users(id,name,email,role,user_details(job_title,status,profile_pic,skills,total_available_hours))"
)

// RESTAssignmentRepo implements AssignmentRepo over PostgREST.
type RESTAssignmentRepo struct {
	client *postgrest.Client
}

func NewRESTAssignmentRepo(client *postgrest.Client) *RESTAssignmentRepo {
	return &RESTAssignmentRepo{client: client}
}

func (r *RESTAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	hours := a.WeeklyHours()
	row := assignmentRow{
		ID:                a.ID,
		ProjectID:         a.ProjectID,
		UserID:            a.UserID,
		RoleInProject:     a.RoleInProject,
		AssignedHours:     &hours,
		AssignmentType:    string(a.Type()),
		AllocationPercent: a.AllocationPercent,
		Status:            string(a.Status),
		CreatedAt:         formatTimestamp(a.CreatedAt),
	}
	if row.Status == "" {
		row.Status = string(domain.AssignmentAssigned)
	}
	if row.AllocationPercent == 0 {
		row.AllocationPercent = 100
	}
	if err := r.client.Insert(ctx, "project_assignments", row, nil); err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *RESTAssignmentRepo) List(ctx context.Context, f AssignmentFilter) ([]*domain.Assignment, error) {
	if f.ProjectIDs != nil && len(f.ProjectIDs) == 0 {
		return nil, nil
	}
	sel := assignmentSelect
	if f.WithMembers {
		sel = assignmentMemberSelect
	}
	q := postgrest.From("project_assignments").Select(sel)
	if f.ProjectIDs != nil {
		q.In("project_id", f.ProjectIDs)
	}
	if f.UserID != "" {
		q.Eq("user_id", f.UserID)
	}
	if f.Status != "" {
		q.Eq("status", string(f.Status))
	}
	q.Order("created_at", false).Order("id", false)

	var rows []assignmentRow
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	out := make([]*domain.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(f.WithMembers))
	}
	return out, nil
}

func (r *RESTAssignmentRepo) SetStatus(ctx context.Context, projectID, userID string, from, to domain.AssignmentStatus) error {
	q := postgrest.From("project_assignments").Eq("project_id", projectID)
	if userID != "" {
		q.Eq("user_id", userID)
	}
	if from != "" {
		q.Eq("status", string(from))
	}
	if err := r.client.Update(ctx, q, map[string]string{"status": string(to)}, nil); err != nil {
		return fmt.Errorf("updating assignment status: %w", err)
	}
	return nil
}
