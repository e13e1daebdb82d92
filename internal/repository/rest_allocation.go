package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

// RESTAllocationRepo implements AllocationRepo over PostgREST.
type RESTAllocationRepo struct {
	client *postgrest.Client
}

func NewRESTAllocationRepo(client *postgrest.Client) *RESTAllocationRepo {
	return &RESTAllocationRepo{client: client}
}

func (r *RESTAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	row := allocationRow{
		ID:          a.ID,
		UserID:      a.UserID,
		ProjectID:   a.ProjectID,
		HoursPerDay: a.HoursPerDay,
		StartDate:   a.StartDate.Format(domain.DateLayout),
		EndDate:     a.EndDate.Format(domain.DateLayout),
		Description: a.Description,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   formatTimestamp(a.CreatedAt),
	}
	if err := r.client.Insert(ctx, "employee_assigned", row, nil); err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *RESTAllocationRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Allocation, error) {
	var rows []allocationRow
	q := postgrest.From("employee_assigned").Eq("project_id", projectID).Order("created_at", false).Order("id", false)
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	out := make([]*domain.Allocation, 0, len(rows))
	for _, row := range rows {
		a := &domain.Allocation{
			ID:          row.ID,
			UserID:      row.UserID,
			ProjectID:   row.ProjectID,
			HoursPerDay: row.HoursPerDay,
			Description: row.Description,
			CreatedBy:   row.CreatedBy,
			CreatedAt:   parseTimestamp(row.CreatedAt),
		}
		if d := parseDatePtr(&row.StartDate); d != nil {
			a.StartDate = *d
		}
		if d := parseDatePtr(&row.EndDate); d != nil {
			a.EndDate = *d
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *RESTAllocationRepo) DeleteByProject(ctx context.Context, projectID, userID string) error {
	q := postgrest.From("employee_assigned").Eq("project_id", projectID)
	if userID != "" {
		q.Eq("user_id", userID)
	}
	if err := r.client.Delete(ctx, q, nil); err != nil {
		return fmt.Errorf("deleting allocations: %w", err)
	}
	return nil
}
