package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

// RESTResourceRequestRepo implements ResourceRequestRepo over PostgREST.
type RESTResourceRequestRepo struct {
	client *postgrest.Client
}

func NewRESTResourceRequestRepo(client *postgrest.Client) *RESTResourceRequestRepo {
	return &RESTResourceRequestRepo{client: client}
}

func (r *RESTResourceRequestRepo) Create(ctx context.Context, req *domain.ResourceRequest) error {
	row := requestRow{
		ID:            req.ID,
		ProjectID:     req.ProjectID,
		RequirementID: req.RequirementID,
		RequestedBy:   req.RequestedBy,
		Status:        string(req.Status),
		StartDate:     formatDatePtr(req.StartDate),
		EndDate:       formatDatePtr(req.EndDate),
		DurationDays:  req.DurationDays,
		Notes:         req.Notes,
		CreatedAt:     formatTimestamp(req.CreatedAt),
	}
	if row.Status == "" {
		row.Status = string(domain.RequestPending)
	}
	if err := r.client.Insert(ctx, "resource_requests", row, nil); err != nil {
		return fmt.Errorf("inserting resource request: %w", err)
	}
	return nil
}

func (r *RESTResourceRequestRepo) List(ctx context.Context, f RequestFilter) ([]*domain.ResourceRequest, error) {
	q := postgrest.From("resource_requests")
	if f.RequestedBy != "" {
		q.Eq("requested_by", f.RequestedBy)
	}
	if f.Status != "" {
		q.Eq("status", string(f.Status))
	}
	q.Order("created_at", false).Order("id", false)

	var rows []requestRow
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("listing resource requests: %w", err)
	}
	out := make([]*domain.ResourceRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
