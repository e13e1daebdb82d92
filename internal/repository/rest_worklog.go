package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

// RESTWorklogRepo implements WorklogRepo over PostgREST.
type RESTWorklogRepo struct {
	client *postgrest.Client
}

func NewRESTWorklogRepo(client *postgrest.Client) *RESTWorklogRepo {
	return &RESTWorklogRepo{client: client}
}

func (r *RESTWorklogRepo) Create(ctx context.Context, w *domain.WorkLog) error {
	row := worklogRow{
		ID:          w.ID,
		UserID:      w.UserID,
		ProjectID:   w.ProjectID,
		LogDate:     w.LogDate.Format(domain.DateLayout),
		Hours:       w.Hours,
		WorkType:    string(w.WorkType),
		Description: w.Description,
		Status:      string(w.Status),
		CreatedAt:   formatTimestamp(w.CreatedAt),
	}
	if row.Status == "" {
		row.Status = string(domain.EntryInProgress)
	}
	if err := r.client.Insert(ctx, "worklogs", row, nil); err != nil {
		return fmt.Errorf("inserting worklog: %w", err)
	}
	return nil
}

func (r *RESTWorklogRepo) GetByID(ctx context.Context, id string) (*domain.WorkLog, error) {
	var row worklogRow
	if err := r.client.Select(ctx, postgrest.From("worklogs").Eq("id", id).Single(), &row); err != nil {
		return nil, translate("worklog", err)
	}
	return row.toDomain()
}

func (r *RESTWorklogRepo) List(ctx context.Context, f WorklogFilter) ([]*domain.WorkLog, error) {
	if f.ProjectIDs != nil && len(f.ProjectIDs) == 0 {
		return nil, nil
	}
	q := postgrest.From("worklogs")
	if f.ProjectIDs != nil {
		q.In("project_id", f.ProjectIDs)
	}
	if f.UserID != "" {
		q.Eq("user_id", f.UserID)
	}
	if f.From != nil {
		q.Gte("log_date", f.From.Format(domain.DateLayout))
	}
	if f.To != nil {
		q.Lte("log_date", f.To.Format(domain.DateLayout))
	}
	q.Order("log_date", false).Order("created_at", false).Order("id", false)

	var rows []worklogRow
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("listing worklogs: %w", err)
	}
	out := make([]*domain.WorkLog, 0, len(rows))
	for _, row := range rows {
		l, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *RESTWorklogRepo) Delete(ctx context.Context, id string) error {
	var rows []worklogRow
	if err := r.client.Delete(ctx, postgrest.From("worklogs").Eq("id", id), &rows); err != nil {
		return fmt.Errorf("deleting worklog: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("worklog: %w", ErrNotFound)
	}
	return nil
}
