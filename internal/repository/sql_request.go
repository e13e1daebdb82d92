package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// SQLResourceRequestRepo implements ResourceRequestRepo over database/sql.
type SQLResourceRequestRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLResourceRequestRepo(conn db.DBTX, dialect db.Dialect) *SQLResourceRequestRepo {
	return &SQLResourceRequestRepo{db: conn, dialect: dialect}
}

func (r *SQLResourceRequestRepo) Create(ctx context.Context, req *domain.ResourceRequest) error {
	query := `INSERT INTO resource_requests
		(id, project_id, requirement_id, requested_by, status, start_date, end_date, duration_days, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	status := req.Status
	if status == "" {
		status = domain.RequestPending
	}
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		req.ID,
		nullableString(req.ProjectID),
		nullableString(req.RequirementID),
		req.RequestedBy,
		string(status),
		nullableDate(req.StartDate),
		nullableDate(req.EndDate),
		req.DurationDays,
		req.Notes,
		formatTimestamp(req.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting resource request: %w", err)
	}
	return nil
}

func (r *SQLResourceRequestRepo) List(ctx context.Context, f RequestFilter) ([]*domain.ResourceRequest, error) {
	var w whereBuilder
	if f.RequestedBy != "" {
		w.add("requested_by = ?", f.RequestedBy)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	query := `SELECT id, project_id, requirement_id, requested_by, status, start_date, end_date, duration_days, notes, created_at
		FROM resource_requests` + w.String() + ` ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing resource requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.ResourceRequest
	for rows.Next() {
		var req domain.ResourceRequest
		var projectID, requirementID, start, end sql.NullString
		var status, createdAt string
		if err := rows.Scan(&req.ID, &projectID, &requirementID, &req.RequestedBy, &status,
			&start, &end, &req.DurationDays, &req.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning resource request: %w", err)
		}
		if projectID.Valid {
			req.ProjectID = &projectID.String
		}
		if requirementID.Valid {
			req.RequirementID = &requirementID.String
		}
		req.Status = domain.RequestStatus(status)
		req.StartDate = parseNullableDate(start)
		req.EndDate = parseNullableDate(end)
		req.CreatedAt = parseTimestamp(createdAt)
		out = append(out, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resource requests: %w", err)
	}
	return out, nil
}
