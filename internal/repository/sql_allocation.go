package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// SQLAllocationRepo implements AllocationRepo over database/sql.
type SQLAllocationRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLAllocationRepo(conn db.DBTX, dialect db.Dialect) *SQLAllocationRepo {
	return &SQLAllocationRepo{db: conn, dialect: dialect}
}

func (r *SQLAllocationRepo) Create(ctx context.Context, a *domain.Allocation) error {
	query := `INSERT INTO employee_assigned
		(id, user_id, project_id, assigned_hours_per_day, start_date, end_date, description, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		a.ID,
		a.UserID,
		a.ProjectID,
		a.HoursPerDay,
		a.StartDate.Format(domain.DateLayout),
		a.EndDate.Format(domain.DateLayout),
		a.Description,
		a.CreatedBy,
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLAllocationRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Allocation, error) {
	query := `SELECT id, user_id, project_id, assigned_hours_per_day, start_date, end_date, description, created_by, created_at
		FROM employee_assigned WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), projectID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		var start, end, createdAt string
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProjectID, &a.HoursPerDay, &start, &end, &a.Description, &a.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}
		a.StartDate, _ = time.Parse(domain.DateLayout, start)
		a.EndDate, _ = time.Parse(domain.DateLayout, end)
		a.CreatedAt = parseTimestamp(createdAt)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return out, nil
}

func (r *SQLAllocationRepo) DeleteByProject(ctx context.Context, projectID, userID string) error {
	var w whereBuilder
	w.add("project_id = ?", projectID)
	if userID != "" {
		w.add("user_id = ?", userID)
	}
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM employee_assigned`+w.String()), w.args...); err != nil {
		return fmt.Errorf("deleting allocations: %w", err)
	}
	return nil
}
