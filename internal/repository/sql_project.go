package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// SQLProjectRepo implements ProjectRepo over database/sql.
type SQLProjectRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLProjectRepo(conn db.DBTX, dialect db.Dialect) *SQLProjectRepo {
	return &SQLProjectRepo{db: conn, dialect: dialect}
}

const projectColumns = `id, name, description, status, priority, start_date, end_date, duration_days, created_by, created_at`

func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	status := p.Status
	if status == "" {
		status = domain.ProjectPending
	}
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		p.ID,
		p.Name,
		p.Description,
		string(status),
		string(domain.ParsePriority(string(p.Priority))),
		nullableDate(p.StartDate),
		nullableDate(p.EndDate),
		p.DurationDays,
		p.CreatedBy,
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return p, nil
}

func (r *SQLProjectRepo) List(ctx context.Context, f ProjectFilter) ([]*domain.Project, error) {
	var w whereBuilder
	if f.IDs != nil {
		w.addIn("id", f.IDs, false)
	}
	if f.CreatedBy != "" {
		w.add("created_by = ?", f.CreatedBy)
	}
	if len(f.Statuses) > 0 {
		w.addIn("status", statusStrings(f.Statuses), false)
	}
	if len(f.ExcludeStatuses) > 0 {
		w.addIn("status", statusStrings(f.ExcludeStatuses), true)
	}
	if f.Priority != "" {
		w.add("priority = ?", string(f.Priority))
	}

	query := `SELECT ` + projectColumns + ` FROM projects` + w.String() + ` ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLProjectRepo) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus, endDate *time.Time) (domain.ProjectStatus, error) {
	query := `UPDATE projects SET status = ? WHERE id = ?`
	args := []any{string(status), id}
	if endDate != nil {
		query = `UPDATE projects SET status = ?, end_date = ? WHERE id = ?`
		args = []any{string(status), nullableDate(endDate), id}
	}
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return "", fmt.Errorf("updating project status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return "", fmt.Errorf("project: %w", ErrNotFound)
	}
	return status, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (*domain.Project, error) {
	var p domain.Project
	var status, priority, createdAt string
	var startDate, endDate sql.NullString
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &status, &priority,
		&startDate, &endDate, &p.DurationDays, &p.CreatedBy, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	p.Priority = domain.Priority(priority)
	p.StartDate = parseNullableDate(startDate)
	p.EndDate = parseNullableDate(endDate)
	p.CreatedAt = parseTimestamp(createdAt)
	return &p, nil
}

// SQLRequirementRepo implements RequirementRepo over database/sql.
type SQLRequirementRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLRequirementRepo(conn db.DBTX, dialect db.Dialect) *SQLRequirementRepo {
	return &SQLRequirementRepo{db: conn, dialect: dialect}
}

func (r *SQLRequirementRepo) Create(ctx context.Context, req *domain.ProjectRequirement) error {
	query := `INSERT INTO project_requirements (id, project_id, position, quantity_needed) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), req.ID, req.ProjectID, req.Position, req.QuantityNeeded)
	if err != nil {
		return fmt.Errorf("inserting project requirement: %w", err)
	}
	return nil
}

func (r *SQLRequirementRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectRequirement, error) {
	query := `SELECT id, project_id, position, quantity_needed FROM project_requirements WHERE project_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project requirements: %w", err)
	}
	defer rows.Close()

	var out []*domain.ProjectRequirement
	for rows.Next() {
		var req domain.ProjectRequirement
		if err := rows.Scan(&req.ID, &req.ProjectID, &req.Position, &req.QuantityNeeded); err != nil {
			return nil, fmt.Errorf("scanning project requirement: %w", err)
		}
		out = append(out, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project requirements: %w", err)
	}
	return out, nil
}
