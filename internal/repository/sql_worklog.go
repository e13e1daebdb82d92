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

// SQLWorklogRepo implements WorklogRepo over database/sql.
type SQLWorklogRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLWorklogRepo(conn db.DBTX, dialect db.Dialect) *SQLWorklogRepo {
	return &SQLWorklogRepo{db: conn, dialect: dialect}
}

func (r *SQLWorklogRepo) Create(ctx context.Context, w *domain.WorkLog) error {
	query := `INSERT INTO worklogs (id, user_id, project_id, log_date, hours, work_type, work_description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	status := w.Status
	if status == "" {
		status = domain.EntryInProgress
	}
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		w.ID,
		w.UserID,
		w.ProjectID,
		w.LogDate.Format(domain.DateLayout),
		w.Hours,
		string(w.WorkType),
		w.Description,
		string(status),
		formatTimestamp(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting worklog: %w", err)
	}
	return nil
}

const worklogColumns = `id, user_id, project_id, log_date, hours, work_type, work_description, status, created_at`

func scanWorklog(row rowScanner) (*domain.WorkLog, error) {
	var l domain.WorkLog
	var logDate, workType, status, createdAt string
	if err := row.Scan(&l.ID, &l.UserID, &l.ProjectID, &logDate, &l.Hours, &workType, &l.Description, &status, &createdAt); err != nil {
		return nil, err
	}
	d, err := time.Parse(domain.DateLayout, logDate)
	if err != nil {
		return nil, fmt.Errorf("parsing log_date: %w", err)
	}
	l.LogDate = d
	l.WorkType = domain.WorkType(workType)
	l.Status = domain.EntryStatus(status)
	l.CreatedAt = parseTimestamp(createdAt)
	return &l, nil
}

func (r *SQLWorklogRepo) GetByID(ctx context.Context, id string) (*domain.WorkLog, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT `+worklogColumns+` FROM worklogs WHERE id = ?`), id)
	l, err := scanWorklog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("worklog %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading worklog: %w", err)
	}
	return l, nil
}

func (r *SQLWorklogRepo) List(ctx context.Context, f WorklogFilter) ([]*domain.WorkLog, error) {
	var w whereBuilder
	if f.ProjectIDs != nil {
		w.addIn("project_id", f.ProjectIDs, false)
	}
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}
	if f.From != nil {
		w.add("log_date >= ?", f.From.Format(domain.DateLayout))
	}
	if f.To != nil {
		w.add("log_date <= ?", f.To.Format(domain.DateLayout))
	}

	query := `SELECT ` + worklogColumns + ` FROM worklogs` + w.String() + ` ORDER BY log_date, created_at, id`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing worklogs: %w", err)
	}
	defer rows.Close()

	var out []*domain.WorkLog
	for rows.Next() {
		l, err := scanWorklog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning worklog: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating worklogs: %w", err)
	}
	return out, nil
}

func (r *SQLWorklogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM worklogs WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting worklog: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("worklog: %w", ErrNotFound)
	}
	return nil
}
