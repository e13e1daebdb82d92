package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// SQLAssignmentRepo implements AssignmentRepo over database/sql.
type SQLAssignmentRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLAssignmentRepo(conn db.DBTX, dialect db.Dialect) *SQLAssignmentRepo {
	return &SQLAssignmentRepo{db: conn, dialect: dialect}
}

func (r *SQLAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO project_assignments
		(id, project_id, user_id, role_in_project, assigned_hours, assignment_type, allocation_percent, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	status := a.Status
	if status == "" {
		status = domain.AssignmentAssigned
	}
	percent := a.AllocationPercent
	if percent == 0 {
		percent = 100
	}
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		a.ID,
		a.ProjectID,
		a.UserID,
		a.RoleInProject,
		a.WeeklyHours(),
		string(a.Type()),
		percent,
		string(status),
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLAssignmentRepo) List(ctx context.Context, f AssignmentFilter) ([]*domain.Assignment, error) {
	var w whereBuilder
	if f.ProjectIDs != nil {
		w.addIn("a.project_id", f.ProjectIDs, false)
	}
	if f.UserID != "" {
		w.add("a.user_id = ?", f.UserID)
	}
	if f.Status != "" {
		w.add("a.status = ?", string(f.Status))
	}

	query := `SELECT a.id, a.project_id, a.user_id, a.role_in_project, a.assigned_hours,
			a.assignment_type, a.allocation_percent, a.status, a.created_at,
			u.name, u.email, u.role,
			d.job_title, d.status, d.profile_pic, d.skills, d.total_available_hours
		FROM project_assignments a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN user_details d ON d.user_id = a.user_id` +
		w.String() +
		` ORDER BY a.created_at, a.id`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var assignmentType, status, createdAt string
		var user domain.User
		var role string
		var jobTitle, detailStatus, pic, skills sql.NullString
		var available sql.NullFloat64
		err := rows.Scan(
			&a.ID, &a.ProjectID, &a.UserID, &a.RoleInProject, &a.AssignedHours,
			&assignmentType, &a.AllocationPercent, &status, &createdAt,
			&user.Name, &user.Email, &role,
			&jobTitle, &detailStatus, &pic, &skills, &available,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.AssignmentType = domain.AssignmentType(assignmentType)
		a.Status = domain.AssignmentStatus(status)
		a.CreatedAt = parseTimestamp(createdAt)

		if f.WithMembers {
			user.ID = a.UserID
			user.Role = domain.Role(role)
			a.User = &user
			if jobTitle.Valid {
				a.Detail = &domain.UserDetail{
					UserID:              a.UserID,
					JobTitle:            jobTitle.String,
					Status:              detailStatus.String,
					ProfilePic:          pic.String,
					Skills:              splitSkills(skills.String),
					TotalAvailableHours: available.Float64,
				}
			}
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLAssignmentRepo) SetStatus(ctx context.Context, projectID, userID string, from, to domain.AssignmentStatus) error {
	var w whereBuilder
	w.add("project_id = ?", projectID)
	if userID != "" {
		w.add("user_id = ?", userID)
	}
	if from != "" {
		w.add("status = ?", string(from))
	}
	query := `UPDATE project_assignments SET status = ?` + w.String()
	args := append([]any{string(to)}, w.args...)
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), args...); err != nil {
		return fmt.Errorf("updating assignment status: %w", err)
	}
	return nil
}
