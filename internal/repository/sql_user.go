package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// SQLUserRepo implements UserRepo over database/sql.
type SQLUserRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLUserRepo(conn db.DBTX, dialect db.Dialect) *SQLUserRepo {
	return &SQLUserRepo{db: conn, dialect: dialect}
}

func (r *SQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		u.ID, u.Name, u.Email, string(u.Role), formatTimestamp(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, name, email, role, created_at FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
}

func (r *SQLUserRepo) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	query := `SELECT id, name, email, role, created_at FROM users WHERE LOWER(email) = LOWER(?) AND role = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), email, string(role)))
}

func (r *SQLUserRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role, createdAt string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.Role(role)
	u.CreatedAt = parseTimestamp(createdAt)
	return &u, nil
}

// SQLUserDetailRepo implements UserDetailRepo over database/sql.
type SQLUserDetailRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

func NewSQLUserDetailRepo(conn db.DBTX, dialect db.Dialect) *SQLUserDetailRepo {
	return &SQLUserDetailRepo{db: conn, dialect: dialect}
}

func (r *SQLUserDetailRepo) Upsert(ctx context.Context, d *domain.UserDetail) error {
	query := `INSERT INTO user_details (user_id, job_title, status, profile_pic, skills, total_available_hours)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			job_title = excluded.job_title,
			status = excluded.status,
			profile_pic = excluded.profile_pic,
			skills = excluded.skills,
			total_available_hours = excluded.total_available_hours`
	status := domain.CoalesceStr(d.Status, domain.DefaultMemberStatus)
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		d.UserID, d.JobTitle, status, d.ProfilePic, joinSkills(d.Skills), d.TotalAvailableHours)
	if err != nil {
		return fmt.Errorf("upserting user detail: %w", err)
	}
	return nil
}

func (r *SQLUserDetailRepo) Get(ctx context.Context, userID string) (*domain.UserDetail, error) {
	query := `SELECT user_id, job_title, status, profile_pic, skills, total_available_hours
		FROM user_details WHERE user_id = ?`
	var d domain.UserDetail
	var skills string
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), userID).Scan(
		&d.UserID, &d.JobTitle, &d.Status, &d.ProfilePic, &skills, &d.TotalAvailableHours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user detail: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user detail: %w", err)
	}
	d.Skills = splitSkills(skills)
	return &d, nil
}

func (r *SQLUserDetailRepo) RestoreHours(ctx context.Context, userID string, hours float64) (float64, error) {
	current, err := r.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("loading availability: %w", err)
	}
	restored := math.Min(current.TotalAvailableHours+hours, domain.MaxWeeklyHours)

	query := `UPDATE user_details SET status = ?, total_available_hours = ? WHERE user_id = ?`
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), domain.DefaultMemberStatus, restored, userID); err != nil {
		return 0, fmt.Errorf("restoring availability: %w", err)
	}
	return restored, nil
}
