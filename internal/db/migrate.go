package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Column types are restricted to ones both SQLite and Postgres accept.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		role       TEXT NOT NULL
		           CHECK(role IN ('project_manager','resource_manager','employee','super_admin')),
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_details (
		user_id               TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		job_title             TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL DEFAULT 'Available',
		profile_pic           TEXT NOT NULL DEFAULT '',
		skills                TEXT NOT NULL DEFAULT '',
		total_available_hours DOUBLE PRECISION NOT NULL DEFAULT 40
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','planning','ongoing','active','completed','on-hold','cancelled')),
		priority      TEXT NOT NULL DEFAULT 'medium'
		              CHECK(priority IN ('low','medium','high','critical')),
		start_date    TEXT,
		end_date      TEXT,
		duration_days INTEGER NOT NULL DEFAULT 0,
		created_by    TEXT NOT NULL REFERENCES users(id),
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_created_by ON projects(created_by, status)`,

	`CREATE TABLE IF NOT EXISTS project_requirements (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		position        TEXT NOT NULL DEFAULT '',
		quantity_needed INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS project_assignments (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id            TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_in_project    TEXT NOT NULL DEFAULT '',
		assigned_hours     DOUBLE PRECISION NOT NULL DEFAULT 40,
		assignment_type    TEXT NOT NULL DEFAULT 'Full-Time',
		allocation_percent INTEGER NOT NULL DEFAULT 100,
		status             TEXT NOT NULL DEFAULT 'assigned'
		                   CHECK(status IN ('assigned','removed','completed')),
		created_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_project ON project_assignments(project_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_user ON project_assignments(user_id)`,

	`CREATE TABLE IF NOT EXISTS worklogs (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		log_date         TEXT NOT NULL,
		hours            DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK(hours >= 0 AND hours <= 24),
		work_type        TEXT NOT NULL
		                 CHECK(work_type IN ('assigned','work','work_from_home','absent','leave','sick_leave','holiday','training','other')),
		work_description TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'in progress',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_worklogs_project_date ON worklogs(project_id, log_date)`,
	`CREATE INDEX IF NOT EXISTS idx_worklogs_user_date ON worklogs(user_id, log_date)`,

	`CREATE TABLE IF NOT EXISTS employee_assigned (
		id                     TEXT PRIMARY KEY,
		user_id                TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		project_id             TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		assigned_hours_per_day DOUBLE PRECISION NOT NULL CHECK(assigned_hours_per_day > 0),
		start_date             TEXT NOT NULL,
		end_date               TEXT NOT NULL,
		description            TEXT NOT NULL DEFAULT '',
		created_by             TEXT NOT NULL,
		created_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_employee_assigned_project ON employee_assigned(project_id)`,

	`CREATE TABLE IF NOT EXISTS resource_requests (
		id             TEXT PRIMARY KEY,
		project_id     TEXT,
		requirement_id TEXT,
		requested_by   TEXT NOT NULL REFERENCES users(id),
		status         TEXT NOT NULL DEFAULT 'pending',
		start_date     TEXT,
		end_date       TEXT,
		duration_days  INTEGER NOT NULL DEFAULT 0,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resource_requests_requester ON resource_requests(requested_by, status)`,
}
