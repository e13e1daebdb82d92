package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"users", "user_details", "projects", "project_requirements",
		"project_assignments", "worklogs", "employee_assigned", "resource_requests",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_projects_created_by",
		"idx_assignments_project",
		"idx_assignments_user",
		"idx_worklogs_project_date",
		"idx_worklogs_user_date",
		"idx_employee_assigned_project",
		"idx_resource_requests_requester",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_CheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (id, name, email, role, created_at)
		VALUES ('u1', 'Pat', 'pat@example.com', 'project_manager', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (id, name, email, role, created_at)
		VALUES ('u2', 'Sam', 'sam@example.com', 'intern', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown role should be rejected")

	_, err = db.Exec(`INSERT INTO projects (id, name, status, created_by, created_at)
		VALUES ('p1', 'Atlas', 'archived', 'u1', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown project status should be rejected")

	_, err = db.Exec(`INSERT INTO projects (id, name, status, created_by, created_at)
		VALUES ('p1', 'Atlas', 'active', 'u1', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO worklogs (id, user_id, project_id, log_date, hours, work_type, created_at)
		VALUES ('w1', 'u1', 'p1', '2025-06-02', 25, 'work', '2025-06-02T00:00:00Z')`)
	assert.Error(t, err, "more than 24 hours in a day should be rejected")

	_, err = db.Exec(`INSERT INTO worklogs (id, user_id, project_id, log_date, hours, work_type, created_at)
		VALUES ('w1', 'u1', 'p1', '2025-06-02', 4, 'nap', '2025-06-02T00:00:00Z')`)
	assert.Error(t, err, "unknown work type should be rejected")
}

func TestDialect_Rebind(t *testing.T) {
	q := `SELECT id FROM worklogs WHERE user_id = ? AND log_date IN (?, ?)`
	assert.Equal(t, q, DialectSQLite.Rebind(q))
	assert.Equal(t, `SELECT id FROM worklogs WHERE user_id = $1 AND log_date IN ($2, $3)`, DialectPostgres.Rebind(q))
	assert.Equal(t, "SELECT 1", DialectPostgres.Rebind("SELECT 1"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open("oracle", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
