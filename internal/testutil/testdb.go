package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// Repos bundles the SQL repositories over one test database.
type Repos struct {
	DB           *sql.DB
	Users        *repository.SQLUserRepo
	Details      *repository.SQLUserDetailRepo
	Projects     *repository.SQLProjectRepo
	Requirements *repository.SQLRequirementRepo
	Assignments  *repository.SQLAssignmentRepo
	Worklogs     *repository.SQLWorklogRepo
	Allocations  *repository.SQLAllocationRepo
	Requests     *repository.SQLResourceRequestRepo
	UoW          *repository.SQLUnitOfWork
}

// NewTestRepos opens a fresh test database and wires every SQL repository
// against it.
func NewTestRepos(t *testing.T) *Repos {
	t.Helper()
	database := NewTestDB(t)
	d := db.DialectSQLite
	return &Repos{
		DB:           database,
		Users:        repository.NewSQLUserRepo(database, d),
		Details:      repository.NewSQLUserDetailRepo(database, d),
		Projects:     repository.NewSQLProjectRepo(database, d),
		Requirements: repository.NewSQLRequirementRepo(database, d),
		Assignments:  repository.NewSQLAssignmentRepo(database, d),
		Worklogs:     repository.NewSQLWorklogRepo(database, d),
		Allocations:  repository.NewSQLAllocationRepo(database, d),
		Requests:     repository.NewSQLResourceRequestRepo(database, d),
		UoW:          repository.NewSQLUnitOfWork(db.NewSQLUnitOfWork(database), d),
	}
}
