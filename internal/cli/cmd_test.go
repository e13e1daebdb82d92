package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/httpapi"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/session"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
)

const testSecret = "cli-secret"

var testNow = time.Date(2025, 6, 4, 10, 0, 0, 0, time.Local)

type cliFixture struct {
	app     *App
	db      *testutil.Repos
	manager *domain.User
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *cliFixture {
	t.Helper()
	r := testutil.NewTestRepos(t)
	manager := testutil.NewTestUser("Pat Manager", testutil.WithRole(domain.RoleProjectManager))
	require.NoError(t, r.Users.Create(context.Background(), manager))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return testNow }
	factory := service.NewFactory(service.Repos{
		Users:        r.Users,
		Details:      r.Details,
		Projects:     r.Projects,
		Requirements: r.Requirements,
		Assignments:  r.Assignments,
		Worklogs:     r.Worklogs,
		Allocations:  r.Allocations,
		Requests:     r.Requests,
		UoW:          r.UoW,
	}, service.WithClock(clock), service.WithLogger(logger))

	app := &App{
		Factory:       factory,
		Session:       session.NewStore(filepath.Join(t.TempDir(), "session.json")),
		HTTP:          config.HTTPConfig{JWTSecret: testSecret, TokenTTLMinutes: 60},
		Logger:        logger,
		Now:           clock,
		IsInteractive: func() bool { return false },
	}
	return &cliFixture{app: app, db: r, manager: manager}
}

func (f *cliFixture) login(t *testing.T) {
	t.Helper()
	_, err := executeCmd(t, f.app, "login", "--email", f.manager.Email)
	require.NoError(t, err)
}

func (f *cliFixture) project(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, f.manager.ID, opts...)
	require.NoError(t, f.db.Projects.Create(context.Background(), p))
	return p
}

func (f *cliFixture) member(t *testing.T, name string, p *domain.Project) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, f.db.Users.Create(context.Background(), u))
	require.NoError(t, f.db.Assignments.Create(context.Background(), testutil.NewTestAssignment(p.ID, u.ID)))
	return u
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	f := testApp(t)
	out, err := executeCmd(t, f.app)
	require.NoError(t, err)
	assert.Contains(t, out, "rosterdesk")
	assert.Contains(t, out, "allocation")
}

func TestCommands_RequireLogin(t *testing.T) {
	f := testApp(t)
	for _, args := range [][]string{
		{"dashboard"},
		{"allocation"},
		{"available"},
		{"project", "list"},
		{"entry", "list", "--user", "x"},
		{"whoami"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, err := executeCmd(t, f.app, args...)
			assert.ErrorIs(t, err, errNotLoggedIn)
		})
	}
}

func TestLogin(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "login", "--email", "nobody@example.com")
	assert.ErrorContains(t, err, "no project manager")

	_, err = executeCmd(t, f.app, "login")
	assert.ErrorContains(t, err, "--email is required")

	out, err := executeCmd(t, f.app, "login", "--email", "  "+f.manager.Email+" ", "--remember")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Pat Manager")

	out, err = executeCmd(t, f.app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, f.manager.Email)
	assert.Contains(t, out, "project_manager")

	_, err = executeCmd(t, f.app, "logout")
	require.NoError(t, err)
	_, err = executeCmd(t, f.app, "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)

	// The remembered email signs in again without --email.
	_, err = executeCmd(t, f.app, "login")
	require.NoError(t, err)
	id, err := f.app.Session.Load()
	require.NoError(t, err)
	assert.Equal(t, f.manager.ID, id.ID)
}

func TestLogin_EmployeeRejected(t *testing.T) {
	f := testApp(t)
	employee := testutil.NewTestUser("Ana")
	require.NoError(t, f.db.Users.Create(context.Background(), employee))

	_, err := executeCmd(t, f.app, "login", "--email", employee.Email)
	assert.ErrorContains(t, err, "no project manager")
}

func TestStaleSessionIsNotLoggedIn(t *testing.T) {
	f := testApp(t)
	require.NoError(t, f.app.Session.Save(session.Identity{ID: "gone", Email: "gone@example.com"}, false))

	_, err := executeCmd(t, f.app, "dashboard")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestDashboard(t *testing.T) {
	f := testApp(t)
	p := f.project(t, "Alpha")
	f.member(t, "Ana", p)
	f.member(t, "Bo", p)
	f.login(t)

	out, err := executeCmd(t, f.app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "DASHBOARD")
	assert.Contains(t, out, "Active projects")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Bo")
}

func TestAllocationCmd(t *testing.T) {
	f := testApp(t)
	p := f.project(t, "Alpha")
	ana := f.member(t, "Ana", p)
	require.NoError(t, f.db.Worklogs.Create(context.Background(),
		testutil.NewTestWorklog(ana.ID, p.ID, testutil.Date("2025-06-03"), 9)))
	f.login(t)

	out, err := executeCmd(t, f.app, "allocation", "--week", "2025-06-02")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEK OF JUN 2 - 6, 2025")
	assert.Contains(t, out, "9h +1h OT")

	// Without --week the current week is shown.
	out, err = executeCmd(t, f.app, "allocation")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")

	_, err = executeCmd(t, f.app, "allocation", "--week", "2025-06-04")
	assert.ErrorContains(t, err, "not a Monday")
}

func TestWeeksCmd(t *testing.T) {
	f := testApp(t)
	out, err := executeCmd(t, f.app, "weeks")
	require.NoError(t, err)
	assert.Contains(t, out, "▸ 2025-06-02")
	assert.Contains(t, out, "2025-03-24")
}

func TestAvailableCmd(t *testing.T) {
	f := testApp(t)
	p := f.project(t, "Alpha")
	bo := testutil.NewTestUser("Bo")
	require.NoError(t, f.db.Users.Create(context.Background(), bo))
	require.NoError(t, f.db.Assignments.Create(context.Background(),
		testutil.NewTestAssignment(p.ID, bo.ID, testutil.WithAssignedHours(20), testutil.WithAssignmentType(domain.AssignmentPartTime))))
	f.login(t)

	out, err := executeCmd(t, f.app, "available")
	require.NoError(t, err)
	assert.Contains(t, out, "Bo")
	assert.Contains(t, out, "20h")
}

func TestProjectCmds(t *testing.T) {
	f := testApp(t)
	alpha := f.project(t, "Alpha", testutil.WithPriority(domain.PriorityHigh))
	f.project(t, "Beta", testutil.WithProjectCreatedAt(testNow.Add(-time.Hour).UTC()))
	f.member(t, "Ana", alpha)
	f.login(t)

	out, err := executeCmd(t, f.app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")

	out, err = executeCmd(t, f.app, "project", "list", "--search", "alp")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "Beta")

	out, err = executeCmd(t, f.app, "project", "team", alpha.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Full-Time")

	out, err = executeCmd(t, f.app, "project", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "High priority")

	out, err = executeCmd(t, f.app, "project", "assignable", "Alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "8h")

	_, err = executeCmd(t, f.app, "project", "remove-member", "Alpha", "Ana")
	require.NoError(t, err)
	assignments, err := f.db.Assignments.List(context.Background(), repository.AssignmentFilter{ProjectIDs: []string{alpha.ID}})
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, domain.AssignmentRemoved, assignments[0].Status)

	out, err = executeCmd(t, f.app, "project", "complete", "Alpha", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	out, err = executeCmd(t, f.app, "project", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Completed")

	_, err = executeCmd(t, f.app, "project", "drop", alpha.ID, "--yes")
	assert.ErrorIs(t, err, service.ErrProjectClosed)
}

func TestAllocateCmd(t *testing.T) {
	f := testApp(t)
	p := f.project(t, "Alpha", testutil.WithProjectStatus(domain.ProjectPlanning))
	f.member(t, "Ana", p)
	f.login(t)

	_, err := executeCmd(t, f.app, "allocate", "--project", "Alpha")
	assert.ErrorContains(t, err, "--employee and --hours are required")

	_, err = executeCmd(t, f.app, "allocate", "--project", "Alpha", "--employee", "Ana", "--hours", "9",
		"--start", "2025-06-02", "--end", "2025-06-06")
	assert.ErrorContains(t, err, "between 0 and 8")

	_, err = executeCmd(t, f.app, "allocate", "--project", "Alpha", "--employee", "Ana", "--hours", "6",
		"--start", "June 2")
	assert.ErrorContains(t, err, "use YYYY-MM-DD")

	out, err := executeCmd(t, f.app, "allocate", "--project", "Alpha", "--employee", "Ana", "--hours", "6",
		"--start", "2025-06-02", "--end", "2025-06-06", "--desc", "api work")
	require.NoError(t, err)
	assert.Contains(t, out, "Allocated 6h/day")
	assert.Contains(t, out, "Active")

	allocs, err := f.db.Allocations.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, 6.0, allocs[0].HoursPerDay)
}

func TestRequestCmd(t *testing.T) {
	f := testApp(t)
	f.login(t)

	_, err := executeCmd(t, f.app, "request")
	assert.ErrorContains(t, err, "--name is required")

	_, err = executeCmd(t, f.app, "request", "--name", "Atlas", "--start", "2025-07-01", "--end", "2025-07-31")
	assert.ErrorContains(t, err, "Team size must be at least 1")

	out, err := executeCmd(t, f.app, "request", "--name", "Atlas", "--priority", "high",
		"--start", "2025-07-01", "--end", "2025-07-31",
		"--resource", "Backend Developer:2:Senior:full-time:go;postgres",
		"--resource", "Designer:1:Mid-Level:Contract:figma")
	require.NoError(t, err)
	assert.Contains(t, out, `Project request "Atlas" submitted successfully!`)
	assert.Contains(t, out, "requests 2")

	out, err = executeCmd(t, f.app, "project", "list", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Atlas")
	assert.Contains(t, out, "Pending Approval")
}

func TestParseResource(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    service.ResourceRequirement
		wantErr string
	}{
		{
			name: "full",
			raw: "QA Engineer:3:Junior:Part-Time:selenium; go",
			want: service.ResourceRequirement{
				Position: "QA Engineer", Quantity: 3, SkillLevel: "Junior",
				AssignmentType: domain.AssignmentPartTime, Skills: []string{"selenium", "go"},
			},
		},
		{name: "too few parts", raw: "QA:3:Junior", wantErr: "want position:qty:level:type:skills"},
		{name: "bad quantity", raw: "QA:x:Junior:Contract:go", wantErr: "quantity must be a number"},
		{name: "bad type", raw: "QA:1:Junior:Intern:go", wantErr: "unknown assignment type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResource(tt.raw)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryCmds(t *testing.T) {
	f := testApp(t)
	p := f.project(t, "Alpha")
	ana := f.member(t, "Ana", p)
	f.login(t)

	out, err := executeCmd(t, f.app, "entry", "add", "--user", "Ana", "--date", "2025-06-03", "--type", "holiday")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 8h Holiday on 2025-06-03")

	_, err = executeCmd(t, f.app, "entry", "add", "--user", "Ana", "--date", "2025-06-03",
		"--project", "Alpha", "--hours", "9")
	assert.ErrorIs(t, err, service.ErrConfirmationRequired)
	assert.ErrorContains(t, err, "--confirm")

	_, err = executeCmd(t, f.app, "entry", "add", "--user", "Ana", "--date", "2025-06-03",
		"--project", "Alpha", "--hours", "9", "--confirm")
	require.NoError(t, err)

	out, err = executeCmd(t, f.app, "entry", "list", "--user", ana.ID, "--date", "2025-06-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Holiday")
	assert.Contains(t, out, "Alpha")

	logs, err := f.db.Worklogs.List(context.Background(), repository.WorklogFilter{UserID: ana.ID})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	_, err = executeCmd(t, f.app, "entry", "delete", logs[0].ID)
	require.NoError(t, err)
	_, err = executeCmd(t, f.app, "entry", "delete", logs[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = executeCmd(t, f.app, "entry", "add", "--user", "Ana", "--date", "03/06/2025", "--type", "leave")
	assert.ErrorContains(t, err, "use YYYY-MM-DD")
}

func TestTokenCmd(t *testing.T) {
	f := testApp(t)

	_, err := executeCmd(t, f.app, "token")
	assert.ErrorContains(t, err, "--email is required")

	out, err := executeCmd(t, f.app, "token", "--email", f.manager.Email)
	require.NoError(t, err)
	email, err := httpapi.ParseToken(testSecret, trimLine(out), testNow)
	require.NoError(t, err)
	assert.Equal(t, f.manager.Email, email)

	_, err = executeCmd(t, f.app, "token", "--email", "nobody@example.com")
	assert.ErrorContains(t, err, "no project manager")
}

func TestServeCmd_RequiresSecret(t *testing.T) {
	f := testApp(t)
	f.app.HTTP.JWTSecret = ""
	_, err := executeCmd(t, f.app, "serve")
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestResolveMemberID(t *testing.T) {
	members := []domain.ProjectMember{
		{TeamMember: domain.TeamMember{ID: "abc-1", Name: "Ana"}},
		{TeamMember: domain.TeamMember{ID: "abd-2", Name: "Bo"}},
	}
	id, err := resolveMemberID(members, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc-1", id)

	id, err = resolveMemberID(members, "bo")
	require.NoError(t, err)
	assert.Equal(t, "abd-2", id)

	_, err = resolveMemberID(members, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	id, err = resolveMemberID(members, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "zzz", id)
}
