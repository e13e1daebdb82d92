package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
)

const testSecret = "test-secret"

var testNow = time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)

type apiFixture struct {
	db      *testutil.Repos
	manager *domain.User
	handler http.Handler
	token   string
}

func newAPIFixture(t *testing.T) *apiFixture {
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

	srv := New(factory, config.HTTPConfig{JWTSecret: testSecret, AllowedOrigins: []string{"*"}}, logger, WithClock(clock))
	token, err := IssueToken(testSecret, manager.Email, time.Hour, testNow)
	require.NoError(t, err)
	return &apiFixture{db: r, manager: manager, handler: srv.Routes(), token: token}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (f *apiFixture) project(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, f.manager.ID, opts...)
	require.NoError(t, f.db.Projects.Create(context.Background(), p))
	return p
}

func (f *apiFixture) member(t *testing.T, name string, p *domain.Project) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, f.db.Users.Create(context.Background(), u))
	require.NoError(t, f.db.Assignments.Create(context.Background(), testutil.NewTestAssignment(p.ID, u.ID)))
	return u
}

func TestHealthzNeedsNoToken(t *testing.T) {
	f := newAPIFixture(t)
	f.token = ""
	rec := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth(t *testing.T) {
	f := newAPIFixture(t)
	employee := testutil.NewTestUser("Ana")
	require.NoError(t, f.db.Users.Create(context.Background(), employee))
	employeeToken, err := IssueToken(testSecret, employee.Email, time.Hour, testNow)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, f.manager.Email, time.Hour, testNow.Add(-2*time.Hour))
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", f.manager.Email, time.Hour, testNow)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong secret", foreign, http.StatusUnauthorized},
		{"not a manager", employeeToken, http.StatusUnauthorized},
		{"manager", f.token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := *f
			g.token = tt.token
			rec := g.do(t, http.MethodGet, "/api/stats", nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, " pat@example.com ", time.Minute, testNow)
	require.NoError(t, err)

	email, err := ParseToken(testSecret, token, testNow.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", email)

	_, err = ParseToken(testSecret, token, testNow.Add(2*time.Minute))
	assert.Error(t, err)

	_, err = IssueToken("", "pat@example.com", time.Minute, testNow)
	assert.Error(t, err)
}

func TestStatsAndTeam(t *testing.T) {
	f := newAPIFixture(t)
	p := f.project(t, "Alpha")
	f.member(t, "Ana", p)
	f.member(t, "Bo", p)

	stats := decode[statsView](t, f.do(t, http.MethodGet, "/api/stats", nil))
	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 2, stats.TeamMembers)

	team := decode[[]memberView](t, f.do(t, http.MethodGet, "/api/team", nil))
	require.Len(t, team, 2)
	assert.Equal(t, domain.DefaultMemberStatus, team[0].Status)
}

func TestAllocationWeek(t *testing.T) {
	f := newAPIFixture(t)
	p := f.project(t, "Alpha")
	ana := f.member(t, "Ana", p)
	require.NoError(t, f.db.Worklogs.Create(context.Background(),
		testutil.NewTestWorklog(ana.ID, p.ID, testutil.Date("2025-06-03"), 9)))

	rec := f.do(t, http.MethodGet, "/api/allocation?week=2025-06-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[allocationView](t, rec)
	assert.Equal(t, "2025-06-02", view.WeekStart)
	require.Len(t, view.Rows, 1)
	require.Len(t, view.Rows[0].Days, 5)
	tuesday := view.Rows[0].Days[1]
	assert.Equal(t, "2025-06-03", tuesday.Date)
	assert.Equal(t, "overtime", tuesday.Category)
	assert.Equal(t, "+1h OT", tuesday.Annotation)

	rec = f.do(t, http.MethodGet, "/api/allocation?week=2025-06-04", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	weeks := decode[[]weekView](t, f.do(t, http.MethodGet, "/api/weeks", nil))
	require.NotEmpty(t, weeks)
	last := weeks[len(weeks)-1]
	assert.Equal(t, "2025-06-02", last.Value)
	assert.True(t, last.Selected)
}

func TestProjectsListAndFilter(t *testing.T) {
	f := newAPIFixture(t)
	f.project(t, "Billing", testutil.WithProjectCreatedAt(testNow.Add(-time.Hour)))
	f.project(t, "Search", testutil.WithProjectStatus(domain.ProjectOngoing))

	all := decode[[]projectView](t, f.do(t, http.MethodGet, "/api/projects", nil))
	assert.Len(t, all, 2)

	filtered := decode[[]projectView](t, f.do(t, http.MethodGet, "/api/projects?search=bill", nil))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Billing", filtered[0].Name)
	assert.Equal(t, "Active", filtered[0].StatusLabel)
}

func TestAllocate(t *testing.T) {
	f := newAPIFixture(t)
	p := f.project(t, "Alpha", testutil.WithProjectStatus(domain.ProjectPlanning))
	ana := f.member(t, "Ana", p)

	rec := f.do(t, http.MethodPost, "/api/allocations", map[string]any{
		"project_id":    p.ID,
		"employee_id":   ana.ID,
		"hours_per_day": 9,
		"start_date":    "2025-06-02",
		"end_date":      "2025-06-06",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Hours per day must be between 0 and 8 (employee's available hours)", decode[errorBody](t, rec).Error)

	rec = f.do(t, http.MethodPost, "/api/allocations", map[string]any{
		"project_id":    p.ID,
		"employee_id":   ana.ID,
		"hours_per_day": 8,
		"start_date":    "2025-06-02",
		"end_date":      "2025-06-06",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "active", decode[map[string]string](t, rec)["project_status"])

	rec = f.do(t, http.MethodPost, "/api/allocations", map[string]any{"start_date": "June 2nd"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/allocations", map[string]any{"unknown": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitProjectRequest(t *testing.T) {
	f := newAPIFixture(t)
	body := map[string]any{
		"name":       "Billing revamp",
		"team_size":  2,
		"start_date": "2025-07-01",
		"end_date":   "2025-07-15",
		"priority":   "high",
		"resources": []map[string]any{
			{"position": "Backend", "quantity": 2, "skill_level": "Senior", "assignment_type": "Full-Time", "skills": []string{"go"}},
		},
	}
	rec := f.do(t, http.MethodPost, "/api/project-requests", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cards := decode[[]projectView](t, f.do(t, http.MethodGet, "/api/projects?status=pending", nil))
	require.Len(t, cards, 1)
	assert.True(t, cards[0].IsPending)
	assert.Equal(t, 2, cards[0].TeamSize)
	assert.Equal(t, 14, cards[0].DurationDays)

	body["resources"] = []map[string]any{}
	rec = f.do(t, http.MethodPost, "/api/project-requests", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "At least one resource requirement is needed", decode[errorBody](t, rec).Error)
}

func TestEntries(t *testing.T) {
	f := newAPIFixture(t)
	p := f.project(t, "Alpha")
	ana := f.member(t, "Ana", p)

	rec := f.do(t, http.MethodPost, "/api/entries", map[string]any{
		"user_id": ana.ID, "date": "2025-06-03", "type": "holiday",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/entries", map[string]any{
		"user_id": ana.ID, "date": "2025-06-03", "type": "work", "project_id": p.ID, "hours": 9,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode[errorBody](t, rec).Error, "Total hours will be 17h")

	list := decode[[]entryView](t, f.do(t, http.MethodGet, "/api/entries?user="+ana.ID+"&date=2025-06-03", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "holiday", list[0].WorkType)

	rec = f.do(t, http.MethodDelete, "/api/entries/"+list[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodDelete, "/api/entries/"+list[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/entries?user="+ana.ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteAndDrop(t *testing.T) {
	f := newAPIFixture(t)
	p := f.project(t, "Alpha")
	f.member(t, "Ana", p)

	rec := f.do(t, http.MethodPost, "/api/projects/"+p.ID+"/complete", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/projects/"+p.ID+"/drop", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/projects/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	history := decode[[]projectView](t, f.do(t, http.MethodGet, "/api/projects/history", nil))
	require.Len(t, history, 1)
	assert.Equal(t, "completed", history[0].Status)
	require.NotNil(t, history[0].EndDate)
	assert.Equal(t, "2025-06-04", *history[0].EndDate)
}

func TestStatusFor(t *testing.T) {
	code, _ := statusFor(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, code)
	code, _ = statusFor(service.ErrNotLoggedIn)
	assert.Equal(t, http.StatusUnauthorized, code)
}
