package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
)

// Wednesday of the week starting Monday 2025-06-02.
var testNow = time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	db      *testutil.Repos
	repos   Repos
	manager *domain.User
	clock   *testClock
	cache   *ManagerCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := testutil.NewTestRepos(t)
	manager := testutil.NewTestUser("Pat Manager", testutil.WithRole(domain.RoleProjectManager))
	require.NoError(t, r.Users.Create(context.Background(), manager))

	clock := &testClock{now: testNow}
	return &fixture{
		db: r,
		repos: Repos{
			Users:        r.Users,
			Details:      r.Details,
			Projects:     r.Projects,
			Requirements: r.Requirements,
			Assignments:  r.Assignments,
			Worklogs:     r.Worklogs,
			Allocations:  r.Allocations,
			Requests:     r.Requests,
			UoW:          r.UoW,
		},
		manager: manager,
		clock:   clock,
		cache:   NewManagerCache(DefaultCacheTTL, clock.Now),
	}
}

func (f *fixture) env() Env {
	return Env{
		Repos:   f.repos,
		Manager: f.manager,
		Cache:   f.cache,
		Clock:   f.clock.Now,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (f *fixture) project(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, f.manager.ID, opts...)
	require.NoError(t, f.db.Projects.Create(context.Background(), p))
	return p
}

// foreignProject creates a project owned by another project manager.
func (f *fixture) foreignProject(t *testing.T) *domain.Project {
	t.Helper()
	ctx := context.Background()
	other := testutil.NewTestUser("Other PM", testutil.WithRole(domain.RoleProjectManager))
	require.NoError(t, f.db.Users.Create(ctx, other))
	p := testutil.NewTestProject("Foreign", other.ID)
	require.NoError(t, f.db.Projects.Create(ctx, p))
	return p
}

// member creates an employee, with a detail row when detail options are given.
func (f *fixture) member(t *testing.T, name string, opts ...testutil.DetailOption) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, f.db.Users.Create(context.Background(), u))
	if len(opts) > 0 {
		require.NoError(t, f.db.Details.Upsert(context.Background(), testutil.NewTestDetail(u.ID, opts...)))
	}
	return u
}

func (f *fixture) assign(t *testing.T, p *domain.Project, u *domain.User, opts ...testutil.AssignmentOption) *domain.Assignment {
	t.Helper()
	a := testutil.NewTestAssignment(p.ID, u.ID, opts...)
	require.NoError(t, f.db.Assignments.Create(context.Background(), a))
	return a
}

func (f *fixture) log(t *testing.T, u *domain.User, p *domain.Project, date string, hours float64, opts ...testutil.WorklogOption) {
	t.Helper()
	require.NoError(t, f.db.Worklogs.Create(context.Background(), testutil.NewTestWorklog(u.ID, p.ID, testutil.Date(date), hours, opts...)))
}

type countingProjects struct {
	repository.ProjectRepo
	lists atomic.Int32
	err   error
}

func (c *countingProjects) List(ctx context.Context, f repository.ProjectFilter) ([]*domain.Project, error) {
	c.lists.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.ProjectRepo.List(ctx, f)
}

type countingAssignments struct {
	repository.AssignmentRepo
	lists atomic.Int32
}

func (c *countingAssignments) List(ctx context.Context, f repository.AssignmentFilter) ([]*domain.Assignment, error) {
	c.lists.Add(1)
	return c.AssignmentRepo.List(ctx, f)
}

// flakyRequests fails the insert whose resource index matches failIndex.
type flakyRequests struct {
	repository.ResourceRequestRepo
	failIndex int
	creates   atomic.Int32
}

var errInsert = errors.New("insert rejected")

func (f *flakyRequests) Create(ctx context.Context, r *domain.ResourceRequest) error {
	notes, err := domain.ParseRequestNotes(r.Notes)
	if err != nil {
		return err
	}
	if notes.ResourceIndex == f.failIndex {
		return errInsert
	}
	f.creates.Add(1)
	return f.ResourceRequestRepo.Create(ctx, r)
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
