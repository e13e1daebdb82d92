package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklogRepo_ListDateRange(t *testing.T) {
	r := testutil.NewTestRepos(t)
	ctx := context.Background()
	pm := seedManager(t, r)

	p := testutil.NewTestProject("Apollo", pm.ID)
	require.NoError(t, r.Projects.Create(ctx, p))
	u := testutil.NewTestUser("Alice")
	require.NoError(t, r.Users.Create(ctx, u))

	for _, l := range []*domain.WorkLog{
		testutil.NewTestWorklog(u.ID, p.ID, testutil.Date("2025-06-01"), 8),
		testutil.NewTestWorklog(u.ID, p.ID, testutil.Date("2025-06-03"), 6, testutil.WithWorkDescription("Review")),
		testutil.NewTestWorklog(u.ID, p.ID, testutil.Date("2025-06-02"), 7.5, testutil.WithWorkType(domain.WorkFromHome)),
		testutil.NewTestWorklog(u.ID, p.ID, testutil.Date("2025-06-07"), 4),
	} {
		require.NoError(t, r.Worklogs.Create(ctx, l))
	}

	from, to := testutil.Date("2025-06-02"), testutil.Date("2025-06-06")
	got, err := r.Worklogs.List(ctx, repository.WorklogFilter{ProjectIDs: []string{p.ID}, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-06-02", got[0].LogDate.Format(domain.DateLayout))
	assert.Equal(t, domain.WorkFromHome, got[0].WorkType)
	assert.InDelta(t, 7.5, got[0].Hours, 0.001)
	assert.Equal(t, "2025-06-03", got[1].LogDate.Format(domain.DateLayout))
	assert.Equal(t, domain.EntryInProgress, got[1].Status)
	assert.Equal(t, "Review", got[1].Description)
}

func TestWorklogRepo_CheckConstraint(t *testing.T) {
	r := testutil.NewTestRepos(t)
	ctx := context.Background()
	pm := seedManager(t, r)

	p := testutil.NewTestProject("Apollo", pm.ID)
	require.NoError(t, r.Projects.Create(ctx, p))
	u := testutil.NewTestUser("Alice")
	require.NoError(t, r.Users.Create(ctx, u))

	err := r.Worklogs.Create(ctx, testutil.NewTestWorklog(u.ID, p.ID, testutil.Date("2025-06-02"), 25))
	assert.Error(t, err)
}

func TestWorklogRepo_Delete(t *testing.T) {
	r := testutil.NewTestRepos(t)
	ctx := context.Background()
	pm := seedManager(t, r)

	p := testutil.NewTestProject("Apollo", pm.ID)
	require.NoError(t, r.Projects.Create(ctx, p))
	u := testutil.NewTestUser("Alice")
	require.NoError(t, r.Users.Create(ctx, u))

	l := testutil.NewTestWorklog(u.ID, p.ID, testutil.Date("2025-06-02"), 8)
	require.NoError(t, r.Worklogs.Create(ctx, l))
	require.NoError(t, r.Worklogs.Delete(ctx, l.ID))

	got, err := r.Worklogs.List(ctx, repository.WorklogFilter{UserID: u.ID})
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, r.Worklogs.Delete(ctx, l.ID), repository.ErrNotFound)
}

func TestWorklogRepo_GetByID(t *testing.T) {
	r := testutil.NewTestRepos(t)
	ctx := context.Background()
	pm := seedManager(t, r)

	p := testutil.NewTestProject("Apollo", pm.ID)
	require.NoError(t, r.Projects.Create(ctx, p))
	u := testutil.NewTestUser("Alice")
	require.NoError(t, r.Users.Create(ctx, u))

	l := testutil.NewTestWorklog(u.ID, p.ID, testutil.Date("2025-06-02"), 6, testutil.WithWorkDescription("Review"))
	require.NoError(t, r.Worklogs.Create(ctx, l))

	got, err := r.Worklogs.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ProjectID)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, "Review", got.Description)
	assert.Equal(t, "2025-06-02", got.LogDate.Format(domain.DateLayout))

	_, err = r.Worklogs.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
