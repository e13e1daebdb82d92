package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationRepo_CreateListDelete(t *testing.T) {
	r := testutil.NewTestRepos(t)
	ctx := context.Background()
	pm := seedManager(t, r)

	p := testutil.NewTestProject("Apollo", pm.ID)
	require.NoError(t, r.Projects.Create(ctx, p))
	alice := testutil.NewTestUser("Alice")
	bob := testutil.NewTestUser("Bob")
	require.NoError(t, r.Users.Create(ctx, alice))
	require.NoError(t, r.Users.Create(ctx, bob))

	start, end := testutil.Date("2025-06-02"), testutil.Date("2025-06-06")
	require.NoError(t, r.Allocations.Create(ctx, testutil.NewTestAllocation(alice.ID, p.ID, pm.ID, 4, start, end)))
	require.NoError(t, r.Allocations.Create(ctx, testutil.NewTestAllocation(bob.ID, p.ID, pm.ID, 6, start, end)))

	got, err := r.Allocations.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-06-06", got[0].EndDate.Format(domain.DateLayout))

	require.NoError(t, r.Allocations.DeleteByProject(ctx, p.ID, bob.ID))
	got, err = r.Allocations.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alice.ID, got[0].UserID)

	require.NoError(t, r.Allocations.DeleteByProject(ctx, p.ID, ""))
	got, err = r.Allocations.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAllocationRepo_RejectsZeroHours(t *testing.T) {
	r := testutil.NewTestRepos(t)
	ctx := context.Background()
	pm := seedManager(t, r)

	p := testutil.NewTestProject("Apollo", pm.ID)
	require.NoError(t, r.Projects.Create(ctx, p))

	day := testutil.Date("2025-06-02")
	err := r.Allocations.Create(ctx, testutil.NewTestAllocation(pm.ID, p.ID, pm.ID, 0, day, day))
	assert.Error(t, err)
}
