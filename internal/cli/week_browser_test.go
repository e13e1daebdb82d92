package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
	"github.com/alexanderramin/rosterdesk/internal/teatest"
)

// stubDashboard serves a single-member grid for any week and records which
// weeks were loaded.
type stubDashboard struct {
	loads       []time.Time
	invalidated int
}

func (s *stubDashboard) GetProjects(context.Context, bool) []*domain.Project { return nil }
func (s *stubDashboard) GetTeamMembers(context.Context, bool) []domain.TeamMember {
	return nil
}
func (s *stubDashboard) GetDashboardStats(context.Context) domain.DashboardStats {
	return domain.DashboardStats{}
}
func (s *stubDashboard) GetAvailableTeamMembers(context.Context) []domain.AvailableMember {
	return nil
}
func (s *stubDashboard) Invalidate() { s.invalidated++ }

func (s *stubDashboard) GetWeeklyAllocation(_ context.Context, monday time.Time) []domain.WeeklyAllocationRow {
	s.loads = append(s.loads, monday)
	row := domain.WeeklyAllocationRow{Member: domain.TeamMember{ID: "u1", Name: "Ana"}}
	for i, d := range grid.WeekDates(monday) {
		row.Days[i] = domain.DayCell{Date: d}
	}
	row.Days[0].Hours = float64(monday.Day() % 8)
	row.Days[0].AddTag(domain.WorkRegular)
	return []domain.WeeklyAllocationRow{row}
}

func newBrowserDriver(t *testing.T, start string) (*teatest.Driver, *stubDashboard) {
	t.Helper()
	dash := &stubDashboard{}
	b := newWeekBrowser(context.Background(), dash, grid.WeekOptions(testNow), start)
	d := teatest.New(t, b, teatest.WithSize(140, 40))
	d.DrainInit()
	return d, dash
}

func TestWeekBrowser_StartsOnCurrentWeek(t *testing.T) {
	d, dash := newBrowserDriver(t, "")

	view := stripANSI(d.View())
	assert.Contains(t, view, "WEEK OF JUN 2 - 6, 2025")
	assert.Contains(t, view, "week 11 of 11")
	assert.Contains(t, view, "Ana")
	require.Len(t, dash.loads, 1)
	assert.Equal(t, "2025-06-02", grid.FormatDate(dash.loads[0]))
}

func TestWeekBrowser_Navigates(t *testing.T) {
	d, dash := newBrowserDriver(t, "")

	d.PressLeft()
	view := stripANSI(d.View())
	assert.Contains(t, view, "WEEK OF MAY 26 - 30, 2025")
	assert.Contains(t, view, "week 10 of 11")

	d.PressKey('h')
	assert.Contains(t, stripANSI(d.View()), "WEEK OF MAY 19 - 23, 2025")

	d.PressKey('l')
	d.PressRight()
	assert.Contains(t, stripANSI(d.View()), "WEEK OF JUN 2 - 6, 2025")
	assert.Len(t, dash.loads, 5)
}

func TestWeekBrowser_StaysWithinRange(t *testing.T) {
	d, dash := newBrowserDriver(t, "")

	d.PressRight()
	assert.Contains(t, stripANSI(d.View()), "week 11 of 11")
	assert.Len(t, dash.loads, 1, "no load past the current week")

	d, _ = newBrowserDriver(t, "2025-03-24")
	assert.Contains(t, stripANSI(d.View()), "week 1 of 11")
	d.PressLeft()
	assert.Contains(t, stripANSI(d.View()), "WEEK OF MAR 24 - 28, 2025")
}

func TestWeekBrowser_UnknownStartFallsBackToLatest(t *testing.T) {
	d, _ := newBrowserDriver(t, "2024-01-01")
	assert.Contains(t, stripANSI(d.View()), "week 11 of 11")
}

func TestWeekBrowser_RefreshInvalidates(t *testing.T) {
	d, dash := newBrowserDriver(t, "")
	d.PressKey('r')
	assert.Equal(t, 1, dash.invalidated)
	assert.Len(t, dash.loads, 2)
}

func TestWeekBrowser_DropsStaleLoads(t *testing.T) {
	d, _ := newBrowserDriver(t, "")
	stale := grid.WeekOptions(testNow)[0].Start
	d.Send(weekLoadedMsg{monday: stale, rows: nil})
	assert.Contains(t, stripANSI(d.View()), "Ana")
}

func TestWeekBrowser_Quit(t *testing.T) {
	for name, press := range map[string]func(*teatest.Driver){
		"q":      func(d *teatest.Driver) { d.PressKey('q') },
		"esc":    (*teatest.Driver).PressEsc,
		"ctrl+c": (*teatest.Driver).PressCtrlC,
	} {
		t.Run(name, func(t *testing.T) {
			d, dash := newBrowserDriver(t, "")
			press(d)
			assert.True(t, d.Quitting)
			d.PressLeft()
			assert.Len(t, dash.loads, 1, "keys after quit are ignored")
		})
	}
}
