package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		tags  []domain.WorkType
		want  string
	}{
		{"overtime", 9, []domain.WorkType{domain.WorkRegular}, "9h +1h OT"},
		{"leave", 0, []domain.WorkType{domain.WorkLeave}, "8h Leave"},
		{"holiday work", 6, []domain.WorkType{domain.WorkHoliday, domain.WorkRegular}, "6h +8h Holiday"},
		{"empty", 0, nil, "0h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(FormatCell(grid.Classify(tt.hours, tt.tags))))
		})
	}
}

func TestFormatWeeklyAllocation(t *testing.T) {
	row := domain.WeeklyAllocationRow{Member: domain.TeamMember{ID: "u1", Name: "Ana"}}
	for i, d := range grid.WeekDates(monday) {
		row.Days[i] = domain.DayCell{Date: d}
	}
	row.Days[0].Hours = 9
	row.Days[0].AddTag(domain.WorkRegular)
	row.Days[2].AddTag(domain.WorkLeave)

	out := stripANSI(FormatWeeklyAllocation(monday, []domain.WeeklyAllocationRow{row}))

	assert.Contains(t, out, "WEEK OF JUN 2 - 6, 2025")
	assert.Contains(t, out, "MON 02")
	assert.Contains(t, out, "FRI 06")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "9h +1h OT")
	assert.Contains(t, out, "8h Leave")
	assert.Contains(t, out, "overtime")
}

func TestLegend_PrecedenceOrder(t *testing.T) {
	got := strings.Split(stripANSI(legend()), "  ")
	assert.Equal(t, []string{
		"■ holiday + work", "■ absent", "■ leave", "■ holiday", "■ overtime", "■ work",
	}, got)
	assert.Len(t, got, len(grid.Categories)-1)
}

func TestFormatWeeklyAllocation_Empty(t *testing.T) {
	out := stripANSI(FormatWeeklyAllocation(monday, nil))
	assert.Contains(t, out, "No team members")
}

func TestFormatProjectList(t *testing.T) {
	cards := []domain.ProjectCard{
		{
			Project:        domain.Project{ID: domain.PendingProjectPrefix + "g1", Name: "Gamma", Status: domain.ProjectPending, Priority: domain.PriorityHigh},
			IsPending:      true,
			TotalResources: 4,
		},
		{
			Project:         domain.Project{ID: "p-alpha-000001", Name: "Alpha", Status: domain.ProjectActive, Priority: domain.PriorityLow, StartDate: &monday},
			RMAssignedCount: 2,
			PMAllocated:     1,
		},
	}
	out := stripANSI(FormatProjectList(cards))

	assert.Contains(t, out, "PROJECTS")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "Gamma")
	assert.Contains(t, out, "◌ Pending Approval")
	assert.Contains(t, out, "▲ HIGH")
	assert.Contains(t, out, "p-alpha-")
	assert.Contains(t, out, "● Active")
	assert.Contains(t, out, "Jun 2, 2025 → --")
}

func TestFormatProjectList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatProjectList(nil)), "No projects match.")
}

func TestFormatTrackingStats(t *testing.T) {
	out := stripANSI(FormatTrackingStats(domain.TrackingStats{ActiveProjects: 2, CompletedProjects: 1, TotalMembers: 5, HighPriority: 3}))
	for _, s := range []string{"Active", "Completed", "Members", "High priority", "5", "3"} {
		assert.Contains(t, out, s)
	}
}

func TestFormatNotice(t *testing.T) {
	assert.Contains(t, stripANSI(FormatNotice(domain.NewAssignmentNotice(1, 3))), "1/3 employees assigned")
	assert.Contains(t, stripANSI(FormatNotice(domain.NewAssignmentNotice(3, 3))), "✔ All 3/3")
	assert.Empty(t, stripANSI(FormatNotice(domain.NewAssignmentNotice(0, 0))))
}

func TestFormatAssignable(t *testing.T) {
	out := stripANSI(FormatAssignable([]domain.AssignableMember{{
		TeamMember:           domain.TeamMember{ID: "u1", Name: "Ana"},
		AssignmentType:       domain.AssignmentPartTime,
		MaxHoursPerDay:       4,
		AllocatedHoursPerDay: 2,
		AvailableHoursPerDay: 2,
		Skills:               []string{"go", "sql"},
	}}))
	assert.Contains(t, out, "Part-Time")
	assert.Contains(t, out, "4h")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "go, sql")
}

func TestFormatEntries(t *testing.T) {
	logs := []*domain.WorkLog{
		{ID: "w1", ProjectID: "p1", Hours: 6, WorkType: domain.WorkRegular, Description: "api"},
		{ID: "w2", ProjectID: "p2", Hours: 3, WorkType: domain.WorkFromHome, Description: "review"},
	}
	out := stripANSI(FormatEntries(monday, logs))

	assert.Contains(t, out, "MONDAY, JUN 2 2025")
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "WFH")
	assert.Contains(t, out, "review")
	assert.Contains(t, out, "9h +1h OT WFH")
}

func TestFormatEntries_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatEntries(monday, nil)), "No entries")
}

func TestFormatProjectOptions(t *testing.T) {
	out := stripANSI(FormatProjectOptions([]service.ProjectOption{{ID: "p1", Name: "Alpha", LoggedHours: 2.5}}))
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "2.5h")
	assert.Contains(t, stripANSI(FormatProjectOptions(nil)), "No active assignments")
}

func TestFormatAvailable(t *testing.T) {
	out := stripANSI(FormatAvailable([]domain.AvailableMember{{
		TeamMember:     domain.TeamMember{Name: "Bo", Role: "Dev"},
		AssignedHours:  15,
		AvailableHours: 25,
		Utilization:    38,
		Level:          domain.AvailabilityLow,
	}}))
	assert.Contains(t, out, "Bo")
	assert.Contains(t, out, "25h")
	assert.Contains(t, out, "5h/day")
	assert.Contains(t, out, "38%")
}

func TestFormatWeeks_MarksSelected(t *testing.T) {
	now := time.Date(2025, 6, 4, 10, 0, 0, 0, time.Local)
	out := stripANSI(FormatWeeks(grid.WeekOptions(now)))
	assert.Contains(t, out, "▸ 2025-06-02")
}
