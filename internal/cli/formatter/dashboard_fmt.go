package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
)

// FormatStats renders the four dashboard figures side by side.
func FormatStats(s domain.DashboardStats) string {
	tile := func(label, value string) string {
		return lipgloss.NewStyle().Width(18).Render(StyleBold.Render(value) + "\n" + Dim(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Active projects", strconv.Itoa(s.ActiveProjects)),
		tile("Team members", strconv.Itoa(s.TeamMembers)),
		tile("Hours this week", strconv.Itoa(s.TotalHours)),
		tile("Utilization", strconv.Itoa(s.TeamUtilization)+"%"),
	)
	return RenderBox("Dashboard", row+"\n\n"+RenderUtilization(s.TeamUtilization, 30))
}

// FormatTeam renders the manager's roster.
func FormatTeam(members []domain.TeamMember) string {
	if len(members) == 0 {
		return Dim("No team members on your projects yet.")
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{Bold(m.Name), m.Role, MemberStatus(m.Status), Dim(m.Email)})
	}
	return RenderTable([]string{"NAME", "ROLE", "STATUS", "EMAIL"}, rows)
}

// FormatDashboard renders the stats box followed by the team table.
func FormatDashboard(s domain.DashboardStats, members []domain.TeamMember) string {
	return FormatStats(s) + "\n\n" + Header("Team") + "\n" + FormatTeam(members)
}

// FormatAvailable renders members with spare weekly capacity.
func FormatAvailable(members []domain.AvailableMember) string {
	if len(members) == 0 {
		return Dim("Everyone is fully booked this week.")
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			Bold(m.Name),
			m.Role,
			grid.FormatHours(m.AssignedHours),
			StyleGreen.Render(grid.FormatHours(m.AvailableHours)),
			Hours(m.AvailablePerDay()) + Dim("/day"),
			LevelStyle(m.Level).Render(strconv.Itoa(m.Utilization) + "%"),
		})
	}
	return Table{
		Headers: []string{"NAME", "ROLE", "ASSIGNED", "AVAILABLE", "PER DAY", "LOAD"},
		Rows:    rows,
		Right:   map[int]bool{2: true, 3: true, 4: true, 5: true},
	}.Render()
}

// FormatWeeks lists the selectable weeks, marking the current one.
func FormatWeeks(options []grid.WeekOption) string {
	var b strings.Builder
	for _, o := range options {
		marker := "  "
		label := o.Label
		if o.Selected {
			marker = StyleHeader.Render("▸ ")
			label = Bold(label)
		}
		fmt.Fprintf(&b, "%s%s  %s\n", marker, Dim(o.Value), label)
	}
	return b.String()
}
