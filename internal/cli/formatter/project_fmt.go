package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// FormatProjectList renders project cards inside a bordered box. Pending
// cards show requested headcount; others show assigned and allocated counts.
func FormatProjectList(cards []domain.ProjectCard) string {
	if len(cards) == 0 {
		return RenderBox("Projects", Dim("No projects match."))
	}
	headers := []string{"ID", "NAME", "STATUS", "PRIORITY", "TEAM", "ALLOC", "DATES"}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		alloc := strconv.Itoa(c.PMAllocated)
		if c.IsPending {
			alloc = Dim("--")
		}
		rows = append(rows, []string{
			projectID(c.Project),
			Bold(c.Name),
			StatusPill(c.Status),
			PriorityBadge(c.Priority),
			strconv.Itoa(c.TeamSize()),
			alloc,
			DateRange(c.StartDate, c.EndDate),
		})
	}
	table := Table{Headers: headers, Rows: rows, Right: map[int]bool{4: true, 5: true}}.Render()
	return RenderBox("Projects", table)
}

func projectID(p domain.Project) string {
	if domain.IsPendingID(p.ID) {
		return StyleYellow.Render("pending")
	}
	return TruncID(p.ID)
}

// FormatProjectHistory renders closed projects, newest first.
func FormatProjectHistory(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No completed or cancelled projects yet.")
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			StatusPill(p.Status),
			ShortDate(p.StartDate),
			ShortDate(p.EndDate),
		})
	}
	return Header("Project history") + "\n" +
		RenderTable([]string{"ID", "NAME", "STATUS", "STARTED", "ENDED"}, rows)
}

// FormatProjectTeam renders the members assigned to one project.
func FormatProjectTeam(members []domain.ProjectMember) string {
	if len(members) == 0 {
		return Dim("Nobody is assigned to this project.")
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			TruncID(m.ID),
			Bold(m.Name),
			m.Role,
			string(m.AssignmentType),
			MemberStatus(m.Status),
		})
	}
	return RenderTable([]string{"ID", "NAME", "ROLE", "TYPE", "STATUS"}, rows)
}

// FormatTrackingStats renders the project tracking summary strip.
func FormatTrackingStats(s domain.TrackingStats) string {
	tile := func(label string, value int, style lipgloss.Style) string {
		return lipgloss.NewStyle().Width(18).Render(style.Bold(true).Render(strconv.Itoa(value)) + "\n" + Dim(label))
	}
	return RenderBox("Tracking", lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Active", s.ActiveProjects, StyleGreen),
		tile("Completed", s.CompletedProjects, StyleBlue),
		tile("Members", s.TotalMembers, StyleFg),
		tile("High priority", s.HighPriority, StyleRed),
	))
}

// FormatAssignable renders the members an allocation can target, with their
// daily ceiling and current load.
func FormatAssignable(members []domain.AssignableMember) string {
	if len(members) == 0 {
		return Dim("No members are assigned to this project.")
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		skills := Dim("--")
		if len(m.Skills) > 0 {
			skills = strings.Join(m.Skills, ", ")
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			Bold(m.Name),
			string(m.AssignmentType),
			Hours(m.MaxHoursPerDay),
			Hours(m.AllocatedHoursPerDay),
			StyleGreen.Render(Hours(m.AvailableHoursPerDay)),
			RenderUtilization(m.Utilization(), 10),
			skills,
		})
	}
	return Table{
		Headers: []string{"ID", "NAME", "TYPE", "MAX/DAY", "ALLOCATED", "FREE", "LOAD", "SKILLS"},
		Rows:    rows,
		Right:   map[int]bool{3: true, 4: true, 5: true},
	}.Render()
}

// FormatNotice renders the staffing notice shown above the allocation form.
func FormatNotice(n domain.AssignmentNotice) string {
	msg := n.Message()
	switch n.State {
	case domain.NoticeComplete:
		return StyleGreen.Render("✔ " + msg)
	case domain.NoticePartial, domain.NoticePending:
		return StyleYellow.Render("! " + msg)
	case domain.NoticeNoneAssigned:
		return StyleRed.Render("✖ " + msg)
	default:
		return Dim(msg)
	}
}

// FormatSubmitted confirms a new-project request.
func FormatSubmitted(groupID string, ids []string, message string) string {
	return fmt.Sprintf("%s %s\n%s %s  %s %d",
		StyleGreen.Render("✔"), message,
		Dim("group"), groupID,
		Dim("requests"), len(ids))
}
