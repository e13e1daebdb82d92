package formatter

import (
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

// FormatEntries renders one member's entries for a day, with the day total.
func FormatEntries(date time.Time, logs []*domain.WorkLog) string {
	title := Header(date.Format("Monday, Jan 2 2006"))
	if len(logs) == 0 {
		return title + "\n" + Dim("No entries for this day.")
	}
	rows := make([][]string, 0, len(logs))
	var total float64
	for _, l := range logs {
		kind := l.WorkType.Label()
		if kind == "" {
			kind = "Work"
		}
		project := Dim("--")
		if l.ProjectID != "" {
			project = TruncID(l.ProjectID)
		}
		rows = append(rows, []string{
			Dim(l.ID),
			kind,
			project,
			grid.FormatHours(l.Hours),
			l.Description,
		})
		total += l.Hours
	}
	cell := grid.Classify(total, tagsOf(logs))
	table := Table{
		Headers: []string{"ID", "TYPE", "PROJECT", "HOURS", "DESCRIPTION"},
		Rows:    rows,
		Right:   map[int]bool{3: true},
	}.Render()
	return title + "\n" + table + Dim("day  ") + FormatCell(cell)
}

func tagsOf(logs []*domain.WorkLog) []domain.WorkType {
	var day domain.DayCell
	for _, l := range logs {
		day.AddTag(l.WorkType)
	}
	return day.Tags
}

// FormatProjectOptions lists the projects a member can log against on a day.
func FormatProjectOptions(options []service.ProjectOption) string {
	if len(options) == 0 {
		return Dim("No active assignments to log against.")
	}
	rows := make([][]string, 0, len(options))
	for _, o := range options {
		rows = append(rows, []string{TruncID(o.ID), Bold(o.Name), grid.FormatHours(o.LoggedHours)})
	}
	return Table{Headers: []string{"ID", "PROJECT", "LOGGED"}, Rows: rows, Right: map[int]bool{2: true}}.Render()
}

// FormatEntryAdded confirms a saved entry.
func FormatEntryAdded(l *domain.WorkLog) string {
	kind := l.WorkType.Label()
	if kind == "" {
		kind = "Work"
	}
	return StyleGreen.Render("✔") + " Logged " + Bold(grid.FormatHours(l.Hours)) + " " + kind +
		" on " + grid.FormatDate(l.LogDate) + " " + Dim(l.ID)
}
