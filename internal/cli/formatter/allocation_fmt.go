package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
)

// FormatCell renders one classified day: the hours label in the category
// color, then any annotation or tag label dimmed. Partial days are aqua.
func FormatCell(c grid.Cell) string {
	style := CategoryStyle(c.Category)
	if c.Partial {
		style = StyleAqua
	}
	parts := []string{style.Render(c.HoursLabel)}
	if c.Annotation != "" {
		parts = append(parts, Dim(c.Annotation))
	}
	if c.TagLabel != "" && c.Category != grid.CategoryHolidayWork {
		parts = append(parts, Dim(c.TagLabel))
	}
	return strings.Join(parts, " ")
}

// FormatWeeklyAllocation renders the Monday-to-Friday grid for monday.
func FormatWeeklyAllocation(monday time.Time, rows []domain.WeeklyAllocationRow) string {
	title := Header(grid.WeekLabel(monday))
	if len(rows) == 0 {
		return title + "\n" + Dim("No team members to show for this week.")
	}

	headers := []string{"MEMBER"}
	for _, d := range grid.WeekDates(monday) {
		headers = append(headers, strings.ToUpper(d.Format("Mon 02")))
	}
	headers = append(headers, "TOTAL")

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := []string{Bold(row.Member.Name)}
		for _, d := range row.Days {
			line = append(line, FormatCell(grid.ClassifyDay(d)))
		}
		line = append(line, StyleBold.Render(grid.FormatHours(row.TotalHours())))
		out = append(out, line)
	}
	table := Table{Headers: headers, Rows: out, Right: map[int]bool{len(headers) - 1: true}}.Render()
	return title + "\n" + table + "\n" + legend()
}

var legendLabels = map[grid.Category]string{
	grid.CategoryHolidayWork: "holiday + work",
	grid.CategoryAbsent:      "absent",
	grid.CategoryLeave:       "leave",
	grid.CategoryHoliday:     "holiday",
	grid.CategoryOvertime:    "overtime",
	grid.CategoryWorkDay:     "work",
}

// legend lists the drawn categories in precedence order. Empty cells have no
// swatch.
func legend() string {
	parts := make([]string, 0, len(grid.Categories))
	for _, c := range grid.Categories {
		label, ok := legendLabels[c]
		if !ok {
			continue
		}
		parts = append(parts, CategoryStyle(c).Render("■")+" "+Dim(label))
	}
	return strings.Join(parts, "  ")
}
