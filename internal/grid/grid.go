// Package grid turns aggregated per-day log data into display cells for the
// weekly allocation view, and computes the week windows that view pages
// through.
package grid

import (
	"fmt"
	"math"
	"strconv"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// Category is the display class of a day cell. Exactly one applies.
type Category string

const (
	CategoryEmpty       Category = "empty"
	CategoryHolidayWork Category = "holiday-work"
	CategoryAbsent      Category = "absent"
	CategoryLeave       Category = "leave"
	CategoryHoliday     Category = "holiday"
	CategoryOvertime    Category = "overtime"
	CategoryWorkDay     Category = "work-day"
)

// Categories lists every category in precedence order.
var Categories = []Category{
	CategoryEmpty, CategoryHolidayWork, CategoryAbsent, CategoryLeave,
	CategoryHoliday, CategoryOvertime, CategoryWorkDay,
}

const absentPlaceholder = "---"

// Cell is a classified day cell ready for rendering.
type Cell struct {
	Category   Category
	Hours      float64
	HoursLabel string
	Annotation string
	TagLabel   string
	// Partial is set for work days under a standard day.
	Partial bool
}

// Classify assigns a category to an aggregated day. Rules are evaluated in
// order and the first match wins.
func Classify(hours float64, tags []domain.WorkType) Cell {
	holiday, worked, absent, leave := false, false, false, false
	for _, t := range tags {
		switch {
		case t == domain.WorkHoliday:
			holiday = true
		case t == domain.WorkAbsent:
			absent = true
		case t == domain.WorkLeave || t == domain.WorkSickLeave:
			leave = true
		case t.IsWorked():
			worked = true
		}
	}
	label := TagLabel(tags)
	cell := Cell{Hours: hours, TagLabel: label}

	switch {
	case len(tags) == 0 && hours == 0:
		cell.Category = CategoryEmpty
		cell.HoursLabel = "0h"
	case holiday && worked:
		cell.Category = CategoryHolidayWork
		cell.HoursLabel = FormatHours(hours)
		cell.Annotation = fmt.Sprintf("+%dh Holiday", domain.StandardDayHours)
	case absent:
		cell.Category = CategoryAbsent
		cell.HoursLabel = absentPlaceholder
	case leave && !holiday:
		cell.Category = CategoryLeave
		cell.HoursLabel = FormatHours(domain.StandardDayHours)
	case holiday:
		cell.Category = CategoryHoliday
		cell.HoursLabel = FormatHours(domain.StandardDayHours)
		cell.TagLabel = "Holiday"
	case hours > domain.StandardDayHours:
		cell.Category = CategoryOvertime
		cell.HoursLabel = FormatHours(hours)
		cell.Annotation = "+" + FormatHours(Overtime(hours)) + " OT"
	case hours == domain.StandardDayHours:
		cell.Category = CategoryWorkDay
		cell.HoursLabel = FormatHours(hours)
	case hours > 0:
		cell.Category = CategoryWorkDay
		cell.HoursLabel = FormatHours(hours)
		cell.Partial = true
	default:
		cell.Category = CategoryEmpty
		cell.HoursLabel = "0h"
	}
	return cell
}

// ClassifyDay classifies an aggregated domain cell.
func ClassifyDay(d domain.DayCell) Cell {
	return Classify(d.Hours, d.Tags)
}

// Overtime returns the hours past a standard day, rounded to hundredths.
func Overtime(hours float64) float64 {
	if hours <= domain.StandardDayHours {
		return 0
	}
	return math.Round((hours-domain.StandardDayHours)*100) / 100
}

// FormatHours renders hours without trailing zeros: 8 -> "8h", 7.5 -> "7.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// TagLabel summarizes a tag set for display. Worked tags carry no label; with
// several labels the first is shown with a count of the rest ("Leave +1").
func TagLabel(tags []domain.WorkType) string {
	var labels []string
	for _, t := range tags {
		if l := t.Label(); l != "" {
			labels = append(labels, l)
		}
	}
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return fmt.Sprintf("%s +%d", labels[0], len(labels)-1)
	}
}
