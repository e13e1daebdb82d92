package grid

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// OptionCount is the number of selectable weeks: ten past weeks plus the
// current one.
const OptionCount = 11

// MondayOf returns midnight of the Monday starting t's work week, in t's
// location. Sundays belong to the week that started six days earlier.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// WeekDates returns the five dates Monday through Friday starting at monday.
func WeekDates(monday time.Time) [domain.WorkWeekDays]time.Time {
	var out [domain.WorkWeekDays]time.Time
	for i := range out {
		out[i] = monday.AddDate(0, 0, i)
	}
	return out
}

// WeekEnd returns the Friday of the week starting at monday.
func WeekEnd(monday time.Time) time.Time {
	return monday.AddDate(0, 0, domain.WorkWeekDays-1)
}

// FormatDate renders a civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// ParseWeekStart parses a YYYY-MM-DD week start and requires it to be a Monday.
func ParseWeekStart(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week start %q: use YYYY-MM-DD", s)
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week start %s is a %s, not a Monday", s, t.Weekday())
	}
	return t, nil
}

// WeekLabel describes the Monday-to-Friday span starting at monday, sharing
// the month and year when both ends agree.
func WeekLabel(monday time.Time) string {
	end := WeekEnd(monday)
	switch {
	case monday.Year() == end.Year() && monday.Month() == end.Month():
		return fmt.Sprintf("Week of %s %d - %d, %d",
			monday.Format("Jan"), monday.Day(), end.Day(), end.Year())
	case monday.Year() == end.Year():
		return fmt.Sprintf("Week of %s %d - %s %d, %d",
			monday.Format("Jan"), monday.Day(), end.Format("Jan"), end.Day(), end.Year())
	default:
		return fmt.Sprintf("Week of %s %d, %d - %s %d, %d",
			monday.Format("Jan"), monday.Day(), monday.Year(),
			end.Format("Jan"), end.Day(), end.Year())
	}
}

// WeekOption is one entry of the week selector.
type WeekOption struct {
	Start    time.Time
	Value    string
	Label    string
	Selected bool
}

// WeekOptions returns the selectable weeks, oldest first, ending with the
// week containing now, which is selected.
func WeekOptions(now time.Time) []WeekOption {
	current := MondayOf(now)
	out := make([]WeekOption, 0, OptionCount)
	for i := -(OptionCount - 1); i <= 0; i++ {
		start := current.AddDate(0, 0, 7*i)
		out = append(out, WeekOption{
			Start:    start,
			Value:    FormatDate(start),
			Label:    WeekLabel(start),
			Selected: i == 0,
		})
	}
	return out
}

// Shift moves delta weeks from the option whose value is current, staying
// within the list. It returns false when current is not an option or the
// move would leave the list.
func Shift(options []WeekOption, current string, delta int) (WeekOption, bool) {
	for i, o := range options {
		if o.Value != current {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(options) {
			return o, false
		}
		return options[j], true
	}
	return WeekOption{}, false
}
