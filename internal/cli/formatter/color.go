package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryStyle returns the style a day cell of the given category is drawn in.
func CategoryStyle(c grid.Category) lipgloss.Style {
	switch c {
	case grid.CategoryHolidayWork:
		return StylePurple
	case grid.CategoryAbsent:
		return StyleRed
	case grid.CategoryLeave:
		return StyleYellow
	case grid.CategoryHoliday:
		return StyleBlue
	case grid.CategoryOvertime:
		return StyleHeader
	case grid.CategoryWorkDay:
		return StyleGreen
	default:
		return StyleDim
	}
}

// LevelStyle colors an availability level: low load is good news.
func LevelStyle(l domain.AvailabilityLevel) lipgloss.Style {
	switch l {
	case domain.AvailabilityHigh:
		return StyleRed
	case domain.AvailabilityMedium:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// PriorityBadge renders a project priority.
func PriorityBadge(p domain.Priority) string {
	label := strings.ToUpper(string(p))
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render("▲ " + label)
	case domain.PriorityHigh:
		return StyleHeader.Render("▲ " + label)
	case domain.PriorityLow:
		return StyleDim.Render("▽ " + label)
	default:
		return StyleYellow.Render("● " + label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
