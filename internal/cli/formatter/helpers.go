package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// StatusPill returns a colored indicator for a project status.
func StatusPill(status domain.ProjectStatus) string {
	label := status.Label()
	switch status {
	case domain.ProjectActive, domain.ProjectOngoing:
		return StyleGreen.Render("● " + label)
	case domain.ProjectPending:
		return StyleYellow.Render("◌ " + label)
	case domain.ProjectPlanning:
		return StyleBlue.Render("○ " + label)
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ " + label)
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ " + label)
	case domain.ProjectCancelled:
		return StyleDim.Render("✖ " + label)
	default:
		return StyleDim.Render(label)
	}
}

// MemberStatus colors a member's free-text availability status.
func MemberStatus(status string) string {
	switch strings.ToLower(status) {
	case "available":
		return StyleGreen.Render(status)
	case "busy", "on leave":
		return StyleYellow.Render(status)
	default:
		return StyleFg.Render(status)
	}
}

// ShortDate renders an optional date as "Jun 4, 2025", or a dim dash.
func ShortDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("Jan 2, 2006")
}

// DateRange renders a start/end pair.
func DateRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%s → %s", ShortDate(start), ShortDate(end))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Hours renders a float without trailing zeros and with an "h" suffix.
func Hours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".") + "h"
}
