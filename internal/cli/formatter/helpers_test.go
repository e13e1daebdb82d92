package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status domain.ProjectStatus
		want   string
	}{
		{domain.ProjectActive, "● Active"},
		{domain.ProjectOngoing, "● Active"},
		{domain.ProjectPending, "◌ Pending Approval"},
		{domain.ProjectCompleted, "✔ Completed"},
		{domain.ProjectCancelled, "✖ Cancelled"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(StatusPill(tt.status)))
		})
	}
}

func TestShortDateAndRange(t *testing.T) {
	assert.Equal(t, "--", stripANSI(ShortDate(nil)))
	assert.Equal(t, "Jun 4, 2025", ShortDate(date(2025, 6, 4)))
	assert.Equal(t, "--", stripANSI(DateRange(nil, nil)))
	assert.Equal(t, "Jun 1, 2025 → --", stripANSI(DateRange(date(2025, 6, 1), nil)))
}

func TestHours(t *testing.T) {
	assert.Equal(t, "8h", Hours(8))
	assert.Equal(t, "7.5h", Hours(7.5))
	assert.Equal(t, "1.33h", Hours(4.0/3))
	assert.Equal(t, "0h", Hours(0))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef1234567890")))
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(Table{
		Headers: []string{"NAME", "HOURS"},
		Rows: [][]string{
			{Bold("Ana"), "8h"},
			{"Bartholomew", StyleGreen.Render("12.5h")},
		},
		Right: map[int]bool{1: true},
	}.Render())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "NAME         HOURS", lines[0])
	assert.Equal(t, "Ana             8h", lines[2])
	assert.Equal(t, "Bartholomew  12.5h", lines[3])
}

func TestTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestMemberStatus_KeepsText(t *testing.T) {
	for _, s := range []string{"Available", "Busy", "On Leave", "Remote"} {
		assert.Equal(t, s, stripANSI(MemberStatus(s)))
	}
}
