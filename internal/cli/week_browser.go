package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

// weekLoadedMsg carries the grid rows for the week starting at monday.
type weekLoadedMsg struct {
	monday time.Time
	rows   []domain.WeeklyAllocationRow
}

type weekKeys struct {
	Prev    key.Binding
	Next    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k weekKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Refresh, k.Quit}
}

func (k weekKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultWeekKeys() weekKeys {
	return weekKeys{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous week")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// weekBrowser pages through the weekly allocation grid, one week at a time,
// within the selectable week range.
type weekBrowser struct {
	ctx     context.Context
	dash    service.DashboardService
	options []grid.WeekOption
	current grid.WeekOption
	rows    []domain.WeeklyAllocationRow
	loading bool
	keys    weekKeys
	help    help.Model
}

func newWeekBrowser(ctx context.Context, dash service.DashboardService, options []grid.WeekOption, start string) *weekBrowser {
	b := &weekBrowser{
		ctx:     ctx,
		dash:    dash,
		options: options,
		loading: true,
		keys:    defaultWeekKeys(),
		help:    help.New(),
	}
	for _, o := range options {
		if o.Value == start || (start == "" && o.Selected) {
			b.current = o
		}
	}
	if b.current.Value == "" && len(options) > 0 {
		b.current = options[len(options)-1]
	}
	return b
}

func (b *weekBrowser) Init() tea.Cmd {
	return b.load()
}

func (b *weekBrowser) load() tea.Cmd {
	monday := b.current.Start
	dash, ctx := b.dash, b.ctx
	return func() tea.Msg {
		return weekLoadedMsg{monday: monday, rows: dash.GetWeeklyAllocation(ctx, monday)}
	}
}

func (b *weekBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weekLoadedMsg:
		// A slower load for a week already left behind is dropped.
		if !msg.monday.Equal(b.current.Start) {
			return b, nil
		}
		b.rows = msg.rows
		b.loading = false
		return b, nil

	case tea.WindowSizeMsg:
		b.help.Width = msg.Width
		return b, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keys.Prev):
			return b.shift(-1)
		case key.Matches(msg, b.keys.Next):
			return b.shift(1)
		case key.Matches(msg, b.keys.Refresh):
			b.dash.Invalidate()
			b.loading = true
			return b, b.load()
		}
	}
	return b, nil
}

func (b *weekBrowser) shift(delta int) (tea.Model, tea.Cmd) {
	next, ok := grid.Shift(b.options, b.current.Value, delta)
	if !ok {
		return b, nil
	}
	b.current = next
	b.loading = true
	return b, b.load()
}

func (b *weekBrowser) position() int {
	for i, o := range b.options {
		if o.Value == b.current.Value {
			return i + 1
		}
	}
	return 0
}

func (b *weekBrowser) View() string {
	body := formatter.Dim("Loading " + grid.WeekLabel(b.current.Start) + "…")
	if !b.loading {
		body = formatter.FormatWeeklyAllocation(b.current.Start, b.rows)
	}
	status := formatter.Dim(fmt.Sprintf("week %d of %d", b.position(), len(b.options)))
	return body + "\n\n" + status + "  " + b.help.View(b.keys) + "\n"
}
