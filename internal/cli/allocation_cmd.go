package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/grid"
)

func newAllocationCmd(app *App) *cobra.Command {
	var week string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "allocation",
		Short: "Show the weekly hours grid for your team",
		RunE: func(cmd *cobra.Command, args []string) error {
			monday := grid.MondayOf(app.now())
			if week != "" {
				parsed, err := grid.ParseWeekStart(week)
				if err != nil {
					return err
				}
				monday = parsed
			}

			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}

			if interactive && app.interactive() {
				b := newWeekBrowser(cmd.Context(), svc.Dashboard, grid.WeekOptions(app.now()), grid.FormatDate(monday))
				_, err := tea.NewProgram(b,
					tea.WithContext(cmd.Context()),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				).Run()
				return err
			}

			rows := svc.Dashboard.GetWeeklyAllocation(cmd.Context(), monday)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeeklyAllocation(monday, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week start (a Monday, YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse weeks with the arrow keys")
	return cmd
}
