package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
)

func newDashboardCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline stats and your team",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			if force {
				svc.Dashboard.Invalidate()
			}

			var stats domain.DashboardStats
			var members []domain.TeamMember
			var g errgroup.Group
			g.Go(func() error {
				stats = svc.Dashboard.GetDashboardStats(cmd.Context())
				return nil
			})
			g.Go(func() error {
				members = svc.Dashboard.GetTeamMembers(cmd.Context(), false)
				return nil
			})
			_ = g.Wait()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(stats, members))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Bypass the cache")
	return cmd
}

func newWeeksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "List the weeks the allocation grid can show",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeeks(grid.WeekOptions(app.now())))
			return nil
		},
	}
}

func newAvailableCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List team members with spare weekly hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAvailable(svc.Dashboard.GetAvailableTeamMembers(cmd.Context())))
			return nil
		},
	}
}
