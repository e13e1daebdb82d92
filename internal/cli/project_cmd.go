package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

// resolveProjectID matches input against the manager's projects by exact id,
// then unique id prefix, then exact name.
func resolveProjectID(ctx context.Context, svc *service.Services, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}
	if domain.IsPendingID(input) {
		return input, nil
	}

	var cards []domain.ProjectCard
	for _, c := range svc.Projects.List(ctx) {
		if !c.IsPending {
			cards = append(cards, c)
		}
	}

	for _, c := range cards {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range cards {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}

	for _, c := range cards {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}
	// Unknown ids go through unchanged; the service rejects them.
	return input, nil
}

// resolveMemberID matches input against the project's team by id prefix or
// exact name.
func resolveMemberID(members []domain.ProjectMember, input string) (string, error) {
	var matches []string
	for _, m := range members {
		if m.ID == input {
			return m.ID, nil
		}
		if strings.HasPrefix(m.ID, input) || strings.EqualFold(m.Name, input) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("member %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Track and close your projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectHistoryCmd(app),
		newProjectTeamCmd(app),
		newProjectStatsCmd(app),
		newProjectAssignableCmd(app),
		newProjectCloseCmd(app, "complete", "Mark a project completed and release its team"),
		newProjectCloseCmd(app, "drop", "Cancel a project and release its team"),
		newProjectRemoveMemberCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var search, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, pending requests first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			cards := svc.Projects.Filter(svc.Projects.List(cmd.Context()), search, status)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(cards))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by name or description")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, active, completed, ...)")
	return cmd
}

func newProjectHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List completed and cancelled projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectHistory(svc.Projects.History(cmd.Context())))
			return nil
		},
	}
}

func newProjectTeamCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "team ID",
		Short: "List the members assigned to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveProjectID(cmd.Context(), svc, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectTeam(svc.Projects.Team(cmd.Context(), id)))
			return nil
		},
	}
}

func newProjectStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show project tracking totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTrackingStats(svc.Projects.TrackingStats(cmd.Context())))
			return nil
		},
	}
}

func newProjectAssignableCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assignable ID",
		Short: "Show staffing and daily capacity for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveProjectID(cmd.Context(), svc, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if notice := formatter.FormatNotice(svc.Allocation.Notice(cmd.Context(), id)); notice != "" {
				fmt.Fprintln(out, notice)
			}
			fmt.Fprintln(out, formatter.FormatAssignable(svc.Allocation.ListAssignable(cmd.Context(), id)))
			return nil
		},
	}
}

func newProjectCloseCmd(app *App, verb, short string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   verb + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveProjectID(cmd.Context(), svc, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				title := fmt.Sprintf("%s project %s? Its team will be released.", strings.ToUpper(verb[:1])+verb[1:], id)
				if err := wizardConfirm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Releasing team…")
			}
			if verb == "complete" {
				err = svc.Projects.Complete(cmd.Context(), id)
			} else {
				err = svc.Projects.Drop(cmd.Context(), id)
			}
			stop()
			if err != nil {
				return err
			}

			state := "completed"
			if verb == "drop" {
				state = "cancelled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Project %s %s\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(id), state)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newProjectRemoveMemberCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member ID USER",
		Short: "Remove a member from a project and restore their hours",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(cmd.Context(), svc, args[0])
			if err != nil {
				return err
			}
			userID, err := resolveMemberID(svc.Projects.Team(cmd.Context(), projectID), args[1])
			if err != nil {
				return err
			}
			if err := svc.Projects.RemoveMember(cmd.Context(), projectID, userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s from %s\n",
				formatter.StyleGreen.Render("✔"), formatter.TruncID(userID), formatter.TruncID(projectID))
			return nil
		},
	}
}
