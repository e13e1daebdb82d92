package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

// resolveTeamMember matches input against the manager's roster by id, id
// prefix or name.
func resolveTeamMember(members []domain.TeamMember, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("--user is required")
	}
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
		return "", fmt.Errorf("user %q is ambiguous (%d matches)", input, len(matches))
	}
}

// memberDayFlags registers the --user and --date pair shared by the entry
// subcommands.
func memberDayFlags(fs *pflag.FlagSet, user, date *string) {
	fs.StringVar(user, "user", "", "Member ID, ID prefix or name")
	fs.StringVar(date, "date", "", "Day (YYYY-MM-DD, default today)")
}

// entryDate parses --date, defaulting to today.
func (a *App) entryDate(s string) (time.Time, error) {
	if s == "" {
		now := a.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := parseOptionalDate("date", s)
	if err != nil {
		return time.Time{}, err
	}
	return *t, nil
}

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Log, list and delete a member's day entries",
	}
	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryDeleteCmd(app),
	)
	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var user, date, typ, project, hours, task, reason string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a work, leave, holiday or other entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.services(ctx)
			if err != nil {
				return err
			}
			userID, err := resolveTeamMember(svc.Dashboard.GetTeamMembers(ctx, false), user)
			if err != nil {
				return err
			}
			day, err := app.entryDate(date)
			if err != nil {
				return err
			}
			req := service.EntryRequest{
				UserID:  userID,
				Date:    day,
				Type:    domain.WorkType(strings.ToLower(strings.TrimSpace(typ))),
				Task:    task,
				Reason:  reason,
				Confirm: confirm,
			}
			if project != "" {
				if req.ProjectID, err = resolveProjectID(ctx, svc, project); err != nil {
					return err
				}
			}
			if hours != "" {
				if req.Hours, err = strconv.ParseFloat(hours, 64); err != nil {
					return fmt.Errorf("invalid hours %q", hours)
				}
			}

			entry, err := svc.Entries.Add(ctx, req)
			if errors.Is(err, service.ErrConfirmationRequired) && app.interactive() {
				var v *service.ValidationError
				errors.As(err, &v)
				if ferr := wizardConfirm(v.Message, &req.Confirm).Run(); ferr != nil {
					return ferr
				}
				if !req.Confirm {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				entry, err = svc.Entries.Add(ctx, req)
			}
			if errors.Is(err, service.ErrConfirmationRequired) {
				return fmt.Errorf("%w (pass --confirm to continue)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntryAdded(entry))
			return nil
		},
	}

	memberDayFlags(cmd.Flags(), &user, &date)
	cmd.Flags().StringVar(&typ, "type", string(domain.WorkRegular), "work, work_from_home, leave, sick_leave, holiday, absent, training or other")
	cmd.Flags().StringVar(&project, "project", "", "Project for work entries")
	cmd.Flags().StringVar(&hours, "hours", "", "Hours worked")
	cmd.Flags().StringVar(&task, "task", "", "Task description for work entries")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for non-work entries")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Accept a holiday day running past 16 hours")
	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var user, date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a member's entries for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.services(ctx)
			if err != nil {
				return err
			}
			userID, err := resolveTeamMember(svc.Dashboard.GetTeamMembers(ctx, false), user)
			if err != nil {
				return err
			}
			day, err := app.entryDate(date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatEntries(day, svc.Entries.List(ctx, userID, day)))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Header("Projects"))
			fmt.Fprintln(out, formatter.FormatProjectOptions(svc.Entries.ProjectOptions(ctx, userID, day)))
			return nil
		},
	}

	memberDayFlags(cmd.Flags(), &user, &date)
	return cmd
}

func newEntryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Entries.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted entry %s\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(args[0]))
			return nil
		},
	}
}
