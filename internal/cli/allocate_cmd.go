package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

type allocateInput struct {
	project, employee, hours, start, end, desc string
}

func (in allocateInput) complete() bool {
	return in.project != "" && in.employee != "" && in.hours != ""
}

func newAllocateCmd(app *App) *cobra.Command {
	var in allocateInput

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate daily hours of a project member",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.services(ctx)
			if err != nil {
				return err
			}

			if !in.complete() {
				if !app.interactive() {
					return fmt.Errorf("--project, --employee and --hours are required")
				}
				if err := runAllocateWizard(ctx, cmd, svc, &in); err != nil {
					return err
				}
			}

			req, err := buildAllocateRequest(ctx, svc, in)
			if err != nil {
				return err
			}
			status, err := svc.Allocation.Allocate(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Allocated %s/day. Project is %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Hours(req.HoursPerDay), formatter.StatusPill(status))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.project, "project", "", "Project ID, ID prefix or name")
	cmd.Flags().StringVar(&in.employee, "employee", "", "Member ID, ID prefix or name")
	cmd.Flags().StringVar(&in.hours, "hours", "", "Hours per day")
	cmd.Flags().StringVar(&in.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.desc, "desc", "", "Description")
	return cmd
}

func buildAllocateRequest(ctx context.Context, svc *service.Services, in allocateInput) (service.AllocateRequest, error) {
	projectID, err := resolveProjectID(ctx, svc, in.project)
	if err != nil {
		return service.AllocateRequest{}, err
	}
	userID, err := resolveMemberID(svc.Projects.Team(ctx, projectID), in.employee)
	if err != nil {
		return service.AllocateRequest{}, err
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(in.hours), 64)
	if err != nil {
		return service.AllocateRequest{}, fmt.Errorf("invalid hours %q", in.hours)
	}
	start, err := parseOptionalDate("start date", in.start)
	if err != nil {
		return service.AllocateRequest{}, err
	}
	end, err := parseOptionalDate("end date", in.end)
	if err != nil {
		return service.AllocateRequest{}, err
	}
	return service.AllocateRequest{
		ProjectID:   projectID,
		EmployeeID:  userID,
		HoursPerDay: hours,
		StartDate:   start,
		EndDate:     end,
		Description: in.desc,
	}, nil
}

// runAllocateWizard asks for the missing fields: project first, then a member
// of that project with their remaining daily capacity.
func runAllocateWizard(ctx context.Context, cmd *cobra.Command, svc *service.Services, in *allocateInput) error {
	if in.project == "" {
		var options []huh.Option[string]
		for _, c := range svc.Projects.List(ctx) {
			if c.IsPending || c.Status.IsTerminal() {
				continue
			}
			options = append(options, huh.NewOption(c.Name, c.ID))
		}
		if len(options) == 0 {
			return fmt.Errorf("no open projects to allocate on")
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Which project?").Options(options...).Value(&in.project),
		)).WithTheme(rosterdeskHuhTheme()).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return err
		}
	}

	projectID, err := resolveProjectID(ctx, svc, in.project)
	if err != nil {
		return err
	}
	if notice := formatter.FormatNotice(svc.Allocation.Notice(ctx, projectID)); notice != "" {
		fmt.Fprintln(cmd.OutOrStdout(), notice)
	}

	var fields []huh.Field
	if in.employee == "" {
		members := svc.Allocation.ListAssignable(ctx, projectID)
		if len(members) == 0 {
			return fmt.Errorf("no members are assigned to this project yet")
		}
		options := make([]huh.Option[string], 0, len(members))
		for _, m := range members {
			options = append(options, huh.NewOption(memberOptionLabel(m), m.ID))
		}
		fields = append(fields, huh.NewSelect[string]().Title("Who?").Options(options...).Value(&in.employee))
	}
	if in.hours == "" {
		fields = append(fields, hoursInput("Hours per day", "", &in.hours))
	}
	fields = append(fields,
		dateInput("Start date (blank for none)", "", &in.start),
		dateInput("End date (blank for none)", "", &in.end),
		huh.NewInput().Title("Description").Value(&in.desc),
	)
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(rosterdeskHuhTheme()).WithShowHelp(false).Run()
}

func memberOptionLabel(m domain.AssignableMember) string {
	return fmt.Sprintf("%s (%s, %s free of %s/day)", m.Name, m.AssignmentType,
		formatter.Hours(m.AvailableHoursPerDay), formatter.Hours(m.MaxHoursPerDay))
}
