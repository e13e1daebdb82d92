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

var skillLevels = []string{"Junior", "Mid-Level", "Senior", "Lead"}

// parseAssignmentType accepts the canonical names case-insensitively.
func parseAssignmentType(s string) (domain.AssignmentType, error) {
	for _, t := range []domain.AssignmentType{domain.AssignmentFullTime, domain.AssignmentPartTime, domain.AssignmentContract} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown assignment type %q (use Full-Time, Part-Time or Contract)", s)
}

func splitSkills(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseResource reads "position:qty:level:type:skill1;skill2".
func parseResource(raw string) (service.ResourceRequirement, error) {
	parts := strings.SplitN(raw, ":", 5)
	if len(parts) != 5 {
		return service.ResourceRequirement{}, fmt.Errorf("invalid resource %q: want position:qty:level:type:skills", raw)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return service.ResourceRequirement{}, fmt.Errorf("invalid resource %q: quantity must be a number", raw)
	}
	typ, err := parseAssignmentType(parts[3])
	if err != nil {
		return service.ResourceRequirement{}, err
	}
	return service.ResourceRequirement{
		Position:       strings.TrimSpace(parts[0]),
		Quantity:       qty,
		SkillLevel:     strings.TrimSpace(parts[2]),
		AssignmentType: typ,
		Skills:         splitSkills(parts[4]),
	}, nil
}

type requestInput struct {
	name, description, priority, start, end string
	teamSize, duration                      int
	resources                               []string
}

func newRequestCmd(app *App) *cobra.Command {
	var in requestInput

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request a new project from the Resource Manager",
		Example: `  rosterdesk request --name Atlas --start 2025-07-01 --end 2025-07-31 \
    --resource "Backend Developer:2:Senior:Full-Time:go;postgres"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.services(ctx)
			if err != nil {
				return err
			}

			var req service.ProjectRequest
			if in.name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				req, err = runRequestWizard()
			} else {
				req, err = buildProjectRequest(in)
			}
			if err != nil {
				return err
			}

			res, err := submitWithSpinner(ctx, app, cmd, svc, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSubmitted(res.GroupID, res.RequestIDs, res.Message))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.name, "name", "", "Project name")
	cmd.Flags().StringVar(&in.description, "description", "", "Project description")
	cmd.Flags().StringVar(&in.priority, "priority", "medium", "low, medium, high or critical")
	cmd.Flags().StringVar(&in.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&in.teamSize, "team-size", 0, "Team size (defaults to the total quantity)")
	cmd.Flags().IntVar(&in.duration, "duration", 0, "Duration in days (defaults to the date span)")
	cmd.Flags().StringArrayVar(&in.resources, "resource", nil, "Resource as position:qty:level:type:skill1;skill2 (repeatable)")
	return cmd
}

func submitWithSpinner(ctx context.Context, app *App, cmd *cobra.Command, svc *service.Services, req service.ProjectRequest) (service.SubmitResult, error) {
	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Submitting request…")
		defer stop()
	}
	return svc.Requests.Submit(ctx, req)
}

func buildProjectRequest(in requestInput) (service.ProjectRequest, error) {
	start, err := parseOptionalDate("start date", in.start)
	if err != nil {
		return service.ProjectRequest{}, err
	}
	end, err := parseOptionalDate("end date", in.end)
	if err != nil {
		return service.ProjectRequest{}, err
	}
	req := service.ProjectRequest{
		Name:         in.name,
		Description:  in.description,
		TeamSize:     in.teamSize,
		DurationDays: in.duration,
		StartDate:    start,
		EndDate:      end,
		Priority:     domain.ParsePriority(in.priority),
	}
	for _, raw := range in.resources {
		r, err := parseResource(raw)
		if err != nil {
			return service.ProjectRequest{}, err
		}
		req.Resources = append(req.Resources, r)
	}
	if req.TeamSize == 0 {
		req.TeamSize = totalQuantity(req.Resources)
	}
	return req, nil
}

func totalQuantity(resources []service.ResourceRequirement) int {
	n := 0
	for _, r := range resources {
		n += r.Quantity
	}
	return n
}

// runRequestWizard collects the project details, then one resource line at
// a time until the manager stops adding.
func runRequestWizard() (service.ProjectRequest, error) {
	in := requestInput{priority: string(domain.PriorityMedium)}
	form := huh.NewForm(
		huh.NewGroup(
			textInput("Project name", "project name", &in.name),
			huh.NewText().Title("Description").Value(&in.description),
			huh.NewSelect[string]().Title("Priority").Options(
				huh.NewOption("Low", string(domain.PriorityLow)),
				huh.NewOption("Medium", string(domain.PriorityMedium)),
				huh.NewOption("High", string(domain.PriorityHigh)),
				huh.NewOption("Critical", string(domain.PriorityCritical)),
			).Value(&in.priority),
			dateInput("Start date", "", &in.start).Validate(validateRequiredDate),
			dateInput("End date", "", &in.end).Validate(validateRequiredDate),
		),
	).WithTheme(rosterdeskHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return service.ProjectRequest{}, err
	}

	req, err := buildProjectRequest(in)
	if err != nil {
		return service.ProjectRequest{}, err
	}
	for more := true; more; {
		r, err := resourceWizard(len(req.Resources) + 1)
		if err != nil {
			return service.ProjectRequest{}, err
		}
		req.Resources = append(req.Resources, r)
		if err := wizardConfirm("Add another resource?", &more).Run(); err != nil {
			return service.ProjectRequest{}, err
		}
	}
	req.TeamSize = totalQuantity(req.Resources)
	return req, nil
}

func validateRequiredDate(s string) error {
	if s == "" {
		return fmt.Errorf("date is required")
	}
	return validateOptionalDate(s)
}

func resourceWizard(n int) (service.ResourceRequirement, error) {
	var position, qty, skills, justification string
	level := skillLevels[1]
	typ := string(domain.AssignmentFullTime)

	levelOptions := make([]huh.Option[string], 0, len(skillLevels))
	for _, l := range skillLevels {
		levelOptions = append(levelOptions, huh.NewOption(l, l))
	}
	form := huh.NewForm(
		huh.NewGroup(
			textInput(fmt.Sprintf("Resource %d: position", n), "position", &position),
			huh.NewInput().Title("Quantity").Placeholder("1").Value(&qty).Validate(validatePositiveInt),
			huh.NewSelect[string]().Title("Experience level").Options(levelOptions...).Value(&level),
			huh.NewSelect[string]().Title("Assignment type").Options(
				huh.NewOption("Full-Time", string(domain.AssignmentFullTime)),
				huh.NewOption("Part-Time", string(domain.AssignmentPartTime)),
				huh.NewOption("Contract", string(domain.AssignmentContract)),
			).Value(&typ),
			textInput("Skills (comma separated)", "skills", &skills),
			huh.NewInput().Title("Justification").Value(&justification),
		),
	).WithTheme(rosterdeskHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return service.ResourceRequirement{}, err
	}

	quantity := 1
	if qty != "" {
		quantity, _ = strconv.Atoi(qty)
	}
	return service.ResourceRequirement{
		Position:       strings.TrimSpace(position),
		Quantity:       quantity,
		SkillLevel:     level,
		AssignmentType: domain.AssignmentType(typ),
		Skills:         splitSkills(skills),
		Justification:  strings.TrimSpace(justification),
	}, nil
}
