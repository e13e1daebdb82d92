package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

const defaultAllocationDescription = "Assigned work"

type allocationService struct {
	env      Env
	observer UseCaseObserver
}

func NewAllocationService(env Env, observers ...UseCaseObserver) AllocationService {
	return &allocationService{env: env, observer: useCaseObserverOrNoop(observers)}
}

func (s *allocationService) ListAssignable(ctx context.Context, projectID string) []domain.AssignableMember {
	members, err := s.assignable(ctx, projectID)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading assignable members failed", "project", projectID, "error", err)
		return []domain.AssignableMember{}
	}
	return members
}

// assignable lists the project's assigned members with their remaining daily
// capacity: available members first, then fully allocated ones, by name.
func (s *allocationService) assignable(ctx context.Context, projectID string) ([]domain.AssignableMember, error) {
	if domain.IsPendingID(projectID) {
		return []domain.AssignableMember{}, nil
	}
	if _, err := ownedProject(ctx, s.env.Repos.Projects, s.env.Manager, projectID); err != nil {
		return nil, err
	}
	assignments, err := s.env.Repos.Assignments.List(ctx, repository.AssignmentFilter{
		ProjectIDs:  []string{projectID},
		Status:      domain.AssignmentAssigned,
		WithMembers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	allocations, err := s.env.Repos.Allocations.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	allocated := make(map[string]float64)
	for _, a := range allocations {
		allocated[a.UserID] += a.HoursPerDay
	}

	seen := make(map[string]bool, len(assignments))
	out := make([]domain.AssignableMember, 0, len(assignments))
	for _, a := range assignments {
		if a.User == nil || seen[a.UserID] {
			continue
		}
		seen[a.UserID] = true

		weekly := a.WeeklyHours()
		typ := a.Type()
		maxPerDay := domain.MaxHoursPerDay(typ, weekly)
		perDay := allocated[a.UserID]
		m := domain.AssignableMember{
			TeamMember:           memberFromAssignment(a),
			WeeklyHours:          weekly,
			AssignmentType:       typ,
			MaxHoursPerDay:       maxPerDay,
			AllocatedHoursPerDay: perDay,
			AvailableHoursPerDay: max(maxPerDay-perDay, 0),
			AllocationPercent:    a.AllocationPercent,
		}
		if m.AllocationPercent == 0 {
			m.AllocationPercent = 100
		}
		if a.Detail != nil {
			m.Skills = a.Detail.Skills
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].AvailableHoursPerDay > 0, out[j].AvailableHoursPerDay > 0
		if ai != aj {
			return ai
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *allocationService) Allocate(ctx context.Context, req AllocateRequest) (status domain.ProjectStatus, err error) {
	fields := map[string]any{
		"project":       req.ProjectID,
		"employee":      req.EmployeeID,
		"hours_per_day": req.HoursPerDay,
	}
	defer observe(ctx, s.observer, "allocate-hours", nowUTC(), fields, &err)

	if domain.IsPendingID(req.ProjectID) {
		return "", invalidAs(ErrPendingProject, "Cannot allocate hours to pending projects. Wait for Resource Manager approval.")
	}
	project, err := ownedProject(ctx, s.env.Repos.Projects, s.env.Manager, req.ProjectID)
	if err != nil {
		return "", err
	}
	if project.Status.IsTerminal() {
		return "", invalidAs(ErrProjectClosed, fmt.Sprintf("Project is %s and cannot receive allocations.", strings.ToLower(project.Status.Label())))
	}
	if req.EmployeeID == "" {
		return "", invalid("Please select an employee")
	}
	if req.StartDate == nil || req.EndDate == nil {
		return "", invalid("Please select start and end dates")
	}

	members, err := s.assignable(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}
	var member *domain.AssignableMember
	for i := range members {
		if members[i].ID == req.EmployeeID {
			member = &members[i]
			break
		}
	}
	if member == nil {
		return "", invalid("Invalid employee selection")
	}
	if req.HoursPerDay <= 0 || req.HoursPerDay > member.AvailableHoursPerDay {
		return "", invalid(fmt.Sprintf("Hours per day must be between 0 and %s (employee's available hours)",
			strconv.FormatFloat(member.AvailableHoursPerDay, 'f', -1, 64)))
	}
	if req.EndDate.Before(*req.StartDate) {
		return "", invalid("End date must be after start date")
	}

	alloc := &domain.Allocation{
		ID:          uuid.New().String(),
		UserID:      req.EmployeeID,
		ProjectID:   req.ProjectID,
		HoursPerDay: req.HoursPerDay,
		StartDate:   *req.StartDate,
		EndDate:     *req.EndDate,
		Description: domain.CoalesceStr(strings.TrimSpace(req.Description), defaultAllocationDescription),
		CreatedBy:   s.env.Manager.ID,
		CreatedAt:   s.env.now().UTC(),
	}
	status = project.Status
	err = s.env.Repos.UoW.WithinTx(ctx, func(ctx context.Context, tx repository.TxRepos) error {
		if err := tx.Allocations.Create(ctx, alloc); err != nil {
			return fmt.Errorf("creating allocation: %w", err)
		}
		if project.Status.IsActive() {
			return nil
		}
		stored, err := tx.Projects.UpdateStatus(ctx, project.ID, domain.ProjectActive, nil)
		if err != nil {
			return fmt.Errorf("activating project %s: %w", project.ID, err)
		}
		status = stored
		return nil
	})
	if err != nil {
		return "", err
	}
	s.env.invalidate()
	return status, nil
}

func (s *allocationService) Notice(ctx context.Context, projectID string) domain.AssignmentNotice {
	if domain.IsPendingID(projectID) {
		return domain.AssignmentNotice{State: domain.NoticePending}
	}
	if _, err := ownedProject(ctx, s.env.Repos.Projects, s.env.Manager, projectID); err != nil {
		s.env.logger().ErrorContext(ctx, "loading project failed", "project", projectID, "error", err)
		return domain.NewAssignmentNotice(0, 0)
	}
	reqs, err := s.env.Repos.Requirements.ListByProject(ctx, projectID)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading project requirements failed", "project", projectID, "error", err)
		return domain.NewAssignmentNotice(0, 0)
	}
	var required int
	for _, r := range reqs {
		required += r.QuantityNeeded
	}
	members := s.ListAssignable(ctx, projectID)
	return domain.NewAssignmentNotice(len(members), required)
}
