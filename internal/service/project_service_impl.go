package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

type projectService struct {
	env      Env
	observer UseCaseObserver
}

func NewProjectService(env Env, observers ...UseCaseObserver) ProjectService {
	return &projectService{env: env, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) List(ctx context.Context) []domain.ProjectCard {
	cards, err := s.list(ctx)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading project cards failed", "manager", s.env.Manager.ID, "error", err)
		return []domain.ProjectCard{}
	}
	return cards
}

// list returns the manager's pending request groups followed by approved,
// still open projects, newest first.
func (s *projectService) list(ctx context.Context) ([]domain.ProjectCard, error) {
	projects, err := s.env.Repos.Projects.List(ctx, repository.ProjectFilter{
		CreatedBy:       s.env.Manager.ID,
		ExcludeStatuses: domain.TerminalStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	requests, err := s.env.Repos.Requests.List(ctx, repository.RequestFilter{
		RequestedBy: s.env.Manager.ID,
		Status:      domain.RequestPending,
	})
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}

	cards := PendingCards(requests)

	if len(projects) == 0 {
		return cards, nil
	}
	ids := projectIDs(projects)
	assignments, err := s.env.Repos.Assignments.List(ctx, repository.AssignmentFilter{
		ProjectIDs: ids,
		Status:     domain.AssignmentAssigned,
	})
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	assigned := make(map[string]map[string]bool)
	for _, a := range assignments {
		if assigned[a.ProjectID] == nil {
			assigned[a.ProjectID] = make(map[string]bool)
		}
		assigned[a.ProjectID][a.UserID] = true
	}

	for _, p := range projects {
		card := domain.ProjectCard{Project: *p}
		members := assigned[p.ID]
		card.RMAssignedCount = countAssignments(assignments, p.ID)
		if len(members) > 0 {
			allocations, err := s.env.Repos.Allocations.ListByProject(ctx, p.ID)
			if err != nil {
				return nil, fmt.Errorf("listing allocations for %s: %w", p.ID, err)
			}
			allocated := make(map[string]bool)
			for _, al := range allocations {
				if members[al.UserID] {
					allocated[al.UserID] = true
				}
			}
			card.PMAllocated = len(allocated)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func countAssignments(assignments []*domain.Assignment, projectID string) int {
	var n int
	for _, a := range assignments {
		if a.ProjectID == projectID {
			n++
		}
	}
	return n
}

// PendingCards folds pending resource requests into one card per request
// group, in order of first appearance. Requests whose notes are malformed or
// lack a project name or group id are skipped.
func PendingCards(requests []*domain.ResourceRequest) []domain.ProjectCard {
	cards := []domain.ProjectCard{}
	index := make(map[string]int)
	for _, r := range requests {
		notes, err := domain.ParseRequestNotes(r.Notes)
		if err != nil || notes.ProjectName == "" || notes.RequestGroupID == "" {
			continue
		}
		i, ok := index[notes.RequestGroupID]
		if !ok {
			card := domain.ProjectCard{
				Project: domain.Project{
					ID:           domain.PendingProjectPrefix + notes.RequestGroupID,
					Name:         notes.ProjectName,
					Description:  domain.CoalesceStr(notes.ProjectDescription, "No description"),
					Status:       domain.ProjectPending,
					Priority:     domain.ParsePriority(string(notes.Priority)),
					StartDate:    parseNoteDate(notes.StartDate),
					EndDate:      parseNoteDate(notes.EndDate),
					DurationDays: notes.DurationDays,
					CreatedBy:    r.RequestedBy,
					CreatedAt:    r.CreatedAt,
				},
				IsPending: true,
			}
			cards = append(cards, card)
			i = len(cards) - 1
			index[notes.RequestGroupID] = i
		}
		cards[i].RequestCount++
		qty := notes.ResourceDetails.Quantity
		if qty <= 0 {
			qty = 1
		}
		cards[i].TotalResources += qty
	}
	return cards
}

func parseNoteDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func (s *projectService) Filter(cards []domain.ProjectCard, search, status string) []domain.ProjectCard {
	return FilterCards(cards, search, status)
}

// FilterCards keeps cards whose name or description contains search, ignoring
// case, and whose status matches. The "active" status also matches ongoing.
func FilterCards(cards []domain.ProjectCard, search, status string) []domain.ProjectCard {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.ProjectCard, 0, len(cards))
	for _, c := range cards {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			continue
		}
		if status != "" {
			want := domain.ProjectStatus(status)
			if want == domain.ProjectActive {
				if !c.Status.IsActive() {
					continue
				}
			} else if c.Status != want {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func (s *projectService) History(ctx context.Context) []*domain.Project {
	projects, err := s.env.Repos.Projects.List(ctx, repository.ProjectFilter{
		CreatedBy: s.env.Manager.ID,
		Statuses:  domain.TerminalStatuses,
	})
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading project history failed", "manager", s.env.Manager.ID, "error", err)
		return []*domain.Project{}
	}
	return projects
}

func (s *projectService) Team(ctx context.Context, projectID string) []domain.ProjectMember {
	if domain.IsPendingID(projectID) {
		return []domain.ProjectMember{}
	}
	if _, err := ownedProject(ctx, s.env.Repos.Projects, s.env.Manager, projectID); err != nil {
		s.env.logger().ErrorContext(ctx, "loading project team failed", "project", projectID, "error", err)
		return []domain.ProjectMember{}
	}
	assignments, err := s.env.Repos.Assignments.List(ctx, repository.AssignmentFilter{
		ProjectIDs:  []string{projectID},
		Status:      domain.AssignmentAssigned,
		WithMembers: true,
	})
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading project team failed", "project", projectID, "error", err)
		return []domain.ProjectMember{}
	}
	out := make([]domain.ProjectMember, 0, len(assignments))
	for _, a := range assignments {
		if a.User == nil {
			continue
		}
		out = append(out, domain.ProjectMember{
			TeamMember:     memberFromAssignment(a),
			AssignmentType: a.Type(),
		})
	}
	return out
}

func (s *projectService) TrackingStats(ctx context.Context) domain.TrackingStats {
	stats, err := s.trackingStats(ctx)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading tracking stats failed", "manager", s.env.Manager.ID, "error", err)
		return domain.TrackingStats{}
	}
	return stats
}

func (s *projectService) trackingStats(ctx context.Context) (domain.TrackingStats, error) {
	var active, completed []*domain.Project
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = s.env.Repos.Projects.List(gctx, repository.ProjectFilter{
			CreatedBy: s.env.Manager.ID,
			Statuses:  domain.NonTerminalStatuses,
		})
		if err != nil {
			return fmt.Errorf("listing active projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		completed, err = s.env.Repos.Projects.List(gctx, repository.ProjectFilter{
			CreatedBy: s.env.Manager.ID,
			Statuses:  []domain.ProjectStatus{domain.ProjectCompleted},
		})
		if err != nil {
			return fmt.Errorf("listing completed projects: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.TrackingStats{}, err
	}

	stats := domain.TrackingStats{
		ActiveProjects:    len(active),
		CompletedProjects: len(completed),
	}
	for _, p := range active {
		if p.Priority == domain.PriorityHigh {
			stats.HighPriority++
		}
	}
	if len(active) == 0 {
		return stats, nil
	}
	assignments, err := s.env.Repos.Assignments.List(ctx, repository.AssignmentFilter{
		ProjectIDs: projectIDs(active),
		Status:     domain.AssignmentAssigned,
	})
	if err != nil {
		return domain.TrackingStats{}, fmt.Errorf("listing assignments: %w", err)
	}
	stats.TotalMembers = len(assignedHoursByUser(assignments))
	return stats, nil
}

func (s *projectService) Complete(ctx context.Context, projectID string) (err error) {
	defer observe(ctx, s.observer, "complete-project", nowUTC(), map[string]any{"project": projectID}, &err)
	today := civilDate(s.env.now())
	return s.close(ctx, projectID, domain.ProjectCompleted, &today, domain.AssignmentCompleted)
}

func (s *projectService) Drop(ctx context.Context, projectID string) (err error) {
	defer observe(ctx, s.observer, "drop-project", nowUTC(), map[string]any{"project": projectID}, &err)
	return s.close(ctx, projectID, domain.ProjectCancelled, nil, domain.AssignmentRemoved)
}

// close ends a project in one unit of work: allocations are dropped, the
// project and its assignments move to their final states, and each released
// member gets the assigned hours back.
func (s *projectService) close(ctx context.Context, projectID string, status domain.ProjectStatus, endDate *time.Time, assignmentStatus domain.AssignmentStatus) error {
	if domain.IsPendingID(projectID) {
		return invalidAs(ErrPendingProject, "Pending project requests cannot be closed.")
	}
	err := s.env.Repos.UoW.WithinTx(ctx, func(ctx context.Context, tx repository.TxRepos) error {
		project, err := ownedProject(ctx, tx.Projects, s.env.Manager, projectID)
		if err != nil {
			return err
		}
		if project.Status.IsTerminal() {
			return invalidAs(ErrProjectClosed, fmt.Sprintf("Project is already %s.", strings.ToLower(project.Status.Label())))
		}
		released, err := tx.Assignments.List(ctx, repository.AssignmentFilter{
			ProjectIDs: []string{projectID},
			Status:     domain.AssignmentAssigned,
		})
		if err != nil {
			return fmt.Errorf("listing assignments: %w", err)
		}
		if err := tx.Allocations.DeleteByProject(ctx, projectID, ""); err != nil {
			return fmt.Errorf("deleting allocations: %w", err)
		}
		if _, err := tx.Projects.UpdateStatus(ctx, projectID, status, endDate); err != nil {
			return fmt.Errorf("updating project status: %w", err)
		}
		if err := tx.Assignments.SetStatus(ctx, projectID, "", domain.AssignmentAssigned, assignmentStatus); err != nil {
			return fmt.Errorf("updating assignments: %w", err)
		}
		for _, a := range released {
			if err := restoreHours(ctx, tx.Details, a.UserID, a.WeeklyHours()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.env.invalidate()
	return nil
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID string) (err error) {
	fields := map[string]any{"project": projectID, "user": userID}
	defer observe(ctx, s.observer, "remove-member", nowUTC(), fields, &err)

	if domain.IsPendingID(projectID) {
		return invalidAs(ErrPendingProject, "Pending project requests have no members.")
	}
	err = s.env.Repos.UoW.WithinTx(ctx, func(ctx context.Context, tx repository.TxRepos) error {
		if _, err := ownedProject(ctx, tx.Projects, s.env.Manager, projectID); err != nil {
			return err
		}
		assignments, err := tx.Assignments.List(ctx, repository.AssignmentFilter{
			ProjectIDs: []string{projectID},
			UserID:     userID,
		})
		if err != nil {
			return fmt.Errorf("listing assignments: %w", err)
		}
		if len(assignments) == 0 {
			return fmt.Errorf("member %s on project %s: %w", userID, projectID, repository.ErrNotFound)
		}
		var hours float64
		for _, a := range assignments {
			hours += a.AssignedHours
		}
		if hours <= 0 {
			hours = domain.MaxWeeklyHours
		}
		if err := tx.Allocations.DeleteByProject(ctx, projectID, userID); err != nil {
			return fmt.Errorf("deleting allocations: %w", err)
		}
		if err := tx.Assignments.SetStatus(ctx, projectID, userID, "", domain.AssignmentRemoved); err != nil {
			return fmt.Errorf("updating assignment: %w", err)
		}
		return restoreHours(ctx, tx.Details, userID, hours)
	})
	if err != nil {
		return err
	}
	s.env.invalidate()
	return nil
}

// restoreHours gives released hours back to a member. Members without a
// detail row have nothing to restore.
func restoreHours(ctx context.Context, details repository.UserDetailRepo, userID string, hours float64) error {
	if _, err := details.RestoreHours(ctx, userID, hours); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("restoring hours for %s: %w", userID, err)
	}
	return nil
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
