package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

type dashboardService struct {
	env      Env
	observer UseCaseObserver
}

func NewDashboardService(env Env, observers ...UseCaseObserver) DashboardService {
	if env.Cache == nil {
		env.Cache = NewManagerCache(DefaultCacheTTL, env.Clock)
	}
	return &dashboardService{env: env, observer: useCaseObserverOrNoop(observers)}
}

func (s *dashboardService) Invalidate() {
	s.env.Cache.Invalidate()
}

func (s *dashboardService) GetProjects(ctx context.Context, force bool) []*domain.Project {
	projects, err := s.loadProjects(ctx, force)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading projects failed", "manager", s.env.Manager.ID, "error", err)
		return []*domain.Project{}
	}
	return projects
}

func (s *dashboardService) GetTeamMembers(ctx context.Context, force bool) []domain.TeamMember {
	members, err := s.loadTeam(ctx, force)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading team members failed", "manager", s.env.Manager.ID, "error", err)
		return []domain.TeamMember{}
	}
	return members
}

func (s *dashboardService) loadProjects(ctx context.Context, force bool) ([]*domain.Project, error) {
	if !force {
		if ps, ok := s.env.Cache.Projects(); ok {
			return ps, nil
		}
	}
	ps, err := s.env.Repos.Projects.List(ctx, repository.ProjectFilter{
		CreatedBy: s.env.Manager.ID,
		Statuses:  domain.NonTerminalStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	s.env.Cache.SetProjects(ps)
	return ps, nil
}

func (s *dashboardService) loadTeam(ctx context.Context, force bool) ([]domain.TeamMember, error) {
	if !force {
		if ms, ok := s.env.Cache.TeamMembers(); ok {
			return ms, nil
		}
	}
	projects, err := s.loadProjects(ctx, force)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		s.env.Cache.SetTeamMembers(nil)
		return []domain.TeamMember{}, nil
	}
	assignments, err := s.env.Repos.Assignments.List(ctx, repository.AssignmentFilter{
		ProjectIDs:  projectIDs(projects),
		Status:      domain.AssignmentAssigned,
		WithMembers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	members := uniqueMembers(assignments)
	s.env.Cache.SetTeamMembers(members)
	return members, nil
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (stats domain.DashboardStats) {
	var err error
	defer observe(ctx, s.observer, "dashboard-stats", nowUTC(), map[string]any{"manager": s.env.Manager.ID}, &err)

	stats, err = s.dashboardStats(ctx)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading dashboard stats failed", "manager", s.env.Manager.ID, "error", err)
		return domain.DashboardStats{}
	}
	return stats
}

func (s *dashboardService) dashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	projects, err := s.loadProjects(ctx, false)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	if len(projects) == 0 {
		return domain.DashboardStats{}, nil
	}
	ids := projectIDs(projects)
	monday := grid.MondayOf(s.env.now())
	friday := grid.WeekEnd(monday)

	var (
		assignments []*domain.Assignment
		logs        []*domain.WorkLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = s.env.Repos.Assignments.List(gctx, repository.AssignmentFilter{
			ProjectIDs: ids,
			Status:     domain.AssignmentAssigned,
		})
		if err != nil {
			return fmt.Errorf("listing assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		logs, err = s.env.Repos.Worklogs.List(gctx, repository.WorklogFilter{
			ProjectIDs: ids,
			From:       &monday,
			To:         &friday,
		})
		if err != nil {
			return fmt.Errorf("listing worklogs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}

	hours := assignedHoursByUser(assignments)
	var assigned float64
	for _, h := range hours {
		assigned += h
	}
	var logged float64
	for _, l := range logs {
		logged += l.Hours
	}
	return domain.DashboardStats{
		ActiveProjects:  len(projects),
		TeamMembers:     len(hours),
		TotalHours:      domain.RoundHalfUp(logged),
		TeamUtilization: Utilization(assigned, len(hours)),
	}, nil
}

// Utilization is assigned hours as a percentage of the team's full weekly
// capacity. It is not capped, so over-allocation shows above 100.
func Utilization(assignedHours float64, members int) int {
	if members == 0 {
		return 0
	}
	return domain.RoundHalfUp(assignedHours / float64(members*domain.MaxWeeklyHours) * 100)
}

func (s *dashboardService) GetWeeklyAllocation(ctx context.Context, weekStart time.Time) []domain.WeeklyAllocationRow {
	var err error
	monday := grid.MondayOf(weekStart)
	defer observe(ctx, s.observer, "weekly-allocation", nowUTC(), map[string]any{"week": grid.FormatDate(monday)}, &err)

	rows, err := s.weeklyAllocation(ctx, monday)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading weekly allocation failed", "manager", s.env.Manager.ID, "error", err)
		return []domain.WeeklyAllocationRow{}
	}
	return rows
}

func (s *dashboardService) weeklyAllocation(ctx context.Context, monday time.Time) ([]domain.WeeklyAllocationRow, error) {
	members, err := s.loadTeam(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []domain.WeeklyAllocationRow{}, nil
	}
	projects, err := s.loadProjects(ctx, false)
	if err != nil {
		return nil, err
	}
	dates := grid.WeekDates(monday)
	friday := dates[len(dates)-1]
	logs, err := s.env.Repos.Worklogs.List(ctx, repository.WorklogFilter{
		ProjectIDs: projectIDs(projects),
		From:       &monday,
		To:         &friday,
	})
	if err != nil {
		return nil, fmt.Errorf("listing worklogs: %w", err)
	}

	dayIndex := make(map[string]int, len(dates))
	for i, d := range dates {
		dayIndex[grid.FormatDate(d)] = i
	}

	rows := make([]domain.WeeklyAllocationRow, len(members))
	rowIndex := make(map[string]int, len(members))
	for i, m := range members {
		rows[i].Member = m
		for d := range rows[i].Days {
			rows[i].Days[d].Date = dates[d]
		}
		rowIndex[m.ID] = i
	}
	for _, l := range logs {
		r, ok := rowIndex[l.UserID]
		if !ok {
			continue
		}
		d, ok := dayIndex[grid.FormatDate(l.LogDate)]
		if !ok {
			continue
		}
		cell := &rows[r].Days[d]
		cell.Hours += l.Hours
		if l.WorkType != "" {
			cell.AddTag(l.WorkType)
		}
	}
	return rows, nil
}

func (s *dashboardService) GetAvailableTeamMembers(ctx context.Context) []domain.AvailableMember {
	out, err := s.availableMembers(ctx)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading available members failed", "manager", s.env.Manager.ID, "error", err)
		return []domain.AvailableMember{}
	}
	return out
}

func (s *dashboardService) availableMembers(ctx context.Context) ([]domain.AvailableMember, error) {
	members, err := s.loadTeam(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []domain.AvailableMember{}, nil
	}
	projects, err := s.loadProjects(ctx, false)
	if err != nil {
		return nil, err
	}
	assignments, err := s.env.Repos.Assignments.List(ctx, repository.AssignmentFilter{
		ProjectIDs: projectIDs(projects),
		Status:     domain.AssignmentAssigned,
	})
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	hours := assignedHoursByUser(assignments)

	out := make([]domain.AvailableMember, 0, len(members))
	for _, m := range members {
		assigned := hours[m.ID]
		available := domain.MaxWeeklyHours - assigned
		if available <= 0 {
			continue
		}
		out = append(out, domain.AvailableMember{
			TeamMember:     m,
			AssignedHours:  assigned,
			AvailableHours: available,
			Utilization:    domain.RoundHalfUp(assigned / domain.MaxWeeklyHours * 100),
			Level:          domain.LevelForAssigned(assigned),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvailableHours != out[j].AvailableHours {
			return out[i].AvailableHours > out[j].AvailableHours
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
