package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

const (
	maxEntryHours = 24
	// holidayCeiling is the day total above which work logged on a holiday
	// needs explicit confirmation.
	holidayCeiling = 16
)

type entryService struct {
	env      Env
	observer UseCaseObserver
}

func NewEntryService(env Env, observers ...UseCaseObserver) EntryService {
	return &entryService{env: env, observer: useCaseObserverOrNoop(observers)}
}

func (s *entryService) List(ctx context.Context, userID string, date time.Time) []*domain.WorkLog {
	logs, err := s.dayEntries(ctx, userID, date)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading day entries failed", "user", userID, "date", grid.FormatDate(date), "error", err)
		return []*domain.WorkLog{}
	}
	return logs
}

func (s *entryService) dayEntries(ctx context.Context, userID string, date time.Time) ([]*domain.WorkLog, error) {
	logs, err := s.env.Repos.Worklogs.List(ctx, repository.WorklogFilter{
		UserID: userID,
		From:   &date,
		To:     &date,
	})
	if err != nil {
		return nil, fmt.Errorf("listing entries for %s: %w", grid.FormatDate(date), err)
	}
	return logs, nil
}

func (s *entryService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-entry", nowUTC(), map[string]any{"entry": id}, &err)

	entry, err := s.env.Repos.Worklogs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("loading entry %s: %w", id, err)
	}
	if _, err := ownedProject(ctx, s.env.Repos.Projects, s.env.Manager, entry.ProjectID); err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}
	if err := s.env.Repos.Worklogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting entry %s: %w", id, err)
	}
	s.env.invalidate()
	return nil
}

func (s *entryService) Add(ctx context.Context, req EntryRequest) (_ *domain.WorkLog, err error) {
	fields := map[string]any{
		"user":      req.UserID,
		"date":      grid.FormatDate(req.Date),
		"work_type": string(req.Type),
	}
	defer observe(ctx, s.observer, "add-entry", nowUTC(), fields, &err)

	if req.UserID == "" {
		return nil, invalid("Please select an employee.")
	}
	if req.Type == "" {
		return nil, invalid("Please select an action.")
	}
	if !req.Type.Valid() {
		return nil, invalid(fmt.Sprintf("Unknown entry type %q.", req.Type))
	}

	existing, err := s.dayEntries(ctx, req.UserID, req.Date)
	if err != nil {
		return nil, err
	}
	var dayTotal float64
	var holiday bool
	for _, e := range existing {
		if e.WorkType.BlocksDay() {
			return nil, invalidAs(ErrDayBlocked,
				fmt.Sprintf("Cannot add entries. This day is marked as %s.", domain.CapitalizeWord(string(e.WorkType))))
		}
		if req.Type.SingleEntry() && e.WorkType == req.Type {
			return nil, invalidAs(ErrDuplicateEntry,
				fmt.Sprintf("This day already has a %s entry.", domain.CapitalizeWord(string(req.Type))))
		}
		dayTotal += e.Hours
		holiday = holiday || e.WorkType == domain.WorkHoliday
	}

	entry := &domain.WorkLog{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		LogDate:   req.Date,
		WorkType:  req.Type,
		Status:    domain.EntryInProgress,
		CreatedAt: s.env.now().UTC(),
	}
	task := strings.TrimSpace(req.Task)
	reason := strings.TrimSpace(req.Reason)

	switch req.Type {
	case domain.WorkRegular, domain.WorkFromHome:
		if req.ProjectID == "" {
			return nil, invalid("Please select a project.")
		}
		if req.Hours <= 0 || req.Hours > maxEntryHours {
			return nil, invalid("Hours must be between 1 and 24.")
		}
		if _, err := ownedProject(ctx, s.env.Repos.Projects, s.env.Manager, req.ProjectID); err != nil {
			return nil, err
		}
		if total := dayTotal + req.Hours; holiday && total > holidayCeiling && !req.Confirm {
			return nil, invalidAs(ErrConfirmationRequired,
				fmt.Sprintf("Total hours will be %s (including 8h holiday). Continue?", grid.FormatHours(total)))
		}
		entry.ProjectID = req.ProjectID
		entry.Hours = req.Hours
		if req.Type == domain.WorkFromHome {
			entry.Description = "[WFH] " + domain.CoalesceStr(task, "Work from home")
		} else {
			entry.Description = domain.CoalesceStr(task, "Work assigned")
		}
	default:
		options, err := s.employeeProjects(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if len(options) == 0 {
			return nil, invalid("Employee must be assigned to at least one project.")
		}
		if req.Type == domain.WorkOther && reason == "" {
			return nil, invalid("Please provide a reason.")
		}
		if req.Hours < 0 || req.Hours > maxEntryHours {
			return nil, invalid("Hours must be 0–24.")
		}
		entry.ProjectID = options[0].ID
		switch req.Type {
		case domain.WorkAbsent:
			entry.Hours = 0
		case domain.WorkOther, domain.WorkTraining:
			entry.Hours = req.Hours
		default:
			entry.Hours = domain.StandardDayHours
		}
		entry.Description = domain.CoalesceStr(reason, domain.CapitalizeWord(string(req.Type)))
		if req.Type == domain.WorkAbsent {
			entry.Status = domain.EntryAbsent
		} else {
			entry.Status = domain.EntryLeave
		}
	}

	if err := s.env.Repos.Worklogs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}
	s.env.invalidate()
	return entry, nil
}

// employeeProjects lists the employee's assigned projects owned by this
// manager, in assignment order.
func (s *entryService) employeeProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	assignments, err := s.env.Repos.Assignments.List(ctx, repository.AssignmentFilter{
		UserID: userID,
		Status: domain.AssignmentAssigned,
	})
	if err != nil {
		return nil, fmt.Errorf("listing assignments for %s: %w", userID, err)
	}
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ProjectID)
	}
	projects, err := s.env.Repos.Projects.List(ctx, repository.ProjectFilter{
		IDs:       ids,
		CreatedBy: s.env.Manager.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects for %s: %w", userID, err)
	}
	byID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	out := make([]*domain.Project, 0, len(projects))
	seen := make(map[string]bool, len(projects))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, p)
	}
	return out, nil
}

func (s *entryService) ProjectOptions(ctx context.Context, userID string, date time.Time) []ProjectOption {
	opts, err := s.projectOptions(ctx, userID, date)
	if err != nil {
		s.env.logger().ErrorContext(ctx, "loading project options failed", "user", userID, "error", err)
		return []ProjectOption{}
	}
	return opts
}

func (s *entryService) projectOptions(ctx context.Context, userID string, date time.Time) ([]ProjectOption, error) {
	projects, err := s.employeeProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []ProjectOption{}, nil
	}
	logs, err := s.env.Repos.Worklogs.List(ctx, repository.WorklogFilter{
		ProjectIDs: projectIDs(projects),
		UserID:     userID,
		From:       &date,
		To:         &date,
	})
	if err != nil {
		return nil, fmt.Errorf("listing entries for %s: %w", grid.FormatDate(date), err)
	}
	totals := make(map[string]float64)
	for _, l := range logs {
		totals[l.ProjectID] += l.Hours
	}
	out := make([]ProjectOption, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectOption{ID: p.ID, Name: p.Name, LoggedHours: totals[p.ID]})
	}
	return out, nil
}
