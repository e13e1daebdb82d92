package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
)

type projectRequestService struct {
	env      Env
	observer UseCaseObserver
}

func NewProjectRequestService(env Env, observers ...UseCaseObserver) ProjectRequestService {
	return &projectRequestService{env: env, observer: useCaseObserverOrNoop(observers)}
}

// DurationDays counts whole days between two dates, rounding partial days up.
func DurationDays(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// RequestGroupID names the group shared by every row of one submission.
func RequestGroupID(managerID string, at time.Time) string {
	return fmt.Sprintf("PM%s_%d_GROUP", managerID, at.UnixMilli())
}

func validateProjectRequest(req ProjectRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return invalid("Project name is required")
	case req.TeamSize < 1:
		return invalid("Team size must be at least 1")
	case req.DurationDays < 1:
		return invalid("Duration must be at least 1 day")
	case req.StartDate == nil:
		return invalid("Project start date is required")
	case req.EndDate == nil:
		return invalid("Project end date is required")
	case req.EndDate.Before(*req.StartDate):
		return invalid("End date must be after start date")
	case len(req.Resources) == 0:
		return invalid("At least one resource requirement is needed")
	}
	for i, r := range req.Resources {
		n := i + 1
		switch {
		case strings.TrimSpace(r.Position) == "":
			return invalid(fmt.Sprintf("Resource %d: Position is required", n))
		case r.Quantity < 1:
			return invalid(fmt.Sprintf("Resource %d: Quantity must be at least 1", n))
		case strings.TrimSpace(r.SkillLevel) == "":
			return invalid(fmt.Sprintf("Resource %d: Experience level is required", n))
		case r.AssignmentType == "":
			return invalid(fmt.Sprintf("Resource %d: Assignment type is required", n))
		case len(r.Skills) == 0:
			return invalid(fmt.Sprintf("Resource %d: Skills are required", n))
		}
	}
	return nil
}

func (s *projectRequestService) Submit(ctx context.Context, req ProjectRequest) (_ SubmitResult, err error) {
	fields := map[string]any{
		"project":   req.Name,
		"resources": len(req.Resources),
	}
	defer observe(ctx, s.observer, "submit-project-request", nowUTC(), fields, &err)

	if req.DurationDays == 0 && req.StartDate != nil && req.EndDate != nil {
		req.DurationDays = DurationDays(*req.StartDate, *req.EndDate)
	}
	if err := validateProjectRequest(req); err != nil {
		return SubmitResult{}, err
	}

	now := s.env.now()
	groupID := RequestGroupID(s.env.Manager.ID, now)
	fields["group"] = groupID
	duration := DurationDays(*req.StartDate, *req.EndDate)
	priority := domain.ParsePriority(string(req.Priority))

	rows := make([]*domain.ResourceRequest, len(req.Resources))
	for i, r := range req.Resources {
		notes, err := json.Marshal(domain.RequestNotes{
			ProjectName:        strings.TrimSpace(req.Name),
			ProjectDescription: strings.TrimSpace(req.Description),
			TeamSize:           req.TeamSize,
			Priority:           priority,
			StartDate:          grid.FormatDate(*req.StartDate),
			EndDate:            grid.FormatDate(*req.EndDate),
			DurationDays:       duration,
			ResourceDetails: domain.ResourceDetails{
				Position:       r.Position,
				Quantity:       r.Quantity,
				SkillLevel:     r.SkillLevel,
				AssignmentType: r.AssignmentType,
				Skills:         r.Skills,
				Justification:  r.Justification,
			},
			RequestGroupID: groupID,
			ResourceIndex:  i,
			TotalResources: len(req.Resources),
		})
		if err != nil {
			return SubmitResult{}, fmt.Errorf("encoding request notes: %w", err)
		}
		rows[i] = &domain.ResourceRequest{
			ID:           uuid.New().String(),
			RequestedBy:  s.env.Manager.ID,
			Status:       domain.RequestPending,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			DurationDays: duration,
			Notes:        string(notes),
			CreatedAt:    now.UTC(),
		}
	}

	// Rows already written stay written when a sibling insert fails.
	var g errgroup.Group
	for _, row := range rows {
		g.Go(func() error {
			if err := s.env.Repos.Requests.Create(ctx, row); err != nil {
				return fmt.Errorf("creating resource request: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SubmitResult{}, err
	}
	s.env.invalidate()

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return SubmitResult{
		GroupID:    groupID,
		RequestIDs: ids,
		Message:    fmt.Sprintf("Project request %q submitted successfully! Waiting for Resource Manager approval.", strings.TrimSpace(req.Name)),
	}, nil
}
