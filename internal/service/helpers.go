package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func projectIDs(projects []*domain.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

// memberFromAssignment builds the roster entry for an assignment loaded with
// its user. Job title wins over the project role for display.
func memberFromAssignment(a *domain.Assignment) domain.TeamMember {
	m := domain.TeamMember{ID: a.UserID}
	var detail domain.UserDetail
	if a.Detail != nil {
		detail = *a.Detail
	}
	if a.User != nil {
		m.ID = a.User.ID
		m.Name = a.User.Name
		m.Email = a.User.Email
	}
	m.Role = domain.CoalesceStr(detail.JobTitle, a.RoleInProject, domain.DefaultMemberRole)
	m.Status = domain.CoalesceStr(detail.Status, domain.DefaultMemberStatus)
	m.Avatar = domain.CoalesceStr(detail.ProfilePic, domain.AvatarURL(m.Name))
	return m
}

// uniqueMembers keeps the first assignment seen for each user.
func uniqueMembers(assignments []*domain.Assignment) []domain.TeamMember {
	seen := make(map[string]bool, len(assignments))
	out := make([]domain.TeamMember, 0, len(assignments))
	for _, a := range assignments {
		if a.User == nil || seen[a.UserID] {
			continue
		}
		seen[a.UserID] = true
		out = append(out, memberFromAssignment(a))
	}
	return out
}

// assignedHoursByUser sums weekly assigned hours per user.
func assignedHoursByUser(assignments []*domain.Assignment) map[string]float64 {
	out := make(map[string]float64)
	for _, a := range assignments {
		out[a.UserID] += a.AssignedHours
	}
	return out
}

// ownedProject loads a project of the manager. Another manager's project
// reads as not found.
func ownedProject(ctx context.Context, projects repository.ProjectRepo, manager *domain.User, id string) (*domain.Project, error) {
	p, err := projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", id, err)
	}
	if p.CreatedBy != manager.ID {
		return nil, fmt.Errorf("loading project %s: %w", id, repository.ErrNotFound)
	}
	return p, nil
}
