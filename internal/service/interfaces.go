package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/session"
)

type IdentityService interface {
	// Initialize resolves the logged-in identity to a project manager.
	Initialize(ctx context.Context, id session.Identity) (*domain.User, error)
}

// DashboardService aggregates one manager's projects, roster and logged
// hours. Reads fail soft: a gateway error is logged and an empty result is
// returned.
type DashboardService interface {
	GetProjects(ctx context.Context, force bool) []*domain.Project
	GetTeamMembers(ctx context.Context, force bool) []domain.TeamMember
	GetDashboardStats(ctx context.Context) domain.DashboardStats
	GetWeeklyAllocation(ctx context.Context, weekStart time.Time) []domain.WeeklyAllocationRow
	GetAvailableTeamMembers(ctx context.Context) []domain.AvailableMember
	Invalidate()
}

// AllocateRequest is the hour-allocation form. Nil dates were not entered.
type AllocateRequest struct {
	ProjectID   string
	EmployeeID  string
	HoursPerDay float64
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

type AllocationService interface {
	ListAssignable(ctx context.Context, projectID string) []domain.AssignableMember
	// Allocate records the allocation and returns the project's resulting
	// status.
	Allocate(ctx context.Context, req AllocateRequest) (domain.ProjectStatus, error)
	Notice(ctx context.Context, projectID string) domain.AssignmentNotice
}

// EntryRequest is the day-entry modal opened from a grid cell.
type EntryRequest struct {
	UserID    string
	Date      time.Time
	Type      domain.WorkType
	ProjectID string
	Hours     float64
	Task      string
	Reason    string
	// Confirm accepts a holiday day running past 16 logged hours.
	Confirm bool
}

// ProjectOption is a project an employee can log against, with the hours
// already logged on the selected day.
type ProjectOption struct {
	ID          string
	Name        string
	LoggedHours float64
}

type EntryService interface {
	List(ctx context.Context, userID string, date time.Time) []*domain.WorkLog
	Delete(ctx context.Context, id string) error
	Add(ctx context.Context, req EntryRequest) (*domain.WorkLog, error)
	ProjectOptions(ctx context.Context, userID string, date time.Time) []ProjectOption
}

// ResourceRequirement is one position line of a new-project request.
type ResourceRequirement struct {
	Position       string
	Quantity       int
	SkillLevel     string
	AssignmentType domain.AssignmentType
	Skills         []string
	Justification  string
}

// ProjectRequest is the new-project form. A zero DurationDays is derived from
// the dates.
type ProjectRequest struct {
	Name         string
	Description  string
	TeamSize     int
	DurationDays int
	StartDate    *time.Time
	EndDate      *time.Time
	Priority     domain.Priority
	Resources    []ResourceRequirement
}

type SubmitResult struct {
	GroupID    string
	RequestIDs []string
	Message    string
}

type ProjectRequestService interface {
	Submit(ctx context.Context, req ProjectRequest) (SubmitResult, error)
}

type ProjectService interface {
	List(ctx context.Context) []domain.ProjectCard
	Filter(cards []domain.ProjectCard, search, status string) []domain.ProjectCard
	History(ctx context.Context) []*domain.Project
	Team(ctx context.Context, projectID string) []domain.ProjectMember
	TrackingStats(ctx context.Context) domain.TrackingStats
	Complete(ctx context.Context, projectID string) error
	Drop(ctx context.Context, projectID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}
