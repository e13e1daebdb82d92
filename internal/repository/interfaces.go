package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
}

type UserDetailRepo interface {
	Upsert(ctx context.Context, d *domain.UserDetail) error
	Get(ctx context.Context, userID string) (*domain.UserDetail, error)
	// RestoreHours returns released weekly hours to a member, capped at a
	// full week, and marks them available. It returns the new total.
	RestoreHours(ctx context.Context, userID string, hours float64) (float64, error)
}

// ProjectFilter narrows project listings. Zero-valued fields do not filter.
type ProjectFilter struct {
	IDs             []string
	CreatedBy       string
	Statuses        []domain.ProjectStatus
	ExcludeStatuses []domain.ProjectStatus
	Priority        domain.Priority
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns matching projects, newest first.
	List(ctx context.Context, f ProjectFilter) ([]*domain.Project, error)
	// UpdateStatus sets the status, and the end date when non-nil, and
	// returns the stored status.
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus, endDate *time.Time) (domain.ProjectStatus, error)
}

type RequirementRepo interface {
	Create(ctx context.Context, r *domain.ProjectRequirement) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectRequirement, error)
}

// AssignmentFilter narrows assignment listings. WithMembers joins the user
// and user detail rows onto each assignment.
type AssignmentFilter struct {
	ProjectIDs  []string
	UserID      string
	Status      domain.AssignmentStatus
	WithMembers bool
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	// List returns matching assignments in creation order.
	List(ctx context.Context, f AssignmentFilter) ([]*domain.Assignment, error)
	// SetStatus moves a project's assignments to a new status. An empty
	// userID matches every member; an empty from matches every status.
	SetStatus(ctx context.Context, projectID, userID string, from, to domain.AssignmentStatus) error
}

// WorklogFilter narrows worklog listings. From and To are inclusive dates.
type WorklogFilter struct {
	ProjectIDs []string
	UserID     string
	From       *time.Time
	To         *time.Time
}

type WorklogRepo interface {
	Create(ctx context.Context, w *domain.WorkLog) error
	GetByID(ctx context.Context, id string) (*domain.WorkLog, error)
	// List returns matching entries ordered by date, then creation.
	List(ctx context.Context, f WorklogFilter) ([]*domain.WorkLog, error)
	Delete(ctx context.Context, id string) error
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.Allocation) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Allocation, error)
	// DeleteByProject removes a project's allocations, only userID's when
	// userID is non-empty.
	DeleteByProject(ctx context.Context, projectID, userID string) error
}

// RequestFilter narrows resource request listings.
type RequestFilter struct {
	RequestedBy string
	Status      domain.RequestStatus
}

type ResourceRequestRepo interface {
	Create(ctx context.Context, r *domain.ResourceRequest) error
	List(ctx context.Context, f RequestFilter) ([]*domain.ResourceRequest, error)
}

// TxRepos are the repositories a multi-step project change runs against,
// all bound to the same unit of work.
type TxRepos struct {
	Projects    ProjectRepo
	Assignments AssignmentRepo
	Allocations AllocationRepo
	Details     UserDetailRepo
}

// UnitOfWork runs fn against repositories sharing one transaction where the
// backend supports it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
