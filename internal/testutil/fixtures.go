package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithEmail(e string) UserOption {
	return func(u *domain.User) {
		u.Email = e
	}
}

func defaultEmail(name string) string {
	local := strings.ToLower(strings.Join(strings.Fields(name), "."))
	if local == "" {
		local = "user"
	}
	return fmt.Sprintf("%s.%d@example.com", local, testEmailCounter.Add(1))
}

// NewTestUser builds an employee with a unique email.
func NewTestUser(name string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     defaultEmail(name),
		Role:      domain.RoleEmployee,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UserDetail options
type DetailOption func(*domain.UserDetail)

func WithJobTitle(t string) DetailOption {
	return func(d *domain.UserDetail) {
		d.JobTitle = t
	}
}

func WithDetailStatus(s string) DetailOption {
	return func(d *domain.UserDetail) {
		d.Status = s
	}
}

func WithAvailableHours(h float64) DetailOption {
	return func(d *domain.UserDetail) {
		d.TotalAvailableHours = h
	}
}

func WithProfilePic(url string) DetailOption {
	return func(d *domain.UserDetail) {
		d.ProfilePic = url
	}
}

func WithSkills(skills ...string) DetailOption {
	return func(d *domain.UserDetail) {
		d.Skills = skills
	}
}

func NewTestDetail(userID string, opts ...DetailOption) *domain.UserDetail {
	d := &domain.UserDetail{
		UserID:              userID,
		Status:              domain.DefaultMemberStatus,
		TotalAvailableHours: domain.MaxWeeklyHours,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithPriority(pr domain.Priority) ProjectOption {
	return func(p *domain.Project) {
		p.Priority = pr
	}
}

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = d
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func WithProjectCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
	}
}

// NewTestProject builds an active, medium-priority project owned by createdBy.
func NewTestProject(name, createdBy string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectActive,
		Priority:  domain.PriorityMedium,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Assignment options
type AssignmentOption func(*domain.Assignment)

func WithAssignedHours(h float64) AssignmentOption {
	return func(a *domain.Assignment) {
		a.AssignedHours = h
	}
}

func WithAssignmentType(t domain.AssignmentType) AssignmentOption {
	return func(a *domain.Assignment) {
		a.AssignmentType = t
	}
}

func WithAssignmentStatus(s domain.AssignmentStatus) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Status = s
	}
}

func WithRoleInProject(r string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.RoleInProject = r
	}
}

func WithAssignmentCreatedAt(t time.Time) AssignmentOption {
	return func(a *domain.Assignment) {
		a.CreatedAt = t
	}
}

// NewTestAssignment builds a full-time, 40h assignment.
func NewTestAssignment(projectID, userID string, opts ...AssignmentOption) *domain.Assignment {
	a := &domain.Assignment{
		ID:                uuid.New().String(),
		ProjectID:         projectID,
		UserID:            userID,
		AssignedHours:     domain.MaxWeeklyHours,
		AssignmentType:    domain.AssignmentFullTime,
		AllocationPercent: 100,
		Status:            domain.AssignmentAssigned,
		CreatedAt:         time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Worklog options
type WorklogOption func(*domain.WorkLog)

func WithWorkType(w domain.WorkType) WorklogOption {
	return func(l *domain.WorkLog) {
		l.WorkType = w
	}
}

func WithWorkDescription(d string) WorklogOption {
	return func(l *domain.WorkLog) {
		l.Description = d
	}
}

func WithEntryStatus(s domain.EntryStatus) WorklogOption {
	return func(l *domain.WorkLog) {
		l.Status = s
	}
}

func WithLoggedAt(t time.Time) WorklogOption {
	return func(l *domain.WorkLog) {
		l.CreatedAt = t
	}
}

// NewTestWorklog builds a regular work entry.
func NewTestWorklog(userID, projectID string, date time.Time, hours float64, opts ...WorklogOption) *domain.WorkLog {
	l := &domain.WorkLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		LogDate:   date,
		Hours:     hours,
		WorkType:  domain.WorkRegular,
		Status:    domain.EntryInProgress,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func NewTestAllocation(userID, projectID, createdBy string, hoursPerDay float64, start, end time.Time) *domain.Allocation {
	return &domain.Allocation{
		ID:          uuid.New().String(),
		UserID:      userID,
		ProjectID:   projectID,
		HoursPerDay: hoursPerDay,
		StartDate:   start,
		EndDate:     end,
		Description: "Assigned work",
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
}
