package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/postgrest"
)

// Row types mirror the PostgREST JSON of each table.

type userRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      domain.Role(r.Role),
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

// skillList decodes either a JSON array or a comma-separated string.
type skillList []string

func (s *skillList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*s = splitSkills(raw)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*s = arr
	return nil
}

type detailRow struct {
	UserID              string    `json:"user_id,omitempty"`
	JobTitle            string    `json:"job_title"`
	Status              string    `json:"status"`
	ProfilePic          string    `json:"profile_pic"`
	Skills              skillList `json:"skills"`
	TotalAvailableHours *float64  `json:"total_available_hours"`
}

func (r detailRow) toDomain(userID string) *domain.UserDetail {
	hours := float64(domain.MaxWeeklyHours)
	if r.TotalAvailableHours != nil {
		hours = *r.TotalAvailableHours
	}
	return &domain.UserDetail{
		UserID:              userID,
		JobTitle:            r.JobTitle,
		Status:              r.Status,
		ProfilePic:          r.ProfilePic,
		Skills:              r.Skills,
		TotalAvailableHours: hours,
	}
}

// embeddedDetail decodes a user_details embed, which PostgREST renders as an
// array or an object depending on the relationship it detects.
type embeddedDetail struct {
	row *detailRow
}

func (e *embeddedDetail) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '[':
		var rows []detailRow
		if err := json.Unmarshal(b, &rows); err != nil {
			return err
		}
		if len(rows) > 0 {
			e.row = &rows[0]
		}
		return nil
	default:
		var row detailRow
		if err := json.Unmarshal(b, &row); err != nil {
			return err
		}
		e.row = &row
		return nil
	}
}

type memberRow struct {
	userRow
	UserDetails embeddedDetail `json:"user_details"`
}

type projectRow struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	DurationDays int     `json:"duration_days"`
	CreatedBy    string  `json:"created_by"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

func (r projectRow) toDomain() *domain.Project {
	return &domain.Project{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Status:       domain.ProjectStatus(r.Status),
		Priority:     domain.Priority(r.Priority),
		StartDate:    parseDatePtr(r.StartDate),
		EndDate:      parseDatePtr(r.EndDate),
		DurationDays: r.DurationDays,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    parseTimestamp(r.CreatedAt),
	}
}

type requirementRow struct {
	ID             string `json:"id"`
	ProjectID      string `json:"project_id"`
	Position       string `json:"position"`
	QuantityNeeded int    `json:"quantity_needed"`
}

type assignmentRow struct {
	ID                string     `json:"id"`
	ProjectID         string     `json:"project_id"`
	UserID            string     `json:"user_id"`
	RoleInProject     string     `json:"role_in_project"`
	AssignedHours     *float64   `json:"assigned_hours"`
	AssignmentType    string     `json:"assignment_type"`
	AllocationPercent int        `json:"allocation_percent"`
	Status            string     `json:"status"`
	CreatedAt         string     `json:"created_at,omitempty"`
	Users             *memberRow `json:"users,omitempty"`
}

func (r assignmentRow) toDomain(withMembers bool) *domain.Assignment {
	a := &domain.Assignment{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		UserID:            r.UserID,
		RoleInProject:     r.RoleInProject,
		AssignmentType:    domain.AssignmentType(r.AssignmentType),
		AllocationPercent: r.AllocationPercent,
		Status:            domain.AssignmentStatus(r.Status),
		CreatedAt:         parseTimestamp(r.CreatedAt),
	}
	if r.AssignedHours != nil {
		a.AssignedHours = *r.AssignedHours
	}
	if withMembers && r.Users != nil {
		a.User = r.Users.toDomain()
		if a.User.ID == "" {
			a.User.ID = r.UserID
		}
		if d := r.Users.UserDetails.row; d != nil {
			a.Detail = d.toDomain(r.UserID)
		}
	}
	return a
}

type worklogRow struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	ProjectID   string  `json:"project_id"`
	LogDate     string  `json:"log_date"`
	Hours       float64 `json:"hours"`
	WorkType    string  `json:"work_type"`
	Description string  `json:"work_description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

func (r worklogRow) toDomain() (*domain.WorkLog, error) {
	d, err := time.Parse(domain.DateLayout, r.LogDate)
	if err != nil {
		return nil, fmt.Errorf("parsing log_date: %w", err)
	}
	return &domain.WorkLog{
		ID:          r.ID,
		UserID:      r.UserID,
		ProjectID:   r.ProjectID,
		LogDate:     d,
		Hours:       r.Hours,
		WorkType:    domain.WorkType(r.WorkType),
		Description: r.Description,
		Status:      domain.EntryStatus(r.Status),
		CreatedAt:   parseTimestamp(r.CreatedAt),
	}, nil
}

type allocationRow struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	ProjectID   string  `json:"project_id"`
	HoursPerDay float64 `json:"assigned_hours_per_day"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description string  `json:"description"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type requestRow struct {
	ID            string  `json:"id"`
	ProjectID     *string `json:"project_id"`
	RequirementID *string `json:"requirement_id"`
	RequestedBy   string  `json:"requested_by"`
	Status        string  `json:"status"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	DurationDays  int     `json:"duration_days"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

func (r requestRow) toDomain() *domain.ResourceRequest {
	return &domain.ResourceRequest{
		ID:            r.ID,
		ProjectID:     r.ProjectID,
		RequirementID: r.RequirementID,
		RequestedBy:   r.RequestedBy,
		Status:        domain.RequestStatus(r.Status),
		StartDate:     parseDatePtr(r.StartDate),
		EndDate:       parseDatePtr(r.EndDate),
		DurationDays:  r.DurationDays,
		Notes:         r.Notes,
		CreatedAt:     parseTimestamp(r.CreatedAt),
	}
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	// PostgREST may render date columns with a time part.
	v := *s
	if len(v) > len(domain.DateLayout) {
		v = v[:len(domain.DateLayout)]
	}
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

// translate maps gateway errors onto repository errors.
func translate(what string, err error) error {
	if errors.Is(err, postgrest.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// lowerEmail normalizes an email for equality filters. Stored emails are
// expected in lower case.
func lowerEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
