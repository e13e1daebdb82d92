package httpapi

import (
	"time"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
)

type memberView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
	Avatar string `json:"avatar"`
}

func newMemberView(m domain.TeamMember) memberView {
	return memberView{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role, Status: m.Status, Avatar: m.Avatar}
}

type statsView struct {
	ActiveProjects  int `json:"active_projects"`
	TeamMembers     int `json:"team_members"`
	TotalHours      int `json:"total_hours"`
	TeamUtilization int `json:"team_utilization"`
}

type cellView struct {
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	Category   string  `json:"category"`
	HoursLabel string  `json:"hours_label"`
	Annotation string  `json:"annotation,omitempty"`
	TagLabel   string  `json:"tag_label,omitempty"`
	Partial    bool    `json:"partial,omitempty"`
}

type allocationRowView struct {
	Member     memberView `json:"member"`
	Days       []cellView `json:"days"`
	TotalHours float64    `json:"total_hours"`
}

type allocationView struct {
	WeekStart string              `json:"week_start"`
	Label     string              `json:"label"`
	Rows      []allocationRowView `json:"rows"`
}

func newAllocationView(monday time.Time, rows []domain.WeeklyAllocationRow) allocationView {
	out := allocationView{
		WeekStart: grid.FormatDate(monday),
		Label:     grid.WeekLabel(monday),
		Rows:      make([]allocationRowView, 0, len(rows)),
	}
	for _, row := range rows {
		rv := allocationRowView{
			Member:     newMemberView(row.Member),
			Days:       make([]cellView, 0, len(row.Days)),
			TotalHours: row.TotalHours(),
		}
		for _, d := range row.Days {
			c := grid.ClassifyDay(d)
			rv.Days = append(rv.Days, cellView{
				Date:       grid.FormatDate(d.Date),
				Hours:      c.Hours,
				Category:   string(c.Category),
				HoursLabel: c.HoursLabel,
				Annotation: c.Annotation,
				TagLabel:   c.TagLabel,
				Partial:    c.Partial,
			})
		}
		out.Rows = append(out.Rows, rv)
	}
	return out
}

type weekView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type availableView struct {
	memberView
	AssignedHours   float64 `json:"assigned_hours"`
	AvailableHours  float64 `json:"available_hours"`
	AvailablePerDay float64 `json:"available_per_day"`
	Utilization     int     `json:"utilization"`
	Level           string  `json:"level"`
}

type projectView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	StatusLabel     string  `json:"status_label"`
	Priority        string  `json:"priority"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	DurationDays    int     `json:"duration_days"`
	IsPending       bool    `json:"is_pending"`
	RequestCount    int     `json:"request_count,omitempty"`
	TeamSize        int     `json:"team_size"`
	RMAssignedCount int     `json:"rm_assigned_count"`
	PMAllocated     int     `json:"pm_allocated"`
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := grid.FormatDate(*t)
	return &s
}

func newProjectView(c domain.ProjectCard) projectView {
	return projectView{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		Status:          string(c.Status),
		StatusLabel:     c.Status.Label(),
		Priority:        string(c.Priority),
		StartDate:       dateString(c.StartDate),
		EndDate:         dateString(c.EndDate),
		DurationDays:    c.DurationDays,
		IsPending:       c.IsPending,
		RequestCount:    c.RequestCount,
		TeamSize:        c.TeamSize(),
		RMAssignedCount: c.RMAssignedCount,
		PMAllocated:     c.PMAllocated,
	}
}

type projectMemberView struct {
	memberView
	AssignmentType string `json:"assignment_type"`
}

type trackingView struct {
	ActiveProjects    int `json:"active_projects"`
	CompletedProjects int `json:"completed_projects"`
	TotalMembers      int `json:"total_members"`
	HighPriority      int `json:"high_priority"`
}

type assignableView struct {
	memberView
	WeeklyHours          float64  `json:"weekly_hours"`
	AssignmentType       string   `json:"assignment_type"`
	MaxHoursPerDay       float64  `json:"max_hours_per_day"`
	AllocatedHoursPerDay float64  `json:"allocated_hours_per_day"`
	AvailableHoursPerDay float64  `json:"available_hours_per_day"`
	Utilization          int      `json:"utilization"`
	Skills               []string `json:"skills"`
}

type noticeView struct {
	State    string `json:"state"`
	Assigned int    `json:"assigned"`
	Required int    `json:"required"`
	Message  string `json:"message"`
}

type entryView struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	ProjectID   string  `json:"project_id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	WorkType    string  `json:"work_type"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

func newEntryView(e *domain.WorkLog) entryView {
	return entryView{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		Date:        grid.FormatDate(e.LogDate),
		Hours:       e.Hours,
		WorkType:    string(e.WorkType),
		Description: e.Description,
		Status:      string(e.Status),
	}
}
