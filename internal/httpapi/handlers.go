package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/grid"
	"github.com/alexanderramin/rosterdesk/internal/service"
)

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st := servicesFrom(r.Context()).Dashboard.GetDashboardStats(r.Context())
	writeJSON(w, http.StatusOK, statsView{
		ActiveProjects:  st.ActiveProjects,
		TeamMembers:     st.TeamMembers,
		TotalHours:      st.TotalHours,
		TeamUtilization: st.TeamUtilization,
	})
}

func (s *Server) team(w http.ResponseWriter, r *http.Request) {
	members := servicesFrom(r.Context()).Dashboard.GetTeamMembers(r.Context(), r.URL.Query().Get("force") == "true")
	out := make([]memberView, 0, len(members))
	for _, m := range members {
		out = append(out, newMemberView(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) allocation(w http.ResponseWriter, r *http.Request) {
	monday := grid.MondayOf(s.now())
	if v := r.URL.Query().Get("week"); v != "" {
		parsed, err := grid.ParseWeekStart(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		monday = parsed
	}
	rows := servicesFrom(r.Context()).Dashboard.GetWeeklyAllocation(r.Context(), monday)
	writeJSON(w, http.StatusOK, newAllocationView(monday, rows))
}

func (s *Server) weeks(w http.ResponseWriter, _ *http.Request) {
	opts := grid.WeekOptions(s.now())
	out := make([]weekView, 0, len(opts))
	for _, o := range opts {
		out = append(out, weekView{Value: o.Value, Label: o.Label, Selected: o.Selected})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) available(w http.ResponseWriter, r *http.Request) {
	members := servicesFrom(r.Context()).Dashboard.GetAvailableTeamMembers(r.Context())
	out := make([]availableView, 0, len(members))
	for _, m := range members {
		out = append(out, availableView{
			memberView:      newMemberView(m.TeamMember),
			AssignedHours:   m.AssignedHours,
			AvailableHours:  m.AvailableHours,
			AvailablePerDay: m.AvailablePerDay(),
			Utilization:     m.Utilization,
			Level:           string(m.Level),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	svc := servicesFrom(r.Context()).Projects
	q := r.URL.Query()
	cards := svc.Filter(svc.List(r.Context()), q.Get("search"), q.Get("status"))
	out := make([]projectView, 0, len(cards))
	for _, c := range cards {
		out = append(out, newProjectView(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	projects := servicesFrom(r.Context()).Projects.History(r.Context())
	out := make([]projectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectView(domain.ProjectCard{Project: *p}))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) tracking(w http.ResponseWriter, r *http.Request) {
	st := servicesFrom(r.Context()).Projects.TrackingStats(r.Context())
	writeJSON(w, http.StatusOK, trackingView{
		ActiveProjects:    st.ActiveProjects,
		CompletedProjects: st.CompletedProjects,
		TotalMembers:      st.TotalMembers,
		HighPriority:      st.HighPriority,
	})
}

func (s *Server) projectTeam(w http.ResponseWriter, r *http.Request) {
	members := servicesFrom(r.Context()).Projects.Team(r.Context(), chi.URLParam(r, "id"))
	out := make([]projectMemberView, 0, len(members))
	for _, m := range members {
		out = append(out, projectMemberView{memberView: newMemberView(m.TeamMember), AssignmentType: string(m.AssignmentType)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) assignable(w http.ResponseWriter, r *http.Request) {
	members := servicesFrom(r.Context()).Allocation.ListAssignable(r.Context(), chi.URLParam(r, "id"))
	out := make([]assignableView, 0, len(members))
	for _, m := range members {
		out = append(out, assignableView{
			memberView:           newMemberView(m.TeamMember),
			WeeklyHours:          m.WeeklyHours,
			AssignmentType:       string(m.AssignmentType),
			MaxHoursPerDay:       m.MaxHoursPerDay,
			AllocatedHoursPerDay: m.AllocatedHoursPerDay,
			AvailableHoursPerDay: m.AvailableHoursPerDay,
			Utilization:          m.Utilization(),
			Skills:               append([]string{}, m.Skills...),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) notice(w http.ResponseWriter, r *http.Request) {
	n := servicesFrom(r.Context()).Allocation.Notice(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, noticeView{State: string(n.State), Assigned: n.Assigned, Required: n.Required, Message: n.Message()})
}

func (s *Server) complete(w http.ResponseWriter, r *http.Request) {
	if err := servicesFrom(r.Context()).Projects.Complete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) drop(w http.ResponseWriter, r *http.Request) {
	if err := servicesFrom(r.Context()).Projects.Drop(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	err := servicesFrom(r.Context()).Projects.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type allocateBody struct {
	ProjectID   string  `json:"project_id"`
	EmployeeID  string  `json:"employee_id"`
	HoursPerDay float64 `json:"hours_per_day"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description string  `json:"description"`
}

// optionalDate parses a YYYY-MM-DD field. Blank input is nil.
func optionalDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD", field)
	}
	return &t, nil
}

func (s *Server) allocate(w http.ResponseWriter, r *http.Request) {
	var body allocateBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	start, err := optionalDate("start_date", body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := optionalDate("end_date", body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, err := servicesFrom(r.Context()).Allocation.Allocate(r.Context(), service.AllocateRequest{
		ProjectID:   body.ProjectID,
		EmployeeID:  body.EmployeeID,
		HoursPerDay: body.HoursPerDay,
		StartDate:   start,
		EndDate:     end,
		Description: body.Description,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"project_status": string(status)})
}

type resourceBody struct {
	Position       string   `json:"position"`
	Quantity       int      `json:"quantity"`
	SkillLevel     string   `json:"skill_level"`
	AssignmentType string   `json:"assignment_type"`
	Skills         []string `json:"skills"`
	Justification  string   `json:"justification"`
}

type projectRequestBody struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	TeamSize     int            `json:"team_size"`
	DurationDays int            `json:"duration_days"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Priority     string         `json:"priority"`
	Resources    []resourceBody `json:"resources"`
}

func (s *Server) submitRequest(w http.ResponseWriter, r *http.Request) {
	var body projectRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	start, err := optionalDate("start_date", body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := optionalDate("end_date", body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req := service.ProjectRequest{
		Name:         body.Name,
		Description:  body.Description,
		TeamSize:     body.TeamSize,
		DurationDays: body.DurationDays,
		StartDate:    start,
		EndDate:      end,
		Priority:     domain.ParsePriority(body.Priority),
	}
	for _, res := range body.Resources {
		req.Resources = append(req.Resources, service.ResourceRequirement{
			Position:       res.Position,
			Quantity:       res.Quantity,
			SkillLevel:     res.SkillLevel,
			AssignmentType: domain.AssignmentType(res.AssignmentType),
			Skills:         res.Skills,
			Justification:  res.Justification,
		})
	}
	result, err := servicesFrom(r.Context()).Requests.Submit(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"group_id":    result.GroupID,
		"request_ids": result.RequestIDs,
		"message":     result.Message,
	})
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user := q.Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}
	date, err := optionalDate("date", q.Get("date"))
	if err != nil || date == nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	entries := servicesFrom(r.Context()).Entries.List(r.Context(), user, *date)
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, newEntryView(e))
	}
	writeJSON(w, http.StatusOK, out)
}

type entryBody struct {
	UserID    string  `json:"user_id"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	ProjectID string  `json:"project_id"`
	Hours     float64 `json:"hours"`
	Task      string  `json:"task"`
	Reason    string  `json:"reason"`
	Confirm   bool    `json:"confirm"`
}

func (s *Server) addEntry(w http.ResponseWriter, r *http.Request) {
	var body entryBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	date, err := optionalDate("date", body.Date)
	if err != nil || date == nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	entry, err := servicesFrom(r.Context()).Entries.Add(r.Context(), service.EntryRequest{
		UserID:    body.UserID,
		Date:      *date,
		Type:      domain.WorkType(body.Type),
		ProjectID: body.ProjectID,
		Hours:     body.Hours,
		Task:      body.Task,
		Reason:    body.Reason,
		Confirm:   body.Confirm,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newEntryView(entry))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := servicesFrom(r.Context()).Entries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
