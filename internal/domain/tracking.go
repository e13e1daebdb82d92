package domain

import "fmt"

// ProjectMember is an assigned member as listed on the project tracking page.
type ProjectMember struct {
	TeamMember
	AssignmentType AssignmentType
}

// TrackingStats is the summary strip on the project tracking page.
type TrackingStats struct {
	ActiveProjects    int
	CompletedProjects int
	TotalMembers      int
	HighPriority      int
}

type NoticeState string

const (
	NoticePending      NoticeState = "pending"
	NoticeNoneRequired NoticeState = "none_required"
	NoticeNoneAssigned NoticeState = "none_assigned"
	NoticePartial      NoticeState = "partial"
	NoticeComplete     NoticeState = "complete"
)

// AssignmentNotice compares a project's staffed headcount against its
// requirements before hours are allocated.
type AssignmentNotice struct {
	State    NoticeState
	Assigned int
	Required int
}

// NewAssignmentNotice grades assigned against required headcount.
func NewAssignmentNotice(assigned, required int) AssignmentNotice {
	n := AssignmentNotice{Assigned: assigned, Required: required}
	switch {
	case required == 0:
		n.State = NoticeNoneRequired
	case assigned == 0:
		n.State = NoticeNoneAssigned
	case assigned < required:
		n.State = NoticePartial
	default:
		n.State = NoticeComplete
	}
	return n
}

// Ratio renders the notice as "assigned/required".
func (n AssignmentNotice) Ratio() string {
	return fmt.Sprintf("%d/%d", n.Assigned, n.Required)
}

// Message is the banner text shown above the allocation form. It is empty
// when nothing is required.
func (n AssignmentNotice) Message() string {
	switch n.State {
	case NoticePending:
		return "This project is pending Resource Manager approval. You cannot allocate hours yet."
	case NoticeNoneAssigned:
		return fmt.Sprintf("No employees assigned yet. Resource Manager needs to assign %d employee(s).", n.Required)
	case NoticePartial:
		return fmt.Sprintf("%s employees assigned by Resource Manager. Waiting for %d more.", n.Ratio(), n.Required-n.Assigned)
	case NoticeComplete:
		return fmt.Sprintf("All %s employees assigned by Resource Manager. You can now allocate hours.", n.Ratio())
	}
	return ""
}
