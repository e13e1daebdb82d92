package domain

type Role string

const (
	RoleProjectManager  Role = "project_manager"
	RoleResourceManager Role = "resource_manager"
	RoleEmployee        Role = "employee"
	RoleSuperAdmin      Role = "super_admin"
)

type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectPlanning  ProjectStatus = "planning"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCancelled ProjectStatus = "cancelled"
)

// NonTerminalStatuses are the statuses the manager dashboard queries for.
var NonTerminalStatuses = []ProjectStatus{ProjectPending, ProjectOngoing, ProjectActive}

// TerminalStatuses close a project for further allocation.
var TerminalStatuses = []ProjectStatus{ProjectCompleted, ProjectCancelled}

// IsTerminal reports whether the project can no longer receive work.
func (s ProjectStatus) IsTerminal() bool {
	return s == ProjectCompleted || s == ProjectCancelled
}

// IsActive treats ongoing and active as the same stage.
func (s ProjectStatus) IsActive() bool {
	return s == ProjectActive || s == ProjectOngoing
}

// Label returns the display name for the status.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectActive, ProjectOngoing:
		return "Active"
	case ProjectPlanning:
		return "Planning"
	case ProjectCompleted:
		return "Completed"
	case ProjectOnHold:
		return "On Hold"
	case ProjectPending:
		return "Pending Approval"
	case ProjectCancelled:
		return "Cancelled"
	}
	return CapitalizeWord(string(s))
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority maps free input to a Priority, defaulting to medium.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(s)
	}
	return PriorityMedium
}

type AssignmentType string

const (
	AssignmentFullTime AssignmentType = "Full-Time"
	AssignmentPartTime AssignmentType = "Part-Time"
	AssignmentContract AssignmentType = "Contract"
)

type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentRemoved   AssignmentStatus = "removed"
	AssignmentCompleted AssignmentStatus = "completed"
)

type WorkType string

const (
	WorkAssigned  WorkType = "assigned"
	WorkRegular   WorkType = "work"
	WorkFromHome  WorkType = "work_from_home"
	WorkAbsent    WorkType = "absent"
	WorkLeave     WorkType = "leave"
	WorkSickLeave WorkType = "sick_leave"
	WorkHoliday   WorkType = "holiday"
	WorkTraining  WorkType = "training"
	WorkOther     WorkType = "other"
)

// AllWorkTypes lists every work type in form order.
var AllWorkTypes = []WorkType{
	WorkRegular, WorkFromHome, WorkAbsent, WorkLeave, WorkSickLeave,
	WorkHoliday, WorkTraining, WorkOther, WorkAssigned,
}

// IsWorked reports whether the tag counts as worked time.
func (w WorkType) IsWorked() bool {
	switch w {
	case WorkAssigned, WorkRegular, WorkFromHome:
		return true
	}
	return false
}

// BlocksDay reports whether an entry of this type prevents further entries
// on the same date.
func (w WorkType) BlocksDay() bool {
	switch w {
	case WorkAbsent, WorkLeave, WorkSickLeave:
		return true
	}
	return false
}

// SingleEntry reports whether at most one entry of this type may exist per day.
func (w WorkType) SingleEntry() bool {
	switch w {
	case WorkAbsent, WorkLeave, WorkHoliday, WorkSickLeave:
		return true
	}
	return false
}

// Valid reports whether w is a known work type.
func (w WorkType) Valid() bool {
	for _, k := range AllWorkTypes {
		if k == w {
			return true
		}
	}
	return false
}

// Label returns the short grid label. Worked tags have no label.
func (w WorkType) Label() string {
	switch w {
	case WorkAssigned, WorkRegular:
		return ""
	case WorkFromHome:
		return "WFH"
	case WorkAbsent:
		return "Absent"
	case WorkLeave:
		return "Leave"
	case WorkSickLeave:
		return "Sick"
	case WorkHoliday:
		return "Holiday"
	case WorkTraining:
		return "Training"
	case WorkOther:
		return "Other"
	}
	return ""
}

type EntryStatus string

const (
	EntryInProgress EntryStatus = "in progress"
	EntryAbsent     EntryStatus = "absent"
	EntryLeave      EntryStatus = "leave"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type AvailabilityLevel string

const (
	AvailabilityLow    AvailabilityLevel = "low"
	AvailabilityMedium AvailabilityLevel = "medium"
	AvailabilityHigh   AvailabilityLevel = "high"
)
