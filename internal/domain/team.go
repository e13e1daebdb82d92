package domain

import "time"

// TeamMember is a person assigned to at least one of the manager's projects.
type TeamMember struct {
	ID     string
	Name   string
	Email  string
	Role   string
	Status string
	Avatar string
}

// DayCell aggregates one member's log entries for one date.
type DayCell struct {
	Date  time.Time
	Hours float64
	Tags  []WorkType
}

// HasTag reports whether the cell carries the given tag.
func (c DayCell) HasTag(t WorkType) bool {
	for _, tag := range c.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// AddTag appends t unless it is already present, keeping first-seen order.
func (c *DayCell) AddTag(t WorkType) {
	if !c.HasTag(t) {
		c.Tags = append(c.Tags, t)
	}
}

// WorkWeekDays is the number of days in a week row, Monday through Friday.
const WorkWeekDays = 5

// WeeklyAllocationRow is one member's Monday-to-Friday log summary.
type WeeklyAllocationRow struct {
	Member TeamMember
	Days   [WorkWeekDays]DayCell
}

// TotalHours sums the logged hours across the row.
func (r WeeklyAllocationRow) TotalHours() float64 {
	var total float64
	for _, d := range r.Days {
		total += d.Hours
	}
	return total
}

// DashboardStats is the summary strip on the manager dashboard.
type DashboardStats struct {
	ActiveProjects  int
	TeamMembers     int
	TotalHours      int
	TeamUtilization int
}

// AvailableMember is a team member with spare weekly capacity.
type AvailableMember struct {
	TeamMember
	AssignedHours  float64
	AvailableHours float64
	Utilization    int
	Level          AvailabilityLevel
}

// AvailablePerDay spreads the spare weekly hours over the work week.
func (m AvailableMember) AvailablePerDay() float64 {
	return m.AvailableHours / WorkWeekDays
}

// LevelForAssigned grades a member's load by assigned weekly hours.
func LevelForAssigned(assigned float64) AvailabilityLevel {
	switch {
	case assigned >= MaxWeeklyHours:
		return AvailabilityHigh
	case assigned >= 20:
		return AvailabilityMedium
	default:
		return AvailabilityLow
	}
}

// AssignableMember is a project member as seen by the hour-allocation form.
type AssignableMember struct {
	TeamMember
	WeeklyHours          float64
	AssignmentType       AssignmentType
	MaxHoursPerDay       float64
	AllocatedHoursPerDay float64
	AvailableHoursPerDay float64
	Skills               []string
	AllocationPercent    int
}

// Utilization is the share of the daily ceiling already allocated.
func (m AssignableMember) Utilization() int {
	if m.MaxHoursPerDay <= 0 {
		return 0
	}
	return int(roundHalfUp(m.AllocatedHoursPerDay / m.MaxHoursPerDay * 100))
}
