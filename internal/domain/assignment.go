package domain

import (
	"math"
	"time"
)

// Assignment is a resource manager's placement of a user on a project.
type Assignment struct {
	ID                string
	ProjectID         string
	UserID            string
	RoleInProject     string
	AssignedHours     float64
	AssignmentType    AssignmentType
	AllocationPercent int
	Status            AssignmentStatus
	CreatedAt         time.Time

	// Joined user data, present when the repository loads members.
	User   *User
	Detail *UserDetail
}

// WeeklyHours returns the assigned weekly hours, defaulting to a full week.
func (a Assignment) WeeklyHours() float64 {
	if a.AssignedHours <= 0 {
		return MaxWeeklyHours
	}
	return a.AssignedHours
}

// Type returns the assignment type, defaulting to Full-Time.
func (a Assignment) Type() AssignmentType {
	if a.AssignmentType == "" {
		return AssignmentFullTime
	}
	return a.AssignmentType
}

// MaxHoursPerDay returns the daily ceiling for an assignment type: 8h for
// Full-Time, 4h for Part-Time, otherwise the weekly hours spread over five
// days and capped at a standard day.
func MaxHoursPerDay(t AssignmentType, weeklyHours float64) float64 {
	switch t {
	case AssignmentFullTime:
		return StandardDayHours
	case AssignmentPartTime:
		return 4
	}
	return math.Min(StandardDayHours, math.Floor(weeklyHours/5))
}
