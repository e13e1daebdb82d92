package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Project struct {
	ID           string
	Name         string
	Description  string
	Status       ProjectStatus
	Priority     Priority
	StartDate    *time.Time
	EndDate      *time.Time
	DurationDays int
	CreatedBy    string
	CreatedAt    time.Time
}

// PendingProjectPrefix marks project cards reconstructed from pending
// resource requests. Such ids never reach the projects table.
const PendingProjectPrefix = "pending_"

// IsPendingID reports whether id refers to a reconstructed pending request.
func IsPendingID(id string) bool {
	return strings.HasPrefix(id, PendingProjectPrefix)
}

// ProjectCard is a project as listed on the manager's project page. Pending
// cards are rebuilt from a group of resource requests.
type ProjectCard struct {
	Project
	IsPending       bool
	RequestCount    int
	TotalResources  int
	RMAssignedCount int
	PMAllocated     int
}

// TeamSize is the requested headcount for pending cards and the assigned
// headcount otherwise.
func (c ProjectCard) TeamSize() int {
	if c.IsPending {
		return c.TotalResources
	}
	return c.RMAssignedCount
}

// ProjectRequirement is one headcount line of an approved project.
type ProjectRequirement struct {
	ID             string
	ProjectID      string
	Position       string
	QuantityNeeded int
}
