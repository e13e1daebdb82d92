package domain

import (
	"encoding/json"
	"time"
)

// ResourceRequest is one headcount request sent to resource managers. Requests
// for a not-yet-created project carry the whole project draft in Notes.
type ResourceRequest struct {
	ID            string
	ProjectID     *string
	RequirementID *string
	RequestedBy   string
	Status        RequestStatus
	StartDate     *time.Time
	EndDate       *time.Time
	DurationDays  int
	Notes         string
	CreatedAt     time.Time
}

// ResourceDetails is the per-position part of a request note.
type ResourceDetails struct {
	Position       string         `json:"position"`
	Quantity       int            `json:"quantity"`
	SkillLevel     string         `json:"skillLevel"`
	AssignmentType AssignmentType `json:"assignmentType"`
	Skills         []string       `json:"skills"`
	Justification  string         `json:"justification"`
}

// RequestNotes is the JSON document stored in resource_requests.notes. Rows
// sharing a RequestGroupID form one logical project request.
type RequestNotes struct {
	ProjectName        string          `json:"projectName"`
	ProjectDescription string          `json:"projectDescription"`
	TeamSize           int             `json:"teamSize"`
	Priority           Priority        `json:"priority"`
	StartDate          string          `json:"startDate"`
	EndDate            string          `json:"endDate"`
	DurationDays       int             `json:"durationDays"`
	ResourceDetails    ResourceDetails `json:"resourceDetails"`
	RequestGroupID     string          `json:"requestGroupId"`
	ResourceIndex      int             `json:"resourceIndex"`
	TotalResources     int             `json:"totalResources"`
}

// ParseRequestNotes decodes a notes document. Empty input decodes to zero
// notes without error.
func ParseRequestNotes(raw string) (RequestNotes, error) {
	var n RequestNotes
	if raw == "" {
		return n, nil
	}
	err := json.Unmarshal([]byte(raw), &n)
	return n, err
}
