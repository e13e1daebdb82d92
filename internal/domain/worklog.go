package domain

import "time"

// WorkLog is an actually recorded entry of hours, absence or leave.
type WorkLog struct {
	ID          string
	UserID      string
	ProjectID   string
	LogDate     time.Time
	Hours       float64
	WorkType    WorkType
	Description string
	Status      EntryStatus
	CreatedAt   time.Time
}

// Allocation is a manager's planned daily commitment of a member's time.
type Allocation struct {
	ID          string
	UserID      string
	ProjectID   string
	HoursPerDay float64
	StartDate   time.Time
	EndDate     time.Time
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
