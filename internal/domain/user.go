package domain

import (
	"net/url"
	"strings"
	"time"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// UserDetail is the profile row joined onto users.
type UserDetail struct {
	UserID              string
	JobTitle            string
	Status              string
	ProfilePic          string
	Skills              []string
	TotalAvailableHours float64
}

// MaxWeeklyHours is the standard working week every capacity figure is
// measured against.
const MaxWeeklyHours = 40

// StandardDayHours is the length of a regular working day.
const StandardDayHours = 8

// DefaultMemberStatus is shown when a member has no detail status.
const DefaultMemberStatus = "Available"

// DefaultMemberRole is shown when neither a job title nor a project role exists.
const DefaultMemberRole = "Team Member"

// AvatarURL returns the generated avatar used when a member has no picture.
// Spaces in the name are encoded as %20.
func AvatarURL(name string) string {
	name = strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return "https://ui-avatars.com/api/?name=" + name + "&background=4A90E2&color=fff"
}
