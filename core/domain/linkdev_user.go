package domain

import (
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanPostJobs reports whether the role may create job postings.
func (r Role) CanPostJobs() bool {
	switch r {
	case RoleRecruiter, RoleAdmin:
		return true
	case RoleJobSeeker:
		return false
	default:
		return false
	}
}

// ParseRole parses a role name. The empty string is not a role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

type User struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Role             Role             `json:"role"`
	Headline         *string          `json:"headline"`
	Summary          *string          `json:"summary"`
	Location         *string          `json:"location"`
	Industry         *string          `json:"industry"`
	ExperienceYears  *int             `json:"experience_years"`
	Skills           []string         `json:"skills"`
	Education        []map[string]any `json:"education"`
	Experience       []map[string]any `json:"experience"`
	ProfilePicture   *string          `json:"profile_picture"`
	ConnectionsCount int              `json:"connections_count"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// UserUpdate holds a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	FirstName       *string
	LastName        *string
	Headline        *string
	Summary         *string
	Location        *string
	Industry        *string
	ExperienceYears *int
	Skills          []string
	Education       []map[string]any
	Experience      []map[string]any
}

// IsEmpty reports whether the update carries no fields.
func (u *UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Headline == nil &&
		u.Summary == nil && u.Location == nil && u.Industry == nil &&
		u.ExperienceYears == nil && u.Skills == nil && u.Education == nil &&
		u.Experience == nil
}

type UserFilter struct {
	Query *string
	Role  *Role
	Skip  int
	Limit int
}
