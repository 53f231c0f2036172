package users

import (
	"strings"
	"time"
)

// Roles a user may hold.
const (
	RoleAdmin     = "admin"
	RoleCommittee = "committee"
	RoleEmployee  = "employee"
	RoleUser      = "user"
)

// Potential labels, also used for performance ratings.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name,omitempty"`
	Image          string     `json:"image,omitempty"`
	Role           string     `json:"role,omitempty"`
	Department     string     `json:"department,omitempty"`
	Position       string     `json:"position,omitempty"`
	Performance    *float64   `json:"performance,omitempty"`
	Potential      string     `json:"potential,omitempty"`
	ReadinessScore *float64   `json:"readinessScore,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	TargetRole     string     `json:"targetRole,omitempty"`
	CurrentCourses []string   `json:"currentCourses"`
	IsAnonymous    bool       `json:"isAnonymous"`
	JoinDate       *time.Time `json:"joinDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// IsPrivileged reports whether u may act on other users' records.
func (u User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleCommittee
}

// CanAccess reports whether u may read or change records owned by ownerID.
func (u User) CanAccess(ownerID string) bool {
	return u.ID != "" && (u.ID == ownerID || u.IsPrivileged())
}

// Readiness returns the readiness score, 0 when unset.
func (u User) Readiness() float64 {
	if u.ReadinessScore == nil {
		return 0
	}
	return *u.ReadinessScore
}

// ProfilePatch holds optional profile edits; nil means unchanged.
type ProfilePatch struct {
	Name           *string   `json:"name"`
	Gender         *string   `json:"gender"`
	Department     *string   `json:"department"`
	TargetRole     *string   `json:"targetRole"`
	CurrentCourses *[]string `json:"currentCourses"`
}

func (p ProfilePatch) normalize() ProfilePatch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	out := ProfilePatch{
		Name:       trim(p.Name),
		Gender:     trim(p.Gender),
		Department: trim(p.Department),
		TargetRole: trim(p.TargetRole),
	}
	if p.CurrentCourses != nil {
		courses := make([]string, 0, len(*p.CurrentCourses))
		for _, c := range *p.CurrentCourses {
			if c = strings.TrimSpace(c); c != "" {
				courses = append(courses, c)
			}
		}
		out.CurrentCourses = &courses
	}
	return out
}

func (p ProfilePatch) empty() bool {
	return p.Name == nil && p.Gender == nil && p.Department == nil && p.TargetRole == nil && p.CurrentCourses == nil
}

func (p ProfilePatch) apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.TargetRole != nil {
		u.TargetRole = *p.TargetRole
	}
	if p.CurrentCourses != nil {
		u.CurrentCourses = *p.CurrentCourses
	}
	return u
}
