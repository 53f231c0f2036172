package employees

import (
	"time"

	"succession-backend/internal/users"
)

type Competency struct {
	Name         string  `json:"name"`
	CurrentLevel float64 `json:"currentLevel"`
	TargetLevel  float64 `json:"targetLevel"`
	Importance   string  `json:"importance"`
}

// Profile is the career profile kept next to a user record.
type Profile struct {
	UserID            string       `json:"userId"`
	CurrentRole       string       `json:"currentRole"`
	TargetRoles       []string     `json:"targetRoles"`
	Competencies      []Competency `json:"competencies"`
	CareerAspirations []string     `json:"careerAspirations"`
	Strengths         []string     `json:"strengths"`
	DevelopmentAreas  []string     `json:"developmentAreas"`
	LastAssessmentAt  time.Time    `json:"lastAssessmentAt"`
}

// ProfileInput carries a single free-text aspiration, stored as a one-item list.
type ProfileInput struct {
	CurrentRole       string       `json:"currentRole"`
	TargetRoles       []string     `json:"targetRoles"`
	Competencies      []Competency `json:"competencies"`
	CareerAspirations string       `json:"careerAspirations"`
	Strengths         []string     `json:"strengths"`
	DevelopmentAreas  []string     `json:"developmentAreas"`
}

// Detail pairs a user with their profile; Profile is nil when none exists.
type Detail struct {
	User    users.User `json:"user"`
	Profile *Profile   `json:"profile"`
}

type RatingInput struct {
	Performance string `json:"performance"`
	Potential   string `json:"potential"`
}

// NineBoxEntry places one rated employee on the performance/potential grid.
type NineBoxEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Department     string  `json:"department"`
	Performance    float64 `json:"performance"`
	Potential      string  `json:"potential"`
	ReadinessScore float64 `json:"readinessScore"`
	// Box numbers the grid 1..9, low/low first, rows by potential.
	Box int `json:"box"`
}

// performanceScore maps a rating label onto the stored 0-5 scale.
func performanceScore(label string) (float64, bool) {
	switch label {
	case users.LevelHigh:
		return 5, true
	case users.LevelMedium:
		return 3, true
	case users.LevelLow:
		return 1, true
	}
	return 0, false
}

func validPotential(label string) bool {
	return label == users.LevelLow || label == users.LevelMedium || label == users.LevelHigh
}

func performanceBand(score float64) int {
	switch {
	case score >= 4:
		return 2
	case score >= 2.5:
		return 1
	default:
		return 0
	}
}

func potentialBand(label string) int {
	switch label {
	case users.LevelHigh:
		return 2
	case users.LevelMedium:
		return 1
	default:
		return 0
	}
}

func box(performance float64, potential string) int {
	return potentialBand(potential)*3 + performanceBand(performance) + 1
}

// normalize replaces nil lists so they encode as [].
func normalize(p Profile) Profile {
	if p.TargetRoles == nil {
		p.TargetRoles = []string{}
	}
	if p.Competencies == nil {
		p.Competencies = []Competency{}
	}
	if p.CareerAspirations == nil {
		p.CareerAspirations = []string{}
	}
	if p.Strengths == nil {
		p.Strengths = []string{}
	}
	if p.DevelopmentAreas == nil {
		p.DevelopmentAreas = []string{}
	}
	return p
}
