package profiles

import (
	"time"

	"succession-backend/internal/gap/engine"
)

type Competency struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// SuccessProfile is the competency template for a target role, keyed by RoleKey.
type SuccessProfile struct {
	RoleKey            string       `json:"roleKey"`
	Title              string       `json:"title"`
	Competencies       []Competency `json:"competencies"`
	MinPerformance     float64      `json:"minPerformance"`
	MinExperienceYears float64      `json:"minExperienceYears"`
	MinAdcScore        float64      `json:"minAdcScore"`
	Notes              string       `json:"notes,omitempty"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// Input is the writable part of a profile; the key comes from the path.
type Input struct {
	Title              string       `json:"title"`
	Competencies       []Competency `json:"competencies"`
	MinPerformance     float64      `json:"minPerformance"`
	MinExperienceYears float64      `json:"minExperienceYears"`
	MinAdcScore        float64      `json:"minAdcScore"`
	Notes              string       `json:"notes"`
}

// Engine converts to the analyzer's input type.
func (p SuccessProfile) Engine() engine.Profile {
	reqs := make([]engine.Requirement, 0, len(p.Competencies))
	for _, c := range p.Competencies {
		reqs = append(reqs, engine.Requirement{Name: c.Name, Weight: c.Weight})
	}
	return engine.Profile{
		RoleKey:            p.RoleKey,
		Title:              p.Title,
		Competencies:       reqs,
		MinPerformance:     p.MinPerformance,
		MinExperienceYears: p.MinExperienceYears,
		MinAdcScore:        p.MinAdcScore,
	}
}
