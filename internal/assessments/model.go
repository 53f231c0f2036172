package assessments

import (
	"math"
	"time"

	"succession-backend/internal/gap/engine"
)

// Assessment is a user's self-assessment. One per user.
type Assessment struct {
	UserID          string             `json:"userId"`
	Performance     float64            `json:"performance"`
	ExperienceYears float64            `json:"experienceYears"`
	AdcScore        float64            `json:"adcScore"`
	Competencies    map[string]float64 `json:"competencies"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// Input is the writable part of an assessment.
type Input struct {
	Performance     float64            `json:"performance"`
	ExperienceYears float64            `json:"experienceYears"`
	AdcScore        float64            `json:"adcScore"`
	Competencies    map[string]float64 `json:"competencies"`
}

// Clamp bounds the scored fields silently instead of rejecting them.
func (in Input) Clamp() Input {
	in.Performance = clamp(in.Performance, 0, 5)
	in.AdcScore = clamp(in.AdcScore, 0, 100)
	in.ExperienceYears = math.Max(0, in.ExperienceYears)
	if in.Competencies == nil {
		in.Competencies = map[string]float64{}
	}
	return in
}

// Engine converts to the analyzer's input type.
func (a Assessment) Engine() engine.Assessment {
	return engine.Assessment{
		Performance:     a.Performance,
		ExperienceYears: a.ExperienceYears,
		AdcScore:        a.AdcScore,
		Competencies:    a.Competencies,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
