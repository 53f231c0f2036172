// Package engine computes competency gaps between an assessment and a success profile.
package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// Profile weights in [0,1] map onto the 0..5 assessment scale.
	levelScale = 5.0
	// MaxDraftActivities caps the activities carried into the IDP draft.
	MaxDraftActivities = 8
	focusAreaCount     = 3
)

// Analyze compares a against p. It is pure: equal inputs give equal results.
func Analyze(a Assessment, p Profile) Result {
	gaps := make([]Gap, 0, len(p.Competencies))
	overlap := make([]string, 0, len(p.Competencies))

	for _, comp := range p.Competencies {
		required := nonNegative(comp.Weight) * levelScale
		current := nonNegative(a.Competencies[comp.Name])
		delta := required - current
		if delta > 0 {
			gaps = append(gaps, Gap{
				Competency: comp.Name,
				Required:   required,
				Current:    current,
				Delta:      delta,
				Severity:   SeverityFor(delta),
			})
			continue
		}
		overlap = append(overlap, comp.Name)
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Delta > gaps[j].Delta
	})

	recs := Recommend(gaps)
	return Result{
		Overlap:          overlap,
		Gaps:             gaps,
		HardRequirements: hardRequirements(a, p),
		Recommendations:  recs,
		IDPDraft:         Draft(p.Title, gaps, recs),
	}
}

// SeverityFor classifies a positive delta.
func SeverityFor(delta float64) Severity {
	switch {
	case delta >= 2:
		return SeverityHigh
	case delta >= 1:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func hardRequirements(a Assessment, p Profile) HardRequirements {
	return HardRequirements{
		Performance:     threshold(p.MinPerformance, a.Performance),
		ExperienceYears: threshold(p.MinExperienceYears, a.ExperienceYears),
		AdcScore:        threshold(p.MinAdcScore, a.AdcScore),
	}
}

func threshold(required, current float64) Threshold {
	return Threshold{Required: required, Current: current, Delta: required - current}
}

// Recommend expands gaps, in order, into development activities by severity tier.
func Recommend(gaps []Gap) []Recommendation {
	recs := make([]Recommendation, 0, len(gaps)*2)
	for _, g := range gaps {
		switch g.Severity {
		case SeverityHigh:
			recs = append(recs,
				Recommendation{
					Competency:     g.Competency,
					ActivityType:   ActivityMentorship,
					Description:    "Pair with senior leader to develop " + g.Competency + " through guided practice",
					EstimatedWeeks: 12,
					SuccessMetric:  fmt.Sprintf("Improve %s score from %s to %s", g.Competency, oneDecimal(g.Current), oneDecimal(g.Required)),
				},
				Recommendation{
					Competency:     g.Competency,
					ActivityType:   ActivityInternalTraining,
					Description:    "Complete advanced training module on " + g.Competency,
					EstimatedWeeks: 4,
					SuccessMetric:  "Pass certification assessment with 85%+ score",
				},
			)
		case SeverityMedium:
			recs = append(recs,
				Recommendation{
					Competency:     g.Competency,
					ActivityType:   ActivityInternalTraining,
					Description:    "Attend workshop series on " + g.Competency,
					EstimatedWeeks: 6,
					SuccessMetric:  "Demonstrate proficiency in 3 real-world scenarios",
				},
				Recommendation{
					Competency:     g.Competency,
					ActivityType:   ActivityEnrichment,
					Description:    "Lead cross-functional project requiring " + g.Competency,
					EstimatedWeeks: 8,
					SuccessMetric:  "Successfully deliver project with positive stakeholder feedback",
				},
			)
		default:
			recs = append(recs, Recommendation{
				Competency:     g.Competency,
				ActivityType:   ActivityEnrichment,
				Description:    "Shadow team member excelling in " + g.Competency,
				EstimatedWeeks: 2,
				SuccessMetric:  "Document 5 key learnings and apply to current role",
			})
		}
	}
	return recs
}

// Draft builds the IDP draft from the sorted gaps and their recommendations.
func Draft(profileTitle string, gaps []Gap, recs []Recommendation) IDPDraft {
	focus := make([]string, 0, focusAreaCount)
	for i := 0; i < len(gaps) && i < focusAreaCount; i++ {
		focus = append(focus, gaps[i].Competency)
	}

	n := min(MaxDraftActivities, len(recs))
	activities := make([]DraftActivity, 0, n)
	for _, rec := range recs[:n] {
		activities = append(activities, DraftActivity{
			Title:       fmt.Sprintf("%s: %s", rec.ActivityType, rec.Competency),
			Description: fmt.Sprintf("%s (%d weeks). Success: %s", rec.Description, rec.EstimatedWeeks, rec.SuccessMetric),
		})
	}

	return IDPDraft{
		Title: "Development Plan: " + profileTitle,
		Description: fmt.Sprintf("Personalized development plan to bridge gaps for %s role. Focus areas: %s",
			profileTitle, strings.Join(focus, ", ")),
		Activities: activities,
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// oneDecimal rounds half away from zero, so 2.25 renders as "2.3".
func oneDecimal(v float64) string {
	r := math.Floor(math.Abs(v)*10+0.5) / 10
	if v < 0 {
		r = -r
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}
