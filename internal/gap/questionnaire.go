package gap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const baseScore = 70

// timelineMonths reads the leading integer of a free-text timeline such as
// "6" or "12 months". Empty or unreadable input counts as six months.
func timelineMonths(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return defaultTimelineMonths
	}
	return n
}

func severityForMonths(months int) string {
	switch {
	case months <= 3:
		return SeverityCritical
	case months <= 6:
		return SeverityImportant
	default:
		return SeverityNiceToHave
	}
}

func penaltyFor(severity string) float64 {
	switch severity {
	case SeverityCritical:
		return 25
	case SeverityImportant:
		return 15
	default:
		return 5
	}
}

// scoreAnswers turns questionnaire answers into the stored gap, the overall
// score and the reply shown to the user.
func scoreAnswers(a Answers) (SessionGap, float64, AnswersResult) {
	months := timelineMonths(a.Timeline)
	severity := severityForMonths(months)

	competency := a.GrowthArea
	if competency == "" {
		competency = "Focus Area"
	}
	gap := SessionGap{
		Competency:    competency,
		CurrentLevel:  2,
		RequiredLevel: 4,
		Gap:           2,
		Severity:      severity,
		Recommendations: []string{
			fmt.Sprintf("Enroll in \"%s Fundamentals\" within 2 weeks.", a.GrowthArea),
			"Pair with a mentor for biweekly check-ins.",
			"Apply for a stretch project aligned to your target role.",
		},
	}
	score := math.Max(0, baseScore-penaltyFor(severity))

	result := AnswersResult{
		Summary: fmt.Sprintf("For the target role \"%s\", focus on %s. Your top strength \"%s\" will accelerate progress. Estimated timeline: %d months.",
			a.TargetRole, a.GrowthArea, a.TopStrength, months),
		Recommendations: []string{
			fmt.Sprintf("Complete two learning items on %s within the next month.", a.GrowthArea),
			"Set up a mentorship with clear biweekly goals.",
			"Select one impact project and define measurable outcomes.",
		},
	}
	return gap, score, result
}
