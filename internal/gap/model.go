package gap

import "time"

// Questionnaire severities, derived from the answered timeline.
const (
	SeverityCritical   = "critical"
	SeverityImportant  = "important"
	SeverityNiceToHave = "nice_to_have"
)

const (
	unspecifiedRole       = "unspecified"
	defaultTimelineMonths = 6
)

// Session is a questionnaire-driven gap analysis.
type Session struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	TargetRole   string       `json:"targetRole"`
	Gaps         []SessionGap `json:"gaps"`
	OverallScore float64      `json:"overallScore"`
	AnalyzedAt   time.Time    `json:"analyzedAt"`
}

type SessionGap struct {
	Competency      string   `json:"competency"`
	CurrentLevel    float64  `json:"currentLevel"`
	RequiredLevel   float64  `json:"requiredLevel"`
	Gap             float64  `json:"gap"`
	Severity        string   `json:"severity"`
	Recommendations []string `json:"recommendations"`
}

type Answers struct {
	TargetRole  string `json:"targetRole"`
	TopStrength string `json:"topStrength"`
	GrowthArea  string `json:"growthArea"`
	Timeline    string `json:"timeline"`
}

type AnswersResult struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

type SkillsInput struct {
	CurrentRole   string `json:"currentRole"`
	TargetRole    string `json:"targetRole"`
	Timeframe     string `json:"timeframe"`
	CurrentSkills string `json:"currentSkills"`
	TargetSkills  string `json:"targetSkills"`
}

type SkillsSuggestions struct {
	Learn      []string `json:"learn"`
	Practice   []string `json:"practice"`
	Milestones []string `json:"milestones"`
}

type SkillsResult struct {
	Overlap     []string          `json:"overlap"`
	Gaps        []string          `json:"gaps"`
	Suggestions SkillsSuggestions `json:"suggestions"`
	Summary     string            `json:"summary"`
}
