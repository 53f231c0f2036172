package engine

// Severity tiers a competency gap.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ActivityType names the kind of development activity recommended for a gap.
type ActivityType string

const (
	ActivityMentorship       ActivityType = "mentorship"
	ActivityInternalTraining ActivityType = "internalTraining"
	ActivityEnrichment       ActivityType = "enrichment"
	ActivityJobRotation      ActivityType = "jobRotation"
)

// Assessment is the self-assessment side of an analysis.
type Assessment struct {
	Performance     float64
	ExperienceYears float64
	AdcScore        float64
	Competencies    map[string]float64
}

// Requirement is one weighted competency of a success profile.
type Requirement struct {
	Name   string
	Weight float64
}

// Profile is the target-role side of an analysis.
type Profile struct {
	RoleKey            string
	Title              string
	Competencies       []Requirement
	MinPerformance     float64
	MinExperienceYears float64
	MinAdcScore        float64
}

type Gap struct {
	Competency string   `json:"competency"`
	Required   float64  `json:"required"`
	Current    float64  `json:"current"`
	Delta      float64  `json:"delta"`
	Severity   Severity `json:"severity"`
}

type Threshold struct {
	Required float64 `json:"required"`
	Current  float64 `json:"current"`
	Delta    float64 `json:"delta"`
}

type HardRequirements struct {
	Performance     Threshold `json:"performance"`
	ExperienceYears Threshold `json:"experienceYears"`
	AdcScore        Threshold `json:"adcScore"`
}

type Recommendation struct {
	Competency     string       `json:"competency"`
	ActivityType   ActivityType `json:"activityType"`
	Description    string       `json:"description"`
	EstimatedWeeks int          `json:"estimatedWeeks"`
	SuccessMetric  string       `json:"successMetric"`
}

type DraftActivity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type IDPDraft struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Activities  []DraftActivity `json:"activities"`
}

// Result is the full output of Analyze.
type Result struct {
	Overlap          []string         `json:"overlap"`
	Gaps             []Gap            `json:"gaps"`
	HardRequirements HardRequirements `json:"hardRequirements"`
	Recommendations  []Recommendation `json:"recommendations"`
	IDPDraft         IDPDraft         `json:"idpDraft"`
}
