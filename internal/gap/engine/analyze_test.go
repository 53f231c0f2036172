package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePM() Profile {
	return Profile{
		RoleKey: "senior-product-manager",
		Title:   "Senior Product Manager",
		Competencies: []Requirement{
			{Name: "Strategic Thinking", Weight: 0.9},
			{Name: "Product Vision", Weight: 0.85},
			{Name: "Stakeholder Management", Weight: 0.8},
			{Name: "Data Analysis", Weight: 0.75},
			{Name: "User Research", Weight: 0.7},
			{Name: "Technical Acumen", Weight: 0.65},
		},
		MinPerformance:     4.0,
		MinExperienceYears: 5,
		MinAdcScore:        75,
	}
}

func sampleAssessment() Assessment {
	return Assessment{
		Performance:     3.5,
		ExperienceYears: 3,
		AdcScore:        68,
		Competencies: map[string]float64{
			"Strategic Thinking":     3.0,
			"Product Vision":         2.5,
			"Stakeholder Management": 3.5,
			"Data Analysis":          4.0,
			"User Research":          3.0,
			"Technical Acumen":       3.5,
		},
	}
}

func TestAnalyzeExampleEndToEnd(t *testing.T) {
	a := Assessment{
		Performance:     3.5,
		ExperienceYears: 3,
		AdcScore:        68,
		Competencies:    map[string]float64{"Strategic Thinking": 3.0, "Data Analysis": 4.0},
	}
	p := Profile{
		Title: "Senior Product Manager",
		Competencies: []Requirement{
			{Name: "Strategic Thinking", Weight: 0.9},
			{Name: "Data Analysis", Weight: 0.75},
		},
		MinPerformance:     4.0,
		MinExperienceYears: 5,
		MinAdcScore:        75,
	}

	res := Analyze(a, p)

	require.Len(t, res.Gaps, 1)
	g := res.Gaps[0]
	assert.Equal(t, "Strategic Thinking", g.Competency)
	assert.InDelta(t, 4.5, g.Required, 1e-9)
	assert.InDelta(t, 3.0, g.Current, 1e-9)
	assert.InDelta(t, 1.5, g.Delta, 1e-9)
	assert.Equal(t, SeverityMedium, g.Severity)
	assert.Equal(t, []string{"Data Analysis"}, res.Overlap)

	assert.InDelta(t, 0.5, res.HardRequirements.Performance.Delta, 1e-9)
	assert.InDelta(t, 2, res.HardRequirements.ExperienceYears.Delta, 1e-9)
	assert.InDelta(t, 7, res.HardRequirements.AdcScore.Delta, 1e-9)

	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, ActivityInternalTraining, res.Recommendations[0].ActivityType)
	assert.Equal(t, 6, res.Recommendations[0].EstimatedWeeks)
	assert.Equal(t, ActivityEnrichment, res.Recommendations[1].ActivityType)
	assert.Equal(t, 8, res.Recommendations[1].EstimatedWeeks)

	assert.Equal(t, "Development Plan: Senior Product Manager", res.IDPDraft.Title)
	assert.Equal(t, "Personalized development plan to bridge gaps for Senior Product Manager role. Focus areas: Strategic Thinking", res.IDPDraft.Description)
	require.Len(t, res.IDPDraft.Activities, 2)
	assert.Equal(t, "internalTraining: Strategic Thinking", res.IDPDraft.Activities[0].Title)
	assert.Equal(t, "Attend workshop series on Strategic Thinking (6 weeks). Success: Demonstrate proficiency in 3 real-world scenarios", res.IDPDraft.Activities[0].Description)
	assert.False(t, res.IDPDraft.Activities[0].Completed)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	first := Analyze(sampleAssessment(), samplePM())
	second := Analyze(sampleAssessment(), samplePM())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("analysis not deterministic (-first +second):\n%s", diff)
	}
}

func TestGapsSortedAndPartitionProfile(t *testing.T) {
	p := samplePM()
	res := Analyze(sampleAssessment(), p)

	for i := 1; i < len(res.Gaps); i++ {
		assert.GreaterOrEqual(t, res.Gaps[i-1].Delta, res.Gaps[i].Delta, "gaps must be sorted by delta desc")
	}

	seen := map[string]int{}
	for _, name := range res.Overlap {
		seen[name]++
	}
	for _, g := range res.Gaps {
		seen[g.Competency]++
		assert.GreaterOrEqual(t, g.Required, 0.0)
		assert.GreaterOrEqual(t, g.Current, 0.0)
	}
	require.Len(t, seen, len(p.Competencies))
	for _, c := range p.Competencies {
		assert.Equal(t, 1, seen[c.Name], "competency %s must appear exactly once", c.Name)
	}
}

func TestGapTiesKeepDeclarationOrder(t *testing.T) {
	p := Profile{Competencies: []Requirement{
		{Name: "B", Weight: 0.6},
		{Name: "A", Weight: 0.6},
		{Name: "C", Weight: 0.8},
	}}
	res := Analyze(Assessment{}, p)

	got := make([]string, 0, len(res.Gaps))
	for _, g := range res.Gaps {
		got = append(got, g.Competency)
	}
	assert.Equal(t, []string{"C", "B", "A"}, got)
}

func TestSeverityBoundaries(t *testing.T) {
	cases := []struct {
		current float64
		want    Severity
		isGap   bool
	}{
		{current: 1.0, want: SeverityHigh, isGap: true},
		{current: 1.001, want: SeverityMedium, isGap: true},
		{current: 2.001, want: SeverityLow, isGap: true},
		{current: 3.0, isGap: false},
		{current: 3.5, isGap: false},
	}
	for _, tc := range cases {
		// Weight 0.6 requires exactly 3.0.
		res := Analyze(
			Assessment{Competencies: map[string]float64{"X": tc.current}},
			Profile{Competencies: []Requirement{{Name: "X", Weight: 0.6}}},
		)
		if !tc.isGap {
			assert.Empty(t, res.Gaps, "current=%v", tc.current)
			assert.Equal(t, []string{"X"}, res.Overlap)
			continue
		}
		require.Len(t, res.Gaps, 1, "current=%v", tc.current)
		assert.Equal(t, tc.want, res.Gaps[0].Severity, "current=%v", tc.current)
	}

	assert.Equal(t, SeverityHigh, SeverityFor(2.0))
	assert.Equal(t, SeverityMedium, SeverityFor(1.999))
	assert.Equal(t, SeverityMedium, SeverityFor(1.0))
	assert.Equal(t, SeverityLow, SeverityFor(0.999))
}

func TestRecommendationsPerTier(t *testing.T) {
	recs := Recommend([]Gap{
		{Competency: "H", Required: 4.5, Current: 2.25, Delta: 2.25, Severity: SeverityHigh},
		{Competency: "L", Required: 3, Current: 2.5, Delta: 0.5, Severity: SeverityLow},
	})

	want := []Recommendation{
		{
			Competency:     "H",
			ActivityType:   ActivityMentorship,
			Description:    "Pair with senior leader to develop H through guided practice",
			EstimatedWeeks: 12,
			SuccessMetric:  "Improve H score from 2.3 to 4.5",
		},
		{
			Competency:     "H",
			ActivityType:   ActivityInternalTraining,
			Description:    "Complete advanced training module on H",
			EstimatedWeeks: 4,
			SuccessMetric:  "Pass certification assessment with 85%+ score",
		},
		{
			Competency:     "L",
			ActivityType:   ActivityEnrichment,
			Description:    "Shadow team member excelling in L",
			EstimatedWeeks: 2,
			SuccessMetric:  "Document 5 key learnings and apply to current role",
		},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Fatalf("recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftCapsActivities(t *testing.T) {
	for _, n := range []int{0, 3, 8, 11} {
		gaps := make([]Gap, n)
		for i := range gaps {
			gaps[i] = Gap{Competency: string(rune('A' + i)), Severity: SeverityLow}
		}
		recs := Recommend(gaps)
		draft := Draft("Role", gaps, recs)
		assert.Len(t, draft.Activities, min(MaxDraftActivities, len(recs)), "n=%d", n)
	}
}

func TestDraftFocusAreasTopThree(t *testing.T) {
	res := Analyze(sampleAssessment(), samplePM())
	assert.Equal(t,
		"Personalized development plan to bridge gaps for Senior Product Manager role. Focus areas: Product Vision, Strategic Thinking, Stakeholder Management",
		res.IDPDraft.Description,
	)
	// Two medium gaps and two low gaps.
	assert.Len(t, res.Recommendations, 6)
	assert.Len(t, res.IDPDraft.Activities, 6)
}

func TestNegativeInputsClampedToZero(t *testing.T) {
	res := Analyze(
		Assessment{Competencies: map[string]float64{"X": -2}},
		Profile{Competencies: []Requirement{{Name: "X", Weight: 0.4}, {Name: "Y", Weight: -1}}},
	)
	require.Len(t, res.Gaps, 1)
	assert.Equal(t, 0.0, res.Gaps[0].Current)
	assert.Equal(t, []string{"Y"}, res.Overlap)
}

func TestOneDecimal(t *testing.T) {
	assert.Equal(t, "2.3", oneDecimal(2.25))
	assert.Equal(t, "4.5", oneDecimal(4.5))
	assert.Equal(t, "0.0", oneDecimal(0))
	assert.Equal(t, "3.8", oneDecimal(3.75))
}
