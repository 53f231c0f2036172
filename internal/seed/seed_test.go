package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"succession-backend/internal/assessments"
	"succession-backend/internal/gap/engine"
	"succession-backend/internal/learning"
	"succession-backend/internal/profiles"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	require.Len(t, c.Profiles, 2)
	spm, ok := c.Profile("senior-product-manager")
	require.True(t, ok)
	assert.Equal(t, "Senior Product Manager", spm.Title)
	require.Len(t, spm.Competencies, 6)
	assert.Equal(t, Competency{Name: "Strategic Thinking", Weight: 0.9}, spm.Competencies[0])
	assert.Equal(t, 75.0, spm.MinAdcScore)

	em, ok := c.Profile("engineering-manager")
	require.True(t, ok)
	assert.Equal(t, 4.5, em.MinPerformance)
	assert.Equal(t, "Must demonstrate ability to lead and grow engineering teams", em.Notes)

	assert.Equal(t, 3.5, c.SampleAssessment.Performance)
	assert.Equal(t, 2.5, c.SampleAssessment.Competencies["Product Vision"])
	assert.NotEmpty(t, c.Learning)
}

func TestApplyIsIdempotent(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	ps := profiles.NewService(profiles.NewMemoryRepo())
	ls := learning.NewService(learning.NewMemoryRepo())
	as := assessments.NewService(assessments.NewMemoryRepo())
	targets := Targets{Profiles: ps, Learning: ls, Assessments: as}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := Apply(ctx, c, targets, Options{SampleUserID: "demo"})
		require.NoError(t, err)
		assert.Equal(t, Result{Profiles: 2, Content: len(c.Learning), SampleAssessment: true}, res)
	}

	all, err := ps.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	a, err := as.Require(ctx, "demo")
	require.NoError(t, err)
	p, err := ps.Get(ctx, "senior-product-manager")
	require.NoError(t, err)
	res := engine.Analyze(a.Engine(), p.Engine())
	assert.Equal(t, []string{"Data Analysis", "Technical Acumen"}, res.Overlap)
}

func TestParseAssessmentAcceptsJSON(t *testing.T) {
	a, err := ParseAssessment([]byte(`{"performance": 4, "experienceYears": 7, "adcScore": 81, "competencies": {"System Design": 4.5}}`))
	require.NoError(t, err)
	assert.Equal(t, 4.0, a.Performance)
	assert.Equal(t, 4.5, a.Competencies["System Design"])
}
