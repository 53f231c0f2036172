package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"succession-backend/internal/learning"
	"succession-backend/internal/plans"
	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/users"
)

func ptr(v float64) *float64 { return &v }

type fixture struct {
	svc      *Service
	plans    *plans.Service
	learning *learning.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	us := users.NewService(users.NewMemoryRepo())
	members := []users.User{
		{ID: "a", Role: users.RoleAdmin, Department: "Engineering", Potential: users.LevelHigh, ReadinessScore: ptr(85)},
		{ID: "b", Role: users.RoleEmployee, Department: "Engineering", Potential: users.LevelMedium, ReadinessScore: ptr(60)},
		{ID: "c", Role: users.RoleEmployee, Department: "Product", Potential: users.LevelHigh, ReadinessScore: ptr(80)},
		{ID: "d", Role: users.RoleEmployee},
		{ID: "guest:x", IsAnonymous: true, ReadinessScore: ptr(99)},
	}
	for _, u := range members {
		require.NoError(t, us.Save(ctx, u))
	}
	ps := plans.NewService(plans.NewMemoryRepo())
	ls := learning.NewService(learning.NewMemoryRepo())
	return fixture{svc: NewService(ps, ls, us), plans: ps, learning: ls}
}

func TestDashboardPersonal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := users.User{ID: "b", Role: users.RoleEmployee}

	done := true
	_, err := f.plans.Create(ctx, emp, plans.CreateInput{Title: "one", Activities: []plans.ActivityInput{{Title: "x", Done: &done}, {Title: "y"}}})
	require.NoError(t, err)
	_, err = f.plans.Create(ctx, emp, plans.CreateInput{Title: "two", Activities: []plans.ActivityInput{{Title: "x"}, {Title: "y"}, {Title: "z", Done: &done}}})
	require.NoError(t, err)
	_, err = f.plans.Create(ctx, emp, plans.CreateInput{Title: "empty"})
	require.NoError(t, err)
	_, err = f.plans.Create(ctx, emp, plans.CreateInput{Title: "paused", Status: plans.StatusPaused})
	require.NoError(t, err)

	require.NoError(t, f.learning.SaveContent(ctx, learning.Content{ID: "c1", Title: "C1", Type: learning.TypeArticle}))
	_, err = f.learning.UpdateProgress(ctx, "b", "c1", learning.ProgressInput{Progress: 100})
	require.NoError(t, err)

	d, err := f.svc.Dashboard(ctx, emp)
	require.NoError(t, err)
	// (50 + 33 + 0) / 3 = 27.67
	assert.Equal(t, Personal{ActivePlans: 3, CompletedLearning: 1, Achievements: 1, AvgProgress: 28}, d.Personal)
	assert.Nil(t, d.Organizational)
}

func TestDashboardOrganizational(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.plans.Create(ctx, users.User{ID: "c"}, plans.CreateInput{Title: "p"})
	require.NoError(t, err)

	d, err := f.svc.Dashboard(ctx, users.User{ID: "a", Role: users.RoleAdmin})
	require.NoError(t, err)
	require.NotNil(t, d.Organizational)
	assert.Equal(t, Organizational{
		TotalEmployees:   4,
		HighPotential:    2,
		ReadyNow:         2,
		InDevelopment:    1,
		SuccessionHealth: 50,
	}, *d.Organizational)
}

func TestDashboardAnonymousIsEmpty(t *testing.T) {
	d, err := newFixture(t).svc.Dashboard(context.Background(), users.User{ID: "guest:x", IsAnonymous: true})
	require.NoError(t, err)
	assert.Equal(t, Dashboard{}, d)
}

func TestPipeline(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Pipeline(context.Background(), users.User{ID: "b", Role: users.RoleEmployee})
	assert.True(t, errors.Is(err, apperr.ErrAuthorization))

	out, err := f.svc.Pipeline(context.Background(), users.User{ID: "a", Role: users.RoleCommittee})
	require.NoError(t, err)
	assert.Equal(t, []DepartmentHealth{
		{Department: "Engineering", Total: 2, HighPotential: 1, ReadyNow: 1, HealthScore: 50},
		{Department: "Product", Total: 1, HighPotential: 1, ReadyNow: 1, HealthScore: 100},
	}, out)
}
