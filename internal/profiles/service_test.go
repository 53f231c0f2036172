package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/users"
)

var admin = users.User{ID: "admin-1", Role: users.RoleAdmin}

func TestUpsertByKeyOverwritesAllButKey(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, admin, "engineering-manager", Input{
		Title:          "Engineering Manager",
		Competencies:   []Competency{{Name: "System Design", Weight: 0.8}},
		MinPerformance: 4.5,
		Notes:          "first",
	})
	require.NoError(t, err)

	got, err := svc.Upsert(ctx, admin, "engineering-manager", Input{
		Title:        "Eng Manager",
		Competencies: []Competency{{Name: "Communication", Weight: 1.4}, {Name: "Team Development", Weight: -0.2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "engineering-manager", got.RoleKey)
	assert.Equal(t, "Eng Manager", got.Title)
	assert.Equal(t, []Competency{{Name: "Communication", Weight: 1}, {Name: "Team Development", Weight: 0}}, got.Competencies)
	assert.Equal(t, 0.0, got.MinPerformance)
	assert.Empty(t, got.Notes)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertRequiresPrivilege(t *testing.T) {
	_, err := NewService(NewMemoryRepo()).Upsert(context.Background(), users.User{ID: "e1", Role: users.RoleEmployee}, "x", Input{Title: "X"})
	assert.True(t, errors.Is(err, apperr.ErrAuthorization))
}

func TestSaveValidates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Save(context.Background(), " ", Input{Title: "X"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = svc.Save(context.Background(), "x", Input{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestGetUnknownIsNotFound(t *testing.T) {
	_, err := NewService(NewMemoryRepo()).Get(context.Background(), "nope")
	require.Error(t, err)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
	assert.Equal(t, "Success profile not found", ae.Message)
}

func TestEngineConversionKeepsOrder(t *testing.T) {
	p := SuccessProfile{Title: "T", Competencies: []Competency{{"B", 0.5}, {"A", 0.7}}}
	e := p.Engine()
	require.Len(t, e.Competencies, 2)
	assert.Equal(t, "B", e.Competencies[0].Name)
	assert.Equal(t, "A", e.Competencies[1].Name)
}
