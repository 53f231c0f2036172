package profiles

import (
	"context"
	"errors"
	"math"
	"strings"

	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/users"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) List(ctx context.Context) ([]SuccessProfile, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []SuccessProfile{}
	}
	return out, nil
}

// Get resolves a profile by role key.
func (s *Service) Get(ctx context.Context, roleKey string) (SuccessProfile, error) {
	p, err := s.Repo.Get(ctx, strings.TrimSpace(roleKey))
	if errors.Is(err, ErrNotFound) {
		return SuccessProfile{}, apperr.NotFound("Success profile not found")
	}
	return p, err
}

// Upsert lets privileged users create or overwrite a profile.
func (s *Service) Upsert(ctx context.Context, actor users.User, roleKey string, in Input) (SuccessProfile, error) {
	if !actor.IsPrivileged() {
		return SuccessProfile{}, apperr.Authorization("Unauthorized")
	}
	return s.Save(ctx, roleKey, in)
}

// Save stores a profile without an authorization check; used by seeding.
func (s *Service) Save(ctx context.Context, roleKey string, in Input) (SuccessProfile, error) {
	roleKey = strings.TrimSpace(roleKey)
	if roleKey == "" {
		return SuccessProfile{}, apperr.Validation("roleKey is required")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return SuccessProfile{}, apperr.Validation("title is required")
	}
	comps := make([]Competency, 0, len(in.Competencies))
	for _, c := range in.Competencies {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return SuccessProfile{}, apperr.Validation("competency name is required")
		}
		comps = append(comps, Competency{Name: name, Weight: math.Max(0, math.Min(1, c.Weight))})
	}
	p := SuccessProfile{
		RoleKey:            roleKey,
		Title:              title,
		Competencies:       comps,
		MinPerformance:     in.MinPerformance,
		MinExperienceYears: in.MinExperienceYears,
		MinAdcScore:        in.MinAdcScore,
		Notes:              strings.TrimSpace(in.Notes),
	}
	if err := s.Repo.Upsert(ctx, p); err != nil {
		return SuccessProfile{}, err
	}
	return s.Repo.Get(ctx, roleKey)
}
