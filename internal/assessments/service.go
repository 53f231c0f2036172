package assessments

import (
	"context"
	"errors"
	"strings"

	"succession-backend/internal/shared/apperr"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// GetMine returns the user's assessment, or nil when none was submitted.
func (s *Service) GetMine(ctx context.Context, userID string) (*Assessment, error) {
	a, err := s.Repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Require returns the user's assessment or a precondition error.
func (s *Service) Require(ctx context.Context, userID string) (Assessment, error) {
	a, err := s.Repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Assessment{}, apperr.Precondition("Please complete your assessment first")
	}
	return a, err
}

// UpsertMine clamps and stores the user's assessment.
func (s *Service) UpsertMine(ctx context.Context, userID string, in Input) (Assessment, error) {
	if strings.TrimSpace(userID) == "" {
		return Assessment{}, apperr.Authorization("Not authenticated")
	}
	in = in.Clamp()
	a := Assessment{
		UserID:          userID,
		Performance:     in.Performance,
		ExperienceYears: in.ExperienceYears,
		AdcScore:        in.AdcScore,
		Competencies:    in.Competencies,
	}
	if err := s.Repo.Upsert(ctx, a); err != nil {
		return Assessment{}, err
	}
	return s.Repo.Get(ctx, userID)
}
