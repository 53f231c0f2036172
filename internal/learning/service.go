package learning

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/shared/telemetry"
)

const categoryLearning = "learning"

type Service struct {
	Repo  Repo
	Now   func() time.Time
	NewID func() string
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now, NewID: uuid.NewString}
}

// ListContent returns the catalog, optionally narrowed to items tagged with
// competency (case-insensitive).
func (s *Service) ListContent(ctx context.Context, competency string) ([]Content, error) {
	all, err := s.Repo.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	competency = strings.TrimSpace(competency)
	out := make([]Content, 0, len(all))
	for _, c := range all {
		if competency == "" || hasCompetency(c, competency) {
			out = append(out, c)
		}
	}
	return out, nil
}

// SaveContent validates and stores a catalog item.
func (s *Service) SaveContent(ctx context.Context, c Content) error {
	c.ID = strings.TrimSpace(c.ID)
	c.Title = strings.TrimSpace(c.Title)
	if c.ID == "" || c.Title == "" {
		return apperr.Validation("content id and title are required")
	}
	if !validType(c.Type) {
		return apperr.Validation("invalid content type")
	}
	if c.DurationMinutes < 0 {
		c.DurationMinutes = 0
	}
	return s.Repo.UpsertContent(ctx, c)
}

func (s *Service) ListProgress(ctx context.Context, userID string) ([]Progress, error) {
	out, err := s.Repo.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Progress{}
	}
	return out, nil
}

// CountCompleted counts the user's completed learning items.
func (s *Service) CountCompleted(ctx context.Context, userID string) (int, error) {
	all, err := s.Repo.ListProgress(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range all {
		if p.Completed {
			n++
		}
	}
	return n, nil
}

// UpdateProgress records progress on a catalog item. Reaching 100 for the
// first time awards a certificate.
func (s *Service) UpdateProgress(ctx context.Context, userID, contentID string, in ProgressInput) (Progress, error) {
	content, err := s.Repo.GetContent(ctx, contentID)
	if errors.Is(err, ErrNotFound) {
		return Progress{}, apperr.NotFound("Learning content not found")
	}
	if err != nil {
		return Progress{}, err
	}

	previous, err := s.Repo.GetProgress(ctx, userID, contentID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Progress{}, err
	}

	value := in.Progress
	if math.IsNaN(value) {
		value = 0
	}
	value = math.Max(0, math.Min(100, value))
	p := Progress{
		UserID:         userID,
		ContentID:      contentID,
		Progress:       value,
		Completed:      value >= 100,
		Status:         statusFor(value),
		LastAccessedAt: s.now(),
	}
	if err := s.Repo.UpsertProgress(ctx, p); err != nil {
		return Progress{}, err
	}

	if p.Completed && !previous.Completed {
		a := Achievement{
			ID:          s.NewID(),
			UserID:      userID,
			Type:        AchievementCertificate,
			Title:       "Completed " + content.Title,
			Description: "Finished the " + content.Type + " \"" + content.Title + "\".",
			Category:    categoryLearning,
			EarnedAt:    p.LastAccessedAt,
		}
		if err := s.Repo.AddAchievement(ctx, a); err != nil {
			return Progress{}, err
		}
		telemetry.Info("learning.completed", map[string]any{
			"user_id":    userID,
			"content_id": contentID,
		})
	}
	return p, nil
}

func (s *Service) ListAchievements(ctx context.Context, userID string) ([]Achievement, error) {
	out, err := s.Repo.ListAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Achievement{}
	}
	return out, nil
}

func hasCompetency(c Content, competency string) bool {
	for _, name := range c.Competencies {
		if strings.EqualFold(name, competency) {
			return true
		}
	}
	return false
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
