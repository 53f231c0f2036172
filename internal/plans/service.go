package plans

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"succession-backend/internal/gap/engine"
	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/users"
)

type Service struct {
	Repo  Repo
	Now   func() time.Time
	NewID func() string
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now, NewID: uuid.NewString}
}

// ListForUser returns a user's plans; an empty userID means the actor.
func (s *Service) ListForUser(ctx context.Context, actor users.User, userID string) ([]Plan, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = actor.ID
	}
	if !actor.CanAccess(userID) {
		return nil, apperr.Authorization("Unauthorized")
	}
	return s.list(ctx, userID)
}

// ListMine returns the actor's plans, newest first.
func (s *Service) ListMine(ctx context.Context, actor users.User) ([]Plan, error) {
	if actor.ID == "" || actor.IsAnonymous {
		return nil, apperr.Authorization("Unauthorized")
	}
	return s.list(ctx, actor.ID)
}

// ActivePlans returns a user's plans with status active. No access check.
func (s *Service) ActivePlans(ctx context.Context, userID string) ([]Plan, error) {
	all, err := s.list(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if p.Status == StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// CountActive counts active plans across all users.
func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.Repo.CountByStatus(ctx, StatusActive)
}

func (s *Service) Create(ctx context.Context, actor users.User, in CreateInput) (Plan, error) {
	owner := strings.TrimSpace(in.UserID)
	if owner == "" {
		owner = actor.ID
	}
	if !actor.CanAccess(owner) {
		return Plan{}, apperr.Authorization("Unauthorized")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Plan{}, apperr.Validation("title is required")
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = StatusActive
	}
	if !validStatus(status) {
		return Plan{}, apperr.Validation("invalid status")
	}
	activities := make([]Activity, 0, len(in.Activities))
	for _, a := range in.Activities {
		activities = append(activities, Activity{
			Title:       strings.TrimSpace(a.Title),
			Description: strings.TrimSpace(a.Description),
			Completed:   a.completed(),
		})
	}
	return s.insert(ctx, Plan{
		UserID:      owner,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		Activities:  activities,
		SourceType:  SourceManual,
	})
}

// CreateFromDraft stores a gap analysis draft as an active plan.
func (s *Service) CreateFromDraft(ctx context.Context, userID, roleKey string, draft engine.IDPDraft) (Plan, error) {
	activities := make([]Activity, 0, len(draft.Activities))
	for _, a := range draft.Activities {
		activities = append(activities, Activity{Title: a.Title, Description: a.Description, Completed: a.Completed})
	}
	return s.insert(ctx, Plan{
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      StatusActive,
		Activities:  activities,
		SourceType:  SourceGap,
		SourceRef:   roleKey,
	})
}

// CreateFromLearning returns the existing plan for the same learning item
// and title, or creates one with the starter activities.
func (s *Service) CreateFromLearning(ctx context.Context, actor users.User, in LearningInput) (Plan, bool, error) {
	if actor.ID == "" || actor.IsAnonymous {
		return Plan{}, false, apperr.Authorization("Unauthorized")
	}
	title := strings.TrimSpace(in.Title)
	href := strings.TrimSpace(in.Href)
	if title == "" || href == "" {
		return Plan{}, false, apperr.Validation("title and href are required")
	}

	activities := make([]Activity, 0, len(starterActivities))
	for _, t := range starterActivities {
		activities = append(activities, Activity{Title: t})
	}
	p := s.stamp(Plan{
		UserID:      actor.ID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      StatusActive,
		Activities:  activities,
		SourceType:  SourceLearning,
		SourceRef:   href,
	})
	stored, created, err := s.Repo.CreateOnce(ctx, p)
	if err != nil {
		return Plan{}, false, err
	}
	return stored, created, nil
}

// SetActivityDone toggles one activity of a plan the actor may access.
func (s *Service) SetActivityDone(ctx context.Context, actor users.User, planID string, index int, done bool) (Plan, error) {
	p, err := s.Repo.Get(ctx, planID)
	if errors.Is(err, ErrNotFound) {
		return Plan{}, apperr.NotFound("Development plan not found")
	}
	if err != nil {
		return Plan{}, err
	}
	if !actor.CanAccess(p.UserID) {
		return Plan{}, apperr.Authorization("Unauthorized")
	}
	updated, err := s.Repo.SetActivity(ctx, planID, index, done)
	switch {
	case errors.Is(err, ErrActivityIndex):
		return Plan{}, apperr.Wrap(apperr.KindValidation, "Invalid activityIndex", err)
	case errors.Is(err, ErrNotFound):
		return Plan{}, apperr.NotFound("Development plan not found")
	}
	return updated, err
}

// Delete removes a plan. Only its owner may delete it.
func (s *Service) Delete(ctx context.Context, actor users.User, planID string) error {
	p, err := s.Repo.Get(ctx, planID)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Plan not found")
	}
	if err != nil {
		return err
	}
	if actor.ID == "" || p.UserID != actor.ID {
		return apperr.Authorization("Unauthorized - you can only delete your own plans")
	}
	if err := s.Repo.Delete(ctx, planID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) list(ctx context.Context, userID string) ([]Plan, error) {
	out, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Plan{}
	}
	return out, nil
}

func (s *Service) insert(ctx context.Context, p Plan) (Plan, error) {
	p = s.stamp(p)
	if err := s.Repo.Create(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// stamp assigns the id and timestamps and derives progress.
func (s *Service) stamp(p Plan) Plan {
	now := s.now()
	p.ID = s.newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Activities == nil {
		p.Activities = []Activity{}
	}
	p.Progress = p.ProgressPercent()
	return p
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}
