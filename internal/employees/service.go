package employees

import (
	"context"
	"errors"
	"strings"
	"time"

	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/users"
)

// UserStore is the part of the users service employees relies on.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
	Save(ctx context.Context, user users.User) error
	ListMembers(ctx context.Context) ([]users.User, error)
}

type Service struct {
	Users    UserStore
	Profiles Repo
	Now      func() time.Time
}

func NewService(u UserStore, profiles Repo) *Service {
	return &Service{Users: u, Profiles: profiles, Now: time.Now}
}

// List returns every non-anonymous user. Privileged only.
func (s *Service) List(ctx context.Context, actor users.User) ([]users.User, error) {
	if !actor.IsPrivileged() {
		return nil, apperr.Authorization("Unauthorized")
	}
	return s.Users.ListMembers(ctx)
}

// Get returns a user and their profile, for the user themself or privileged callers.
func (s *Service) Get(ctx context.Context, actor users.User, userID string) (Detail, error) {
	if !actor.CanAccess(userID) {
		return Detail{}, apperr.Authorization("Unauthorized")
	}
	u, err := s.user(ctx, userID)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{User: u}
	p, err := s.Profiles.Get(ctx, userID)
	switch {
	case err == nil:
		d.Profile = &p
	case !errors.Is(err, ErrNotFound):
		return Detail{}, err
	}
	return d, nil
}

// Rate stores performance as a 1/3/5 score and potential as its label.
func (s *Service) Rate(ctx context.Context, actor users.User, userID string, in RatingInput) (users.User, error) {
	if !actor.IsPrivileged() {
		return users.User{}, apperr.Authorization("Unauthorized")
	}
	score, ok := performanceScore(in.Performance)
	if !ok {
		return users.User{}, apperr.Validation("performance must be low, medium or high")
	}
	if !validPotential(in.Potential) {
		return users.User{}, apperr.Validation("potential must be low, medium or high")
	}
	u, err := s.user(ctx, userID)
	if err != nil {
		return users.User{}, err
	}
	u.Performance = &score
	u.Potential = in.Potential
	if err := s.Users.Save(ctx, u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

// UpsertProfile replaces a user's career profile.
func (s *Service) UpsertProfile(ctx context.Context, actor users.User, userID string, in ProfileInput) (Profile, error) {
	if !actor.CanAccess(userID) {
		return Profile{}, apperr.Authorization("Unauthorized")
	}
	if _, err := s.user(ctx, userID); err != nil {
		return Profile{}, err
	}
	p := Profile{
		UserID:           userID,
		CurrentRole:      strings.TrimSpace(in.CurrentRole),
		TargetRoles:      in.TargetRoles,
		Competencies:     in.Competencies,
		Strengths:        in.Strengths,
		DevelopmentAreas: in.DevelopmentAreas,
		LastAssessmentAt: s.now(),
	}
	if a := strings.TrimSpace(in.CareerAspirations); a != "" {
		p.CareerAspirations = []string{a}
	}
	p = normalize(p)
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// NineBox lists users that have both ratings. Privileged only.
func (s *Service) NineBox(ctx context.Context, actor users.User) ([]NineBoxEntry, error) {
	if !actor.IsPrivileged() {
		return nil, apperr.Authorization("Unauthorized")
	}
	members, err := s.Users.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NineBoxEntry, 0, len(members))
	for _, u := range members {
		if u.Performance == nil || u.Potential == "" {
			continue
		}
		out = append(out, NineBoxEntry{
			ID:             u.ID,
			Name:           orUnknown(u.Name),
			Position:       orUnknown(u.Position),
			Department:     orUnknown(u.Department),
			Performance:    *u.Performance,
			Potential:      u.Potential,
			ReadinessScore: u.Readiness(),
			Box:            box(*u.Performance, u.Potential),
		})
	}
	return out, nil
}

func (s *Service) user(ctx context.Context, userID string) (users.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, users.ErrNotFound) {
		return users.User{}, apperr.NotFound("Employee not found")
	}
	return u, err
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
