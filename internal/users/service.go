package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/shared/auth"
)

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Resolve maps a request principal onto a stored user, provisioning a minimal
// record on first sight. Guests get an anonymous, unsaved user.
func (s *Service) Resolve(ctx context.Context, p auth.Principal) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(p.UserID) == "" {
		return User{}, apperr.Authorization("Unauthorized")
	}
	if p.IsGuest {
		return User{ID: p.UserID, IsAnonymous: true}, nil
	}

	user, err := s.Repo.GetByID(ctx, p.UserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	role := p.Role
	if !validRole(role) {
		role = RoleEmployee
	}
	joined := s.now()
	user = User{
		ID:       p.UserID,
		Email:    p.Email,
		Name:     p.Name,
		Role:     role,
		JoinDate: &joined,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, fmt.Errorf("provision user: %w", err)
	}
	return s.Repo.GetByID(ctx, p.UserID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile applies a trimmed patch to the actor's own record.
// An empty patch is a no-op.
func (s *Service) UpdateProfile(ctx context.Context, actor User, patch ProfilePatch) (User, error) {
	if actor.IsAnonymous {
		return User{}, apperr.Authorization("Unauthorized")
	}
	patch = patch.normalize()
	if patch.empty() {
		return actor, nil
	}
	current, err := s.Repo.GetByID(ctx, actor.ID)
	if err != nil {
		return User{}, err
	}
	if err := s.Repo.Upsert(ctx, patch.apply(current)); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, actor.ID)
}

// Save persists a full user record.
func (s *Service) Save(ctx context.Context, user User) error {
	if strings.TrimSpace(user.ID) == "" {
		return apperr.Validation("user id is required")
	}
	return s.Repo.Upsert(ctx, user)
}

// ListMembers returns every non-anonymous user.
func (s *Service) ListMembers(ctx context.Context) ([]User, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(all))
	for _, u := range all {
		if !u.IsAnonymous {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func validRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCommittee, RoleEmployee, RoleUser:
		return true
	}
	return false
}
