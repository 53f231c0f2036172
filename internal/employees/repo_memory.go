package employees

import (
	"context"
	"slices"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return clone(p), nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.profiles[p.UserID] = clone(p)
	r.mu.Unlock()
	return nil
}

func clone(p Profile) Profile {
	p.TargetRoles = slices.Clone(p.TargetRoles)
	p.Competencies = slices.Clone(p.Competencies)
	p.CareerAspirations = slices.Clone(p.CareerAspirations)
	p.Strengths = slices.Clone(p.Strengths)
	p.DevelopmentAreas = slices.Clone(p.DevelopmentAreas)
	return p
}
