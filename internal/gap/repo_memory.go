package gap

import (
	"context"
	"slices"
	"sync"
)

type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[string]Session)}
}

func (r *MemorySessionRepo) Create(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Gaps = slices.Clone(s.Gaps)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepo) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	s.Gaps = slices.Clone(s.Gaps)
	return s, nil
}

func (r *MemorySessionRepo) Update(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return ErrSessionNotFound
	}
	s.Gaps = slices.Clone(s.Gaps)
	r.sessions[s.ID] = s
	return nil
}
