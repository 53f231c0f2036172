package assessments

import (
	"context"
	"maps"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Assessment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Assessment)}
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.data[userID]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	a.Competencies = maps.Clone(a.Competencies)
	return a, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, a Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.Competencies = maps.Clone(a.Competencies)
	a.UpdatedAt = time.Now().UTC()
	r.mu.Lock()
	r.data[a.UserID] = a
	r.mu.Unlock()
	return nil
}
