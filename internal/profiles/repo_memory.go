package profiles

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]SuccessProfile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]SuccessProfile)}
}

func (r *MemoryRepo) Get(ctx context.Context, roleKey string) (SuccessProfile, error) {
	if err := ctx.Err(); err != nil {
		return SuccessProfile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[roleKey]
	if !ok {
		return SuccessProfile{}, ErrNotFound
	}
	p.Competencies = slices.Clone(p.Competencies)
	return p, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]SuccessProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]SuccessProfile, 0, len(r.data))
	for _, p := range r.data {
		p.Competencies = slices.Clone(p.Competencies)
		out = append(out, p)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].RoleKey < out[j].RoleKey })
	return out, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, p SuccessProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Competencies = slices.Clone(p.Competencies)
	p.UpdatedAt = time.Now().UTC()
	r.mu.Lock()
	r.data[p.RoleKey] = p
	r.mu.Unlock()
	return nil
}
