package plans

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{plans: make(map[string]Plan)}
}

func (r *MemoryRepo) Create(ctx context.Context, p Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Activities = slices.Clone(p.Activities)
	r.mu.Lock()
	r.plans[p.ID] = p
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return Plan{}, ErrNotFound
	}
	p.Activities = slices.Clone(p.Activities)
	return p, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Plan
	for _, p := range r.plans {
		if p.UserID == userID {
			p.Activities = slices.Clone(p.Activities)
			out = append(out, p)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) CreateOnce(ctx context.Context, p Plan) (Plan, bool, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.plans {
		if existing.UserID == p.UserID && existing.SourceType == SourceLearning &&
			existing.SourceRef == p.SourceRef && existing.Title == p.Title {
			existing.Activities = slices.Clone(existing.Activities)
			return existing, false, nil
		}
	}
	p.Activities = slices.Clone(p.Activities)
	r.plans[p.ID] = p
	p.Activities = slices.Clone(p.Activities)
	return p, true, nil
}

func (r *MemoryRepo) SetActivity(ctx context.Context, id string, index int, completed bool) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return Plan{}, ErrNotFound
	}
	if index < 0 || index >= len(p.Activities) {
		return Plan{}, ErrActivityIndex
	}
	p.Activities = slices.Clone(p.Activities)
	p.Activities[index].Completed = completed
	p.Progress = p.ProgressPercent()
	p.UpdatedAt = time.Now().UTC()
	r.plans[id] = p
	p.Activities = slices.Clone(p.Activities)
	return p, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *MemoryRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.plans {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}
