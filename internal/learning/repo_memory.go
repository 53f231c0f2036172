package learning

import (
	"context"
	"slices"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu           sync.RWMutex
	content      map[string]Content
	progress     map[string]map[string]Progress
	achievements []Achievement
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		content:  make(map[string]Content),
		progress: make(map[string]map[string]Progress),
	}
}

func (r *MemoryRepo) UpsertContent(ctx context.Context, c Content) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Competencies = slices.Clone(c.Competencies)
	r.mu.Lock()
	r.content[c.ID] = c
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) GetContent(ctx context.Context, id string) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.content[id]
	if !ok {
		return Content{}, ErrNotFound
	}
	c.Competencies = slices.Clone(c.Competencies)
	return c, nil
}

func (r *MemoryRepo) ListContent(ctx context.Context) ([]Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Content, 0, len(r.content))
	for _, c := range r.content {
		c.Competencies = slices.Clone(c.Competencies)
		out = append(out, c)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title == out[j].Title {
			return out[i].ID < out[j].ID
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r *MemoryRepo) GetProgress(ctx context.Context, userID, contentID string) (Progress, error) {
	if err := ctx.Err(); err != nil {
		return Progress{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.progress[userID][contentID]
	if !ok {
		return Progress{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) ListProgress(ctx context.Context, userID string) ([]Progress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Progress, 0, len(r.progress[userID]))
	for _, p := range r.progress[userID] {
		out = append(out, p)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].LastAccessedAt.After(out[j].LastAccessedAt) })
	return out, nil
}

func (r *MemoryRepo) UpsertProgress(ctx context.Context, p Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.content[p.ContentID]; !ok {
		return ErrNotFound
	}
	if r.progress[p.UserID] == nil {
		r.progress[p.UserID] = make(map[string]Progress)
	}
	r.progress[p.UserID][p.ContentID] = p
	return nil
}

func (r *MemoryRepo) ListAchievements(ctx context.Context, userID string) ([]Achievement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Achievement
	for i := len(r.achievements) - 1; i >= 0; i-- {
		if r.achievements[i].UserID == userID {
			out = append(out, r.achievements[i])
		}
	}
	return out, nil
}

func (r *MemoryRepo) AddAchievement(ctx context.Context, a Achievement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.achievements = append(r.achievements, a)
	r.mu.Unlock()
	return nil
}
