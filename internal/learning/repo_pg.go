package learning

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const contentColumns = `id, title, description, type, duration_minutes, competencies, url`

func (r *PGRepo) UpsertContent(ctx context.Context, c Content) error {
	comps := c.Competencies
	if comps == nil {
		comps = []string{}
	}
	raw, err := json.Marshal(comps)
	if err != nil {
		return fmt.Errorf("encode competencies: %w", err)
	}
	var url any
	if c.URL != "" {
		url = c.URL
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO learning_content (id, title, description, type, duration_minutes, competencies, url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  description = EXCLUDED.description,
  type = EXCLUDED.type,
  duration_minutes = EXCLUDED.duration_minutes,
  competencies = EXCLUDED.competencies,
  url = EXCLUDED.url`,
		c.ID, c.Title, c.Description, c.Type, c.DurationMinutes, raw, url)
	return err
}

func (r *PGRepo) GetContent(ctx context.Context, id string) (Content, error) {
	c, err := scanContent(r.DB.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM learning_content WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Content{}, ErrNotFound
	}
	return c, err
}

func (r *PGRepo) ListContent(ctx context.Context) ([]Content, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+contentColumns+` FROM learning_content ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetProgress(ctx context.Context, userID, contentID string) (Progress, error) {
	var p Progress
	err := r.DB.QueryRowContext(ctx, `
SELECT user_id, content_id, progress, completed, status, last_accessed_at
FROM learning_progress WHERE user_id = $1 AND content_id = $2`, userID, contentID).
		Scan(&p.UserID, &p.ContentID, &p.Progress, &p.Completed, &p.Status, &p.LastAccessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Progress{}, ErrNotFound
	}
	return p, err
}

func (r *PGRepo) ListProgress(ctx context.Context, userID string) ([]Progress, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT user_id, content_id, progress, completed, status, last_accessed_at
FROM learning_progress WHERE user_id = $1 ORDER BY last_accessed_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Progress
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.UserID, &p.ContentID, &p.Progress, &p.Completed, &p.Status, &p.LastAccessedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpsertProgress(ctx context.Context, p Progress) error {
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO learning_progress (user_id, content_id, progress, completed, status, last_accessed_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, content_id) DO UPDATE SET
  progress = EXCLUDED.progress,
  completed = EXCLUDED.completed,
  status = EXCLUDED.status,
  last_accessed_at = EXCLUDED.last_accessed_at`,
		p.UserID, p.ContentID, p.Progress, p.Completed, p.Status, p.LastAccessedAt)
	return err
}

func (r *PGRepo) ListAchievements(ctx context.Context, userID string) ([]Achievement, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, user_id, type, title, description, category, earned_at
FROM achievements WHERE user_id = $1 ORDER BY earned_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Achievement
	for rows.Next() {
		var (
			a        Achievement
			category sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Title, &a.Description, &category, &a.EarnedAt); err != nil {
			return nil, err
		}
		a.Category = category.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) AddAchievement(ctx context.Context, a Achievement) error {
	var category any
	if a.Category != "" {
		category = a.Category
	}
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO achievements (id, user_id, type, title, description, category, earned_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.Type, a.Title, a.Description, category, a.EarnedAt)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (Content, error) {
	var (
		c   Content
		raw []byte
		url sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Type, &c.DurationMinutes, &raw, &url); err != nil {
		return Content{}, err
	}
	c.URL = url.String
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.Competencies); err != nil {
			return Content{}, fmt.Errorf("decode competencies: %w", err)
		}
	}
	if c.Competencies == nil {
		c.Competencies = []string{}
	}
	return c, nil
}
