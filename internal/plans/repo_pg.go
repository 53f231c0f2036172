package plans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const planColumns = `id, user_id, title, description, status, activities, progress, source_type, source_ref, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, p Plan) error {
	raw, err := encodeActivities(p.Activities)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO development_plans (id, user_id, title, description, status, activities, progress, source_type, source_ref, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Title, nullString(p.Description), p.Status, raw, p.Progress,
		nullString(p.SourceType), nullString(p.SourceRef), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PGRepo) Get(ctx context.Context, id string) (Plan, error) {
	p, err := scanPlan(r.DB.QueryRowContext(ctx, `SELECT `+planColumns+` FROM development_plans WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	return p, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Plan, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+planColumns+` FROM development_plans WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateOnce relies on idx_development_plans_learning_source; a conflicting
// insert returns no row and the existing plan is read back.
func (r *PGRepo) CreateOnce(ctx context.Context, p Plan) (Plan, bool, error) {
	raw, err := encodeActivities(p.Activities)
	if err != nil {
		return Plan{}, false, err
	}
	created, err := scanPlan(r.DB.QueryRowContext(ctx, `
INSERT INTO development_plans (id, user_id, title, description, status, activities, progress, source_type, source_ref, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (user_id, source_type, source_ref, title) WHERE source_type = 'learning' DO NOTHING
RETURNING `+planColumns,
		p.ID, p.UserID, p.Title, nullString(p.Description), p.Status, raw, p.Progress,
		SourceLearning, p.SourceRef, p.CreatedAt, p.UpdatedAt))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Plan{}, false, err
	}

	existing, err := scanPlan(r.DB.QueryRowContext(ctx, `
SELECT `+planColumns+` FROM development_plans
WHERE user_id = $1 AND source_type = $2 AND source_ref = $3 AND title = $4`,
		p.UserID, SourceLearning, p.SourceRef, p.Title))
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, false, ErrNotFound
	}
	if err != nil {
		return Plan{}, false, err
	}
	return existing, false, nil
}

func (r *PGRepo) SetActivity(ctx context.Context, id string, index int, completed bool) (plan Plan, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Plan{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	plan, err = scanPlan(tx.QueryRowContext(ctx, `SELECT `+planColumns+` FROM development_plans WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	if index < 0 || index >= len(plan.Activities) {
		return Plan{}, ErrActivityIndex
	}
	plan.Activities[index].Completed = completed
	plan.Progress = plan.ProgressPercent()
	plan.UpdatedAt = time.Now().UTC()

	raw, err := encodeActivities(plan.Activities)
	if err != nil {
		return Plan{}, err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE development_plans SET activities = $1, progress = $2, updated_at = $3 WHERE id = $4`,
		raw, plan.Progress, plan.UpdatedAt, id); err != nil {
		return Plan{}, err
	}
	if err = tx.Commit(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM development_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM development_plans WHERE status = $1`, status).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var (
		p                           Plan
		raw                         []byte
		progress                    float64
		desc, sourceType, sourceRef sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &desc, &p.Status, &raw, &progress, &sourceType, &sourceRef, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Plan{}, err
	}
	p.Description = desc.String
	p.SourceType = sourceType.String
	p.SourceRef = sourceRef.String
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Activities); err != nil {
			return Plan{}, fmt.Errorf("decode activities: %w", err)
		}
	}
	if p.Activities == nil {
		p.Activities = []Activity{}
	}
	p.Progress = p.ProgressPercent()
	return p, nil
}

func encodeActivities(a []Activity) ([]byte, error) {
	if a == nil {
		a = []Activity{}
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode activities: %w", err)
	}
	return raw, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
