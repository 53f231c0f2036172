package assessments

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

func (r *PGRepo) Get(ctx context.Context, userID string) (Assessment, error) {
	const query = `
SELECT user_id, performance, experience_years, adc_score, competencies, updated_at
FROM assessments
WHERE user_id = $1`
	var (
		a   Assessment
		raw []byte
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&a.UserID, &a.Performance, &a.ExperienceYears, &a.AdcScore, &raw, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	a.Competencies = map[string]float64{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &a.Competencies); err != nil {
			return Assessment{}, fmt.Errorf("decode competencies: %w", err)
		}
	}
	return a, nil
}

func (r *PGRepo) Upsert(ctx context.Context, a Assessment) error {
	comps := a.Competencies
	if comps == nil {
		comps = map[string]float64{}
	}
	raw, err := json.Marshal(comps)
	if err != nil {
		return fmt.Errorf("encode competencies: %w", err)
	}
	const query = `
INSERT INTO assessments (user_id, performance, experience_years, adc_score, competencies, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (user_id) DO UPDATE SET
  performance = EXCLUDED.performance,
  experience_years = EXCLUDED.experience_years,
  adc_score = EXCLUDED.adc_score,
  competencies = EXCLUDED.competencies,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query, a.UserID, a.Performance, a.ExperienceYears, a.AdcScore, raw)
	return err
}
