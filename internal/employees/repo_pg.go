package employees

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

func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	var (
		p                                       Profile
		targets, comps, aspirations, str, areas []byte
	)
	err := r.DB.QueryRowContext(ctx, `
SELECT user_id, current_role_name, target_roles, competencies, career_aspirations, strengths, development_areas, last_assessment_at
FROM employee_profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.CurrentRole, &targets, &comps, &aspirations, &str, &areas, &p.LastAssessmentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	fields := []struct {
		raw  []byte
		dest any
	}{
		{targets, &p.TargetRoles},
		{comps, &p.Competencies},
		{aspirations, &p.CareerAspirations},
		{str, &p.Strengths},
		{areas, &p.DevelopmentAreas},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dest); err != nil {
			return Profile{}, fmt.Errorf("decode employee profile: %w", err)
		}
	}
	return normalize(p), nil
}

func (r *PGRepo) Upsert(ctx context.Context, p Profile) error {
	p = normalize(p)
	values := []any{p.TargetRoles, p.Competencies, p.CareerAspirations, p.Strengths, p.DevelopmentAreas}
	encoded := make([]any, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode employee profile: %w", err)
		}
		encoded = append(encoded, raw)
	}
	args := append([]any{p.UserID, p.CurrentRole}, encoded...)
	args = append(args, p.LastAssessmentAt)
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO employee_profiles (user_id, current_role_name, target_roles, competencies, career_aspirations, strengths, development_areas, last_assessment_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
  current_role_name = EXCLUDED.current_role_name,
  target_roles = EXCLUDED.target_roles,
  competencies = EXCLUDED.competencies,
  career_aspirations = EXCLUDED.career_aspirations,
  strengths = EXCLUDED.strengths,
  development_areas = EXCLUDED.development_areas,
  last_assessment_at = EXCLUDED.last_assessment_at`, args...)
	return err
}
