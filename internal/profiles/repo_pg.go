package profiles

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

const profileColumns = `role_key, title, competencies, min_performance, min_experience_years, min_adc_score, notes, updated_at`

func (r *PGRepo) Get(ctx context.Context, roleKey string) (SuccessProfile, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM success_profiles WHERE role_key = $1`, roleKey)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SuccessProfile{}, ErrNotFound
		}
		return SuccessProfile{}, err
	}
	return p, nil
}

func (r *PGRepo) List(ctx context.Context) ([]SuccessProfile, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+profileColumns+` FROM success_profiles ORDER BY role_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SuccessProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Upsert(ctx context.Context, p SuccessProfile) error {
	comps := p.Competencies
	if comps == nil {
		comps = []Competency{}
	}
	raw, err := json.Marshal(comps)
	if err != nil {
		return fmt.Errorf("encode competencies: %w", err)
	}
	const query = `
INSERT INTO success_profiles (role_key, title, competencies, min_performance, min_experience_years, min_adc_score, notes, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (role_key) DO UPDATE SET
  title = EXCLUDED.title,
  competencies = EXCLUDED.competencies,
  min_performance = EXCLUDED.min_performance,
  min_experience_years = EXCLUDED.min_experience_years,
  min_adc_score = EXCLUDED.min_adc_score,
  notes = EXCLUDED.notes,
  updated_at = now()`
	var notes any
	if p.Notes != "" {
		notes = p.Notes
	}
	_, err = r.DB.ExecContext(ctx, query, p.RoleKey, p.Title, raw, p.MinPerformance, p.MinExperienceYears, p.MinAdcScore, notes)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (SuccessProfile, error) {
	var (
		p     SuccessProfile
		raw   []byte
		notes sql.NullString
	)
	if err := row.Scan(&p.RoleKey, &p.Title, &raw, &p.MinPerformance, &p.MinExperienceYears, &p.MinAdcScore, &notes, &p.UpdatedAt); err != nil {
		return SuccessProfile{}, err
	}
	p.Notes = notes.String
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Competencies); err != nil {
			return SuccessProfile{}, fmt.Errorf("decode competencies: %w", err)
		}
	}
	return p, nil
}
