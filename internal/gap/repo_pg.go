package gap

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGSessionRepo struct {
	DB *sql.DB
}

func (r *PGSessionRepo) Create(ctx context.Context, s Session) error {
	raw, err := encodeGaps(s.Gaps)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO gap_sessions (id, user_id, target_role, gaps, overall_score, analyzed_at)
VALUES ($1, $2, $3, $4, $5, $6)`, s.ID, s.UserID, s.TargetRole, raw, s.OverallScore, s.AnalyzedAt)
	return err
}

func (r *PGSessionRepo) Get(ctx context.Context, id string) (Session, error) {
	var (
		s   Session
		raw []byte
	)
	err := r.DB.QueryRowContext(ctx, `
SELECT id, user_id, target_role, gaps, overall_score, analyzed_at FROM gap_sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.TargetRole, &raw, &s.OverallScore, &s.AnalyzedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Gaps); err != nil {
			return Session{}, fmt.Errorf("decode gaps: %w", err)
		}
	}
	if s.Gaps == nil {
		s.Gaps = []SessionGap{}
	}
	return s, nil
}

func (r *PGSessionRepo) Update(ctx context.Context, s Session) error {
	raw, err := encodeGaps(s.Gaps)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `
UPDATE gap_sessions SET target_role = $1, gaps = $2, overall_score = $3, analyzed_at = $4 WHERE id = $5`,
		s.TargetRole, raw, s.OverallScore, s.AnalyzedAt, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func encodeGaps(gaps []SessionGap) ([]byte, error) {
	if gaps == nil {
		gaps = []SessionGap{}
	}
	raw, err := json.Marshal(gaps)
	if err != nil {
		return nil, fmt.Errorf("encode gaps: %w", err)
	}
	return raw, nil
}
