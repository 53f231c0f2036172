package chat

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *PGRepo) OpenSession(ctx context.Context, s Session, welcome Message, opened Event) (out Session, created bool, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, false, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var userID sql.NullString
	err = tx.QueryRowContext(ctx, `
INSERT INTO chat_sessions (id, session_key, user_id, source, started_at, last_active_at)
VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (session_key) DO UPDATE SET last_active_at = EXCLUDED.last_active_at
RETURNING id, session_key, user_id, source, started_at, last_active_at, (xmax = 0)`,
		s.ID, s.SessionKey, nullString(s.UserID), s.Source, s.StartedAt).
		Scan(&out.ID, &out.SessionKey, &userID, &out.Source, &out.StartedAt, &out.LastActiveAt, &created)
	if err != nil {
		return Session{}, false, err
	}
	out.UserID = userID.String

	if created {
		if err = insertMessage(ctx, tx, welcome); err != nil {
			return Session{}, false, err
		}
		if err = insertEvent(ctx, tx, opened); err != nil {
			return Session{}, false, err
		}
	}
	if err = tx.Commit(); err != nil {
		return Session{}, false, err
	}
	return out, created, nil
}

func (r *PGRepo) GetSession(ctx context.Context, id string) (Session, error) {
	var (
		s      Session
		userID sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, `
SELECT id, session_key, user_id, source, started_at, last_active_at FROM chat_sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.SessionKey, &userID, &s.Source, &s.StartedAt, &s.LastActiveAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	s.UserID = userID.String
	return s, nil
}

func (r *PGRepo) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, session_id, user_id, role, content, created_at FROM chat_messages WHERE session_id = $1 ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGRepo) LastAssistantMessage(ctx context.Context, sessionID string) (Message, bool, error) {
	m, err := scanMessage(r.DB.QueryRowContext(ctx, `
SELECT id, session_id, user_id, role, content, created_at FROM chat_messages
WHERE session_id = $1 AND role = 'assistant' ORDER BY seq DESC LIMIT 1`, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Message{}, false, nil
		}
		return Message{}, false, err
	}
	return m, true, nil
}

func (r *PGRepo) AppendExchange(ctx context.Context, ex Exchange) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE chat_sessions SET last_active_at = $1 WHERE id = $2`, ex.At, ex.SessionID)
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
	for _, m := range []Message{ex.User, ex.Assistant} {
		if err = insertMessage(ctx, tx, m); err != nil {
			return err
		}
	}
	for _, e := range ex.Events {
		if err = insertEvent(ctx, tx, e); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertMessage(ctx context.Context, db execer, m Message) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO chat_messages (id, session_id, user_id, role, content, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.SessionID, nullString(m.UserID), m.Role, m.Content, m.CreatedAt)
	return err
}

func insertEvent(ctx context.Context, db execer, e Event) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO chat_events (id, session_id, user_id, type, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.SessionID, nullString(e.UserID), e.Type, e.CreatedAt)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (Message, error) {
	var (
		m      Message
		userID sql.NullString
	)
	if err := row.Scan(&m.ID, &m.SessionID, &userID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
		return Message{}, err
	}
	m.UserID = userID.String
	return m, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
