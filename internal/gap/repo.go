package gap

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("gap session not found")

// SessionRepo stores questionnaire sessions.
type SessionRepo interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, s Session) error
}
