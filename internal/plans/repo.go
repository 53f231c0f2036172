package plans

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("development plan not found")
	ErrActivityIndex = errors.New("activity index out of range")
)

type Repo interface {
	Create(ctx context.Context, p Plan) error
	Get(ctx context.Context, id string) (Plan, error)
	// ListByUser returns the user's plans newest first.
	ListByUser(ctx context.Context, userID string) ([]Plan, error)
	// CreateOnce inserts a learning plan unless the user already has one with
	// the same sourceRef and title. It returns the stored plan and whether p
	// was inserted.
	CreateOnce(ctx context.Context, p Plan) (Plan, bool, error)
	// SetActivity marks one activity and recomputes progress under a row lock.
	SetActivity(ctx context.Context, id string, index int, completed bool) (Plan, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}
