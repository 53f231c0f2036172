package employees

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("employee profile not found")

type Repo interface {
	Get(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
