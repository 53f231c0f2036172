package profiles

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("success profile not found")

type Repo interface {
	Get(ctx context.Context, roleKey string) (SuccessProfile, error)
	List(ctx context.Context) ([]SuccessProfile, error)
	// Upsert overwrites every field except the role key.
	Upsert(ctx context.Context, p SuccessProfile) error
}
