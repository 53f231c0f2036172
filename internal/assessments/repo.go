package assessments

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("assessment not found")

type Repo interface {
	Get(ctx context.Context, userID string) (Assessment, error)
	// Upsert overwrites the user's assessment.
	Upsert(ctx context.Context, a Assessment) error
}
