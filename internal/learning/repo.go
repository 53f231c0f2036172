package learning

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("learning content not found")

type Repo interface {
	UpsertContent(ctx context.Context, c Content) error
	GetContent(ctx context.Context, id string) (Content, error)
	// ListContent returns the catalog ordered by title.
	ListContent(ctx context.Context) ([]Content, error)

	GetProgress(ctx context.Context, userID, contentID string) (Progress, error)
	ListProgress(ctx context.Context, userID string) ([]Progress, error)
	UpsertProgress(ctx context.Context, p Progress) error

	ListAchievements(ctx context.Context, userID string) ([]Achievement, error)
	AddAchievement(ctx context.Context, a Achievement) error
}
