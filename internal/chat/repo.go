package chat

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("chat session not found")

type Repo interface {
	// OpenSession returns the session with s.SessionKey, touching its
	// lastActiveAt, or stores s with the welcome message and opened event.
	OpenSession(ctx context.Context, s Session, welcome Message, opened Event) (Session, bool, error)
	GetSession(ctx context.Context, id string) (Session, error)
	// ListMessages returns a session's messages in insertion order.
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
	// LastAssistantMessage returns the newest assistant message, if any.
	LastAssistantMessage(ctx context.Context, sessionID string) (Message, bool, error)
	// AppendExchange stores both messages and the events atomically.
	AppendExchange(ctx context.Context, ex Exchange) error
}
