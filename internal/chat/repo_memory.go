package chat

import (
	"context"
	"slices"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
	byKey    map[string]string
	messages map[string][]Message
	events   []Event
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sessions: make(map[string]Session),
		byKey:    make(map[string]string),
		messages: make(map[string][]Message),
	}
}

func (r *MemoryRepo) OpenSession(ctx context.Context, s Session, welcome Message, opened Event) (Session, bool, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byKey[s.SessionKey]; ok {
		existing := r.sessions[id]
		existing.LastActiveAt = s.LastActiveAt
		r.sessions[id] = existing
		return existing, false, nil
	}
	r.sessions[s.ID] = s
	r.byKey[s.SessionKey] = s.ID
	r.messages[s.ID] = []Message{welcome}
	r.events = append(r.events, opened)
	return s, true, nil
}

func (r *MemoryRepo) GetSession(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (r *MemoryRepo) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.messages[sessionID]), nil
}

func (r *MemoryRepo) LastAssistantMessage(ctx context.Context, sessionID string) (Message, bool, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	msgs := r.messages[sessionID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleAssistant {
			return msgs[i], true, nil
		}
	}
	return Message{}, false, nil
}

func (r *MemoryRepo) AppendExchange(ctx context.Context, ex Exchange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[ex.SessionID]
	if !ok {
		return ErrSessionNotFound
	}
	r.messages[ex.SessionID] = append(r.messages[ex.SessionID], ex.User, ex.Assistant)
	r.events = append(r.events, ex.Events...)
	s.LastActiveAt = ex.At
	r.sessions[ex.SessionID] = s
	return nil
}

// Events returns the recorded events of a session in order.
func (r *MemoryRepo) Events(sessionID string) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Event
	for _, e := range r.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out
}
