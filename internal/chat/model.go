package chat

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Event types recorded alongside messages.
const (
	EventOpened      = "opened"
	EventMessageSent = "message_sent"
	EventWrapUp      = "wrap_up"
)

const defaultSource = "unknown"

// Session is keyed by a client-chosen SessionKey. UserID is empty for sessions
// opened without an identity.
type Session struct {
	ID           string    `json:"id"`
	SessionKey   string    `json:"sessionKey"`
	UserID       string    `json:"userId,omitempty"`
	Source       string    `json:"source"`
	StartedAt    time.Time `json:"startedAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Event struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Exchange is one user message and its reply, stored together.
type Exchange struct {
	SessionID string
	User      Message
	Assistant Message
	Events    []Event
	At        time.Time
}

// SendResult tells the client whether to start a fresh conversation.
type SendResult struct {
	OK    bool `json:"ok"`
	Reset bool `json:"reset"`
}
