package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"succession-backend/internal/chat/responder"
	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/shared/lock"
	"succession-backend/internal/shared/metrics"
	"succession-backend/internal/shared/telemetry"
	"succession-backend/internal/shared/tracing"
)

type Service struct {
	Repo      Repo
	Locker    lock.Locker
	Responder *responder.Responder
	Now       func() time.Time
	NewID     func() string
	tracer    trace.Tracer
}

func NewService(repo Repo, locker lock.Locker, r *responder.Responder) *Service {
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	if r == nil {
		r = responder.New(nil)
	}
	return &Service{
		Repo:      repo,
		Locker:    locker,
		Responder: r,
		Now:       time.Now,
		NewID:     uuid.NewString,
		tracer:    tracing.Tracer("chat"),
	}
}

// OpenSession gets or creates the session for sessionKey. New sessions start
// with the welcome message.
func (s *Service) OpenSession(ctx context.Context, userID, sessionKey, source string) (Session, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return Session{}, apperr.Validation("sessionKey is required")
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = defaultSource
	}
	now := s.now()
	sess := Session{
		ID:           s.NewID(),
		SessionKey:   sessionKey,
		UserID:       userID,
		Source:       source,
		StartedAt:    now,
		LastActiveAt: now,
	}
	welcome := Message{
		ID:        s.NewID(),
		SessionID: sess.ID,
		UserID:    userID,
		Role:      RoleAssistant,
		Content:   responder.WelcomeMessage,
		CreatedAt: now,
	}
	opened := s.event(sess.ID, userID, EventOpened, now)

	out, created, err := s.Repo.OpenSession(ctx, sess, welcome, opened)
	if err != nil {
		return Session{}, err
	}
	if created {
		telemetry.Info("chat.session_opened", map[string]any{
			"session_id": out.ID,
			"user_id":    userID,
			"source":     source,
		})
	}
	return out, nil
}

// ListMessages returns a session's messages oldest first.
func (s *Service) ListMessages(ctx context.Context, userID, sessionID string) ([]Message, error) {
	if _, err := s.session(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	out, err := s.Repo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Message{}
	}
	return out, nil
}

// Send stores content and exactly one assistant reply. Blank content is
// stored as sent and answered with the fallback reply. Sends to the same
// session run one at a time.
func (s *Service) Send(ctx context.Context, userID, sessionID, content string) (SendResult, responder.Reply, error) {
	ctx, span := s.tracer.Start(ctx, "chat.send", trace.WithAttributes(attribute.String("chat.session_id", sessionID)))
	defer span.End()

	var reply responder.Reply
	err := lock.WithLock(ctx, s.Locker, "chat:session:"+sessionID, func(ctx context.Context) error {
		if _, err := s.session(ctx, userID, sessionID); err != nil {
			return err
		}
		previous, ok, err := s.Repo.LastAssistantMessage(ctx, sessionID)
		if err != nil {
			return err
		}
		prevText := ""
		if ok {
			prevText = previous.Content
		}
		reply = s.Responder.Respond(content, prevText)

		now := s.now()
		ex := Exchange{
			SessionID: sessionID,
			At:        now,
			User: Message{
				ID: s.NewID(), SessionID: sessionID, UserID: userID,
				Role: RoleUser, Content: content, CreatedAt: now,
			},
			Assistant: Message{
				ID: s.NewID(), SessionID: sessionID, UserID: userID,
				Role: RoleAssistant, Content: reply.Content, CreatedAt: now,
			},
			Events: []Event{s.event(sessionID, userID, EventMessageSent, now)},
		}
		if reply.WrapUp {
			ex.Events = append(ex.Events, s.event(sessionID, userID, EventWrapUp, now))
		}
		err = s.Repo.AppendExchange(ctx, ex)
		if errors.Is(err, ErrSessionNotFound) {
			return apperr.NotFound("Chat session not found")
		}
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SendResult{}, responder.Reply{}, err
	}

	metrics.ObserveChatReply(reply.WrapUp, reply.Substituted)
	span.SetAttributes(
		attribute.String("chat.intent", reply.Intent),
		attribute.String("chat.stage", string(reply.Stage)),
		attribute.Bool("chat.wrap_up", reply.WrapUp),
	)
	telemetry.Debug("chat.replied", map[string]any{
		"session_id":  sessionID,
		"stage":       string(reply.Stage),
		"intent":      reply.Intent,
		"wrap_up":     reply.WrapUp,
		"substituted": reply.Substituted,
	})
	return SendResult{OK: true, Reset: reply.WrapUp}, reply, nil
}

// session loads a session visible to userID. Sessions owned by someone else
// are reported as missing.
func (s *Service) session(ctx context.Context, userID, sessionID string) (Session, error) {
	sess, err := s.Repo.GetSession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) || (err == nil && sess.UserID != "" && sess.UserID != userID) {
		return Session{}, apperr.NotFound("Chat session not found")
	}
	return sess, err
}

func (s *Service) event(sessionID, userID, typ string, at time.Time) Event {
	return Event{ID: s.NewID(), SessionID: sessionID, UserID: userID, Type: typ, CreatedAt: at}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
