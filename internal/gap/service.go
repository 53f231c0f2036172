package gap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"succession-backend/internal/assessments"
	"succession-backend/internal/gap/engine"
	"succession-backend/internal/plans"
	"succession-backend/internal/profiles"
	"succession-backend/internal/shared/apperr"
	"succession-backend/internal/shared/metrics"
	"succession-backend/internal/shared/telemetry"
	"succession-backend/internal/shared/tracing"
	"succession-backend/internal/users"
)

type AssessmentSource interface {
	Require(ctx context.Context, userID string) (assessments.Assessment, error)
}

type ProfileSource interface {
	Get(ctx context.Context, roleKey string) (profiles.SuccessProfile, error)
}

type PlanWriter interface {
	CreateFromDraft(ctx context.Context, userID, roleKey string, draft engine.IDPDraft) (plans.Plan, error)
}

type Service struct {
	Assessments AssessmentSource
	Profiles    ProfileSource
	Plans       PlanWriter
	Sessions    SessionRepo
	Now         func() time.Time
	NewID       func() string
	tracer      trace.Tracer
}

func NewService(a AssessmentSource, p ProfileSource, w PlanWriter, sessions SessionRepo) *Service {
	return &Service{
		Assessments: a,
		Profiles:    p,
		Plans:       w,
		Sessions:    sessions,
		Now:         time.Now,
		NewID:       uuid.NewString,
		tracer:      tracing.Tracer("gap"),
	}
}

// Analyze compares the actor's assessment against a success profile.
func (s *Service) Analyze(ctx context.Context, actor users.User, roleKey string) (engine.Result, error) {
	roleKey = strings.TrimSpace(roleKey)
	ctx, span := s.startSpan(ctx, "gap.analyze", attribute.String("gap.role_key", roleKey))
	defer span.End()

	start := time.Now()
	metrics.IncGapAnalysisStarted()
	res, err := s.analyze(ctx, actor, roleKey)
	metrics.ObserveGapAnalysisDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncGapAnalysisFailed()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		telemetry.Warn("gap.analyze_failed", map[string]any{
			"user_id":  actor.ID,
			"role_key": roleKey,
			"error":    err,
		})
		return engine.Result{}, err
	}

	metrics.IncGapAnalysisCompleted()
	span.SetAttributes(
		attribute.Int("gap.gaps", len(res.Gaps)),
		attribute.Int("gap.overlap", len(res.Overlap)),
	)
	telemetry.Info("gap.analyzed", map[string]any{
		"user_id":         actor.ID,
		"role_key":        roleKey,
		"gaps":            len(res.Gaps),
		"overlap":         len(res.Overlap),
		"recommendations": len(res.Recommendations),
	})
	return res, nil
}

func (s *Service) analyze(ctx context.Context, actor users.User, roleKey string) (engine.Result, error) {
	if actor.ID == "" || actor.IsAnonymous {
		return engine.Result{}, apperr.Authorization("Unauthorized")
	}
	if roleKey == "" {
		return engine.Result{}, apperr.Validation("targetRoleKey is required")
	}
	a, err := s.Assessments.Require(ctx, actor.ID)
	if err != nil {
		return engine.Result{}, err
	}
	p, err := s.Profiles.Get(ctx, roleKey)
	if err != nil {
		return engine.Result{}, err
	}
	return engine.Analyze(a.Engine(), p.Engine()), nil
}

// CreatePlan runs the analysis and stores its draft as an active plan.
func (s *Service) CreatePlan(ctx context.Context, actor users.User, roleKey string) (plans.Plan, error) {
	res, err := s.Analyze(ctx, actor, roleKey)
	if err != nil {
		return plans.Plan{}, err
	}
	return s.Plans.CreateFromDraft(ctx, actor.ID, strings.TrimSpace(roleKey), res.IDPDraft)
}

// StartSession opens an empty questionnaire session for the actor.
func (s *Service) StartSession(ctx context.Context, actor users.User) (Session, error) {
	if actor.ID == "" || actor.IsAnonymous {
		return Session{}, apperr.Authorization("Unauthorized")
	}
	sess := Session{
		ID:         s.NewID(),
		UserID:     actor.ID,
		TargetRole: unspecifiedRole,
		Gaps:       []SessionGap{},
		AnalyzedAt: s.now(),
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// SubmitAnswers scores questionnaire answers and stores the result on the session.
func (s *Service) SubmitAnswers(ctx context.Context, actor users.User, sessionID string, a Answers) (AnswersResult, error) {
	ctx, span := s.startSpan(ctx, "gap.submit_answers", attribute.String("gap.session_id", sessionID))
	defer span.End()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) || (err == nil && sess.UserID != actor.ID) {
		return AnswersResult{}, apperr.NotFound("Gap analysis session not found")
	}
	if err != nil {
		return AnswersResult{}, err
	}

	gap, score, result := scoreAnswers(a)
	sess.TargetRole = a.TargetRole
	if sess.TargetRole == "" {
		sess.TargetRole = unspecifiedRole
	}
	sess.Gaps = []SessionGap{gap}
	sess.OverallScore = score
	sess.AnalyzedAt = s.now()
	if err := s.Sessions.Update(ctx, sess); err != nil {
		return AnswersResult{}, err
	}
	span.SetAttributes(attribute.String("gap.severity", gap.Severity))
	return result, nil
}

// GetSession returns one of the actor's questionnaire sessions.
func (s *Service) GetSession(ctx context.Context, actor users.User, sessionID string) (Session, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) || (err == nil && !actor.CanAccess(sess.UserID)) {
		return Session{}, apperr.NotFound("Gap analysis session not found")
	}
	return sess, err
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	t := s.tracer
	if t == nil {
		t = tracing.Tracer("gap")
	}
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
