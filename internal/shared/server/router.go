package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"succession-backend/internal/analytics"
	"succession-backend/internal/assessments"
	"succession-backend/internal/chat"
	"succession-backend/internal/employees"
	"succession-backend/internal/gap"
	"succession-backend/internal/learning"
	"succession-backend/internal/plans"
	"succession-backend/internal/profiles"
	"succession-backend/internal/shared/config"
	"succession-backend/internal/shared/metrics"
	"succession-backend/internal/shared/server/middleware"
	"succession-backend/internal/shared/server/respond"
	"succession-backend/internal/shared/tracing"
	"succession-backend/internal/users"
)

const (
	healthPath  = "/api/v1/health"
	metricsPath = "/metrics"
)

// RouterDeps carries the handlers the router mounts. A nil handler skips its routes.
type RouterDeps struct {
	Config            config.Config
	DB                *sql.DB
	UsersHandler      *users.Handler
	AssessmentHandler *assessments.Handler
	ProfileHandler    *profiles.Handler
	GapHandler        *gap.Handler
	PlanHandler       *plans.Handler
	ChatHandler       *chat.Handler
	LearningHandler   *learning.Handler
	EmployeeHandler   *employees.Handler
	AnalyticsHandler  *analytics.Handler
	RateLimiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		otelgin.Middleware(tracing.ServiceName),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(healthPath, metricsPath),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.RateGroupChat: {Rate: cfg.ChatRateRPS, Burst: cfg.ChatRateBurst},
			},
			GroupFor: middleware.ChatGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET(metricsPath, metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.DB))

	// Guests may chat; everything else needs a signed-in member.
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler == nil {
		return r
	}

	member := api.Group("", middleware.RequireMember(), deps.UsersHandler.ResolveActor())
	deps.UsersHandler.RegisterRoutes(member)
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.RegisterRoutes(member)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(member)
	}
	if deps.GapHandler != nil {
		deps.GapHandler.RegisterRoutes(member)
	}
	if deps.PlanHandler != nil {
		deps.PlanHandler.RegisterRoutes(member)
	}
	if deps.LearningHandler != nil {
		deps.LearningHandler.RegisterRoutes(member)
	}
	if deps.EmployeeHandler != nil {
		deps.EmployeeHandler.RegisterRoutes(member)
	}
	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.RegisterRoutes(member)
	}

	return r
}

func healthHandler(sqlDB *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storage := "memory"
		if sqlDB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				respond.Error(c, http.StatusServiceUnavailable, "db_unavailable", "database unreachable", nil)
				return
			}
			storage = "postgres"
		}
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "storage": storage})
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
