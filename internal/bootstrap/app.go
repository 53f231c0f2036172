package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"succession-backend/internal/analytics"
	"succession-backend/internal/assessments"
	"succession-backend/internal/chat"
	"succession-backend/internal/chat/responder"
	"succession-backend/internal/employees"
	"succession-backend/internal/gap"
	"succession-backend/internal/learning"
	"succession-backend/internal/plans"
	"succession-backend/internal/profiles"
	"succession-backend/internal/seed"
	"succession-backend/internal/shared/config"
	"succession-backend/internal/shared/lock"
	"succession-backend/internal/shared/server"
	"succession-backend/internal/shared/server/middleware"
	"succession-backend/internal/shared/storage/db"
	"succession-backend/internal/shared/telemetry"
	"succession-backend/internal/shared/tracing"
	"succession-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Locker lock.Locker

	UsersService      *users.Service
	AssessmentService *assessments.Service
	ProfileService    *profiles.Service
	PlanService       *plans.Service
	GapService        *gap.Service
	ChatService       *chat.Service
	LearningService   *learning.Service
	EmployeeService   *employees.Service
	AnalyticsService  *analytics.Service

	UsersHandler      *users.Handler
	AssessmentHandler *assessments.Handler
	ProfileHandler    *profiles.Handler
	PlanHandler       *plans.Handler
	GapHandler        *gap.Handler
	ChatHandler       *chat.Handler
	LearningHandler   *learning.Handler
	EmployeeHandler   *employees.Handler
	AnalyticsHandler  *analytics.Handler

	closers []func(context.Context) error
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	shutdownTracing, err := tracing.Init(ctx, tracing.Options{
		Exporter:    cfg.TracingExporter,
		Endpoint:    cfg.OTLPEndpoint,
		Environment: cfg.Env,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	app.closers = append(app.closers, shutdownTracing)

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	locker, err := buildLocker(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Locker = locker

	if err := buildServices(app); err != nil {
		return nil, err
	}

	if cfg.SeedOnStart {
		if _, err := app.Seed(ctx, ""); err != nil {
			return nil, err
		}
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		DB:                app.DB,
		UsersHandler:      app.UsersHandler,
		AssessmentHandler: app.AssessmentHandler,
		ProfileHandler:    app.ProfileHandler,
		GapHandler:        app.GapHandler,
		PlanHandler:       app.PlanHandler,
		ChatHandler:       app.ChatHandler,
		LearningHandler:   app.LearningHandler,
		EmployeeHandler:   app.EmployeeHandler,
		AnalyticsHandler:  app.AnalyticsHandler,
		RateLimiter:       middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Seed writes the embedded catalog; sampleUserID, when set, also gets the sample assessment.
func (a *App) Seed(ctx context.Context, sampleUserID string) (seed.Result, error) {
	catalog, err := seed.Load()
	if err != nil {
		return seed.Result{}, err
	}
	return seed.Apply(ctx, catalog, seed.Targets{
		Profiles:    a.ProfileService,
		Learning:    a.LearningService,
		Assessments: a.AssessmentService,
	}, seed.Options{SampleUserID: sampleUserID})
}

// Close releases the tracer provider, the lock backend and the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func (a *App) addCloser(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func buildLocker(ctx context.Context, cfg config.Config) (lock.Locker, error) {
	if cfg.LockBackend != "redis" {
		return lock.NewMemoryLocker(), nil
	}
	rl, err := lock.NewRedisLocker(ctx, cfg.RedisAddr)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_locker", map[string]any{"error": err})
			return lock.NewMemoryLocker(), nil
		}
		return nil, err
	}
	return rl, nil
}

func buildServices(app *App) error {
	var (
		userRepo       users.Repo
		assessmentRepo assessments.Repo
		profileRepo    profiles.Repo
		planRepo       plans.Repo
		sessionRepo    gap.SessionRepo
		chatRepo       chat.Repo
		learningRepo   learning.Repo
		employeeRepo   employees.Repo
	)

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		assessmentRepo = &assessments.PGRepo{DB: app.DB}
		profileRepo = &profiles.PGRepo{DB: app.DB}
		planRepo = &plans.PGRepo{DB: app.DB}
		sessionRepo = &gap.PGSessionRepo{DB: app.DB}
		chatRepo = &chat.PGRepo{DB: app.DB}
		learningRepo = &learning.PGRepo{DB: app.DB}
		employeeRepo = &employees.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		assessmentRepo = assessments.NewMemoryRepo()
		profileRepo = profiles.NewMemoryRepo()
		planRepo = plans.NewMemoryRepo()
		sessionRepo = gap.NewMemorySessionRepo()
		chatRepo = chat.NewMemoryRepo()
		learningRepo = learning.NewMemoryRepo()
		employeeRepo = employees.NewMemoryRepo()
	}

	if rl, ok := app.Locker.(*lock.RedisLocker); ok {
		app.addCloser(func(context.Context) error { return rl.Close() })
	}

	userSvc := users.NewService(userRepo)
	assessmentSvc := assessments.NewService(assessmentRepo)
	profileSvc := profiles.NewService(profileRepo)
	planSvc := plans.NewService(planRepo)
	learningSvc := learning.NewService(learningRepo)

	app.UsersService = userSvc
	app.AssessmentService = assessmentSvc
	app.ProfileService = profileSvc
	app.PlanService = planSvc
	app.LearningService = learningSvc
	app.GapService = gap.NewService(assessmentSvc, profileSvc, planSvc, sessionRepo)
	app.ChatService = chat.NewService(chatRepo, app.Locker, responder.New(nil))
	app.EmployeeService = employees.NewService(userSvc, employeeRepo)
	app.AnalyticsService = analytics.NewService(planSvc, learningSvc, userSvc)

	app.UsersHandler = users.NewHandler(userSvc)
	app.AssessmentHandler = assessments.NewHandler(assessmentSvc)
	app.ProfileHandler = profiles.NewHandler(profileSvc)
	app.PlanHandler = plans.NewHandler(planSvc)
	app.GapHandler = gap.NewHandler(app.GapService)
	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.LearningHandler = learning.NewHandler(learningSvc)
	app.EmployeeHandler = employees.NewHandler(app.EmployeeService)
	app.AnalyticsHandler = analytics.NewHandler(app.AnalyticsService)

	if app.UsersHandler == nil || app.GapHandler == nil || app.ChatHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
