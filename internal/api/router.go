package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobdesk/portal-api/internal/api/handler"
	"github.com/jobdesk/portal-api/internal/api/middleware"
	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/service"
	"github.com/jobdesk/portal-api/internal/infrastructure/config"
	mongodb "github.com/jobdesk/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jobdesk/portal-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// events is the audit dispatcher; it is constructed (and started) by the
// caller because its workers follow the process lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, events handler.EventSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	employerRepo := mongodb.NewEmployerRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)

	throttle := redisdb.NewLoginThrottle(rdb, redisdb.ThrottleConfig{
		MaxFailures:  cfg.Throttle.MaxFailures,
		Window:       cfg.Throttle.Window,
		LockDuration: cfg.Throttle.LockDuration,
	})

	authService := service.NewAuthService(userRepo, throttle, log)
	sessionService := service.NewSessionService(sessionRepo, cfg.Session.Lifetime, log)
	employerService := service.NewEmployerService(employerRepo, log)

	cookies := handler.CookieSettings{
		Secure:   cfg.Session.CookieSecure,
		Lifetime: cfg.Session.Lifetime,
	}
	authHandler := handler.NewAuthHandler(authService, sessionService, events, cookies, cfg.LoginURL, log)
	employerHandler := handler.NewEmployerHandler(employerService)

	requireSession := middleware.RequireSession(sessionService, cfg.LoginURL)
	requireEmployer := middleware.RequireRole(domain.RoleEmployer, cfg.DashboardURL)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/logout", authHandler.Logout)

	// --- Protected routes ---
	e.GET("/me", authHandler.Me, requireSession)

	employer := e.Group("/employer", requireSession, requireEmployer)
	employer.GET("/profile", employerHandler.Details)
	employer.PUT("/profile", employerHandler.UpdateProfile)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
