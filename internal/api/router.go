package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greencode/platform/internal/api/handler"
	"github.com/greencode/platform/internal/api/middleware"
	"github.com/greencode/platform/internal/core/access"
	"github.com/greencode/platform/internal/core/service"
	"github.com/greencode/platform/internal/infrastructure/config"
	mongodb "github.com/greencode/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/greencode/platform/internal/infrastructure/db/redis"
	"github.com/greencode/platform/internal/infrastructure/http/handlers"
	"github.com/greencode/platform/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Audit workers run until ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("greencode"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	userStore := redisdb.NewUserCache(rdb, users, cfg.Auth.UserCacheTTL)

	auditRepo := mongodb.NewAuditRepository(db)
	auditDispatcher := queue.NewDispatcher(cfg.Auth.AuditWorkers, auditRepo, log)
	auditDispatcher.Start(ctx)

	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL)
	authService := service.NewAuthService(userStore, tokenService, auditDispatcher, log)
	authHandler := handler.NewAuthHandler(authService)

	projectRepo := mongodb.NewProjectRepository(db)
	projectService := service.NewProjectService(projectRepo, log)
	projectHandler := handler.NewProjectHandler(projectService)

	engine := access.NewEngine()
	authenticated := middleware.Auth(tokenService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Project routes ---
	// Role-level permission is gated here; moderators and admins pass the
	// -own gates through inheritance and skip ownership checks in the service.
	projects := e.Group("/projects", authenticated)
	projects.GET("", projectHandler.List, middleware.Require(engine, access.ProjectRead))
	projects.POST("", projectHandler.Create, middleware.Require(engine, access.ProjectCreate))
	projects.GET("/:id", projectHandler.Get, middleware.Require(engine, access.ProjectRead))
	projects.PATCH("/:id", projectHandler.Update, middleware.Require(engine, access.ProjectUpdateOwn))
	projects.DELETE("/:id", projectHandler.Delete, middleware.Require(engine, access.ProjectDeleteOwn))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
