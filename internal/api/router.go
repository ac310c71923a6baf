package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskwell/todo-system/internal/api/handler"
	"github.com/taskwell/todo-system/internal/api/middleware"
	"github.com/taskwell/todo-system/internal/core/service"
	mongodb "github.com/taskwell/todo-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskwell/todo-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todo"))

	// --- Dependencies ---
	denylist := redisdb.NewTokenDenylist(rdb)

	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, denylist, jwtSecret, tokenTTL, log)
	authHandler := handler.NewAuthHandler(authService)

	taskRepo := mongodb.NewTaskRepository(db)
	taskService := service.NewTaskService(taskRepo, log)
	taskHandler := handler.NewTaskHandler(taskService)

	authMiddleware := middleware.Auth(jwtSecret, denylist)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, authMiddleware)
	e.POST("/api/auth/logout", authHandler.Logout, authMiddleware)

	// --- Task routes (all owner-scoped, all behind auth) ---
	tasks := e.Group("/api/tasks", authMiddleware)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.PUT("/:id/restore", taskHandler.Restore)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
