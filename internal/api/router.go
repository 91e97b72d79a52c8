package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/georgemunganga/ntumai-core/internal/api/handler"
	"github.com/georgemunganga/ntumai-core/internal/api/middleware"
	"github.com/georgemunganga/ntumai-core/internal/core/domain"
	"github.com/georgemunganga/ntumai-core/internal/core/service"
	mongodb "github.com/georgemunganga/ntumai-core/internal/infrastructure/db/mongo"
	redisdb "github.com/georgemunganga/ntumai-core/internal/infrastructure/db/redis"
)

// Options bundles the dependencies and settings the router needs.
type Options struct {
	JWTSecret  string
	TokenTTL   time.Duration
	RefreshTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ntumai"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	refreshStore := redisdb.NewRefreshStore(rdb, opts.RefreshTTL)
	authService := service.NewAuthService(userRepo, refreshStore, opts.JWTSecret, opts.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	me := e.Group("/auth", authMiddleware)
	me.GET("/me", authHandler.Me)
	me.PATCH("/me", authHandler.UpdateMe)
	me.GET("/features", authHandler.Features)

	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users/:id", authHandler.User)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
