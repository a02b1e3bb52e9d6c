package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/erptelco/backoffice/internal/api/handler"
	"github.com/erptelco/backoffice/internal/api/middleware"
	"github.com/erptelco/backoffice/internal/core/service"
	"github.com/erptelco/backoffice/internal/core/token"
	pgrepo "github.com/erptelco/backoffice/internal/infrastructure/db/postgres"
	redisinfra "github.com/erptelco/backoffice/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *goredis.Client, codec *token.Codec, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Dependencies ---
	userRepo := pgrepo.NewUserRepository(pool)
	customerRepo := pgrepo.NewCustomerRepository(pool)
	throttle := redisinfra.NewLoginThrottle(rdb, 0, 0)

	authService := service.NewAuthService(userRepo, userRepo, codec, throttle, logger)
	customerService := service.NewCustomerService(customerRepo, logger)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)

	// The auth gate guards every route except its public bypass list.
	e.Use(middleware.Auth(codec, authService, logger))

	// --- Public routes ---
	e.POST("/users/register", authHandler.Register)
	e.POST("/users/login", authHandler.Login)

	// --- Protected routes ---
	e.GET("/customer/get", customerHandler.Get)
	e.POST("/customer/new", customerHandler.Create)

	// --- Infra (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)               // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)     // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())         // prometheus scrape target

	return e
}
