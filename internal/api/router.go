package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	_ "github.com/sssf/cats-api/docs"
	"github.com/sssf/cats-api/internal/api/handler"
	"github.com/sssf/cats-api/internal/api/middleware"
	"github.com/sssf/cats-api/internal/core/ports"
)

const serviceName = "cats-api"

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth    ports.AuthService
	Users   ports.UserService
	Cats    ports.CatService
	Tokens  ports.TokenValidator
	Limiter ports.LoginLimiter
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(otelecho.Middleware(serviceName))
	e.Use(requestLogger(log))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Limiter, log)
	userHandler := handler.NewUserHandler(deps.Users)
	catHandler := handler.NewCatHandler(deps.Cats)
	healthHandler := handler.NewHealthHandler(deps.Checks)

	// Identity is optional at this level: anonymous mutations reach the
	// services and are refused by the authorization policy.
	authenticate := middleware.Authenticate(deps.Tokens)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/user", authenticate)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Register)
	users.PUT("", userHandler.UpdateCurrent)
	users.DELETE("", userHandler.DeleteCurrent)
	users.GET("/token", userHandler.CheckToken, middleware.RequireIdentity())
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Cat routes ---
	cats := e.Group("/cat", authenticate)
	cats.GET("", catHandler.List)
	cats.POST("", catHandler.Create)
	cats.GET("/:id", catHandler.Get)
	cats.PUT("/:id", catHandler.Update)
	cats.DELETE("/:id", catHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
