// @title                       Cats API
// @version                     1.0
// @description                 User and cat records guarded by JWT authentication and ownership-based authorization.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sssf/cats-api/internal/api"
	"github.com/sssf/cats-api/internal/api/handler"
	"github.com/sssf/cats-api/internal/core/ports"
	"github.com/sssf/cats-api/internal/core/service"
	"github.com/sssf/cats-api/internal/infrastructure/config"
	mongodb "github.com/sssf/cats-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sssf/cats-api/internal/infrastructure/db/redis"
	"github.com/sssf/cats-api/internal/infrastructure/memory"
	"github.com/sssf/cats-api/internal/infrastructure/queue"
	"github.com/sssf/cats-api/internal/infrastructure/tracing"
	"github.com/sssf/cats-api/pkg/logger"
)

const (
	serviceName     = "cats-api"
	shutdownTimeout = 15 * time.Second
)

// limiterStore is a login limiter that can also be probed for readiness.
type limiterStore interface {
	ports.LoginLimiter
	Ping(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	if err := run(ctx, cfg); err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	shutdownTracing, err := tracing.Setup(ctx, serviceName, cfg.Tracer.Endpoint)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	var limiter limiterStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login limiter backed by redis")
	} else {
		limiter = memory.NewLoginLimiter(cfg.Login.MaxAttempts, cfg.Login.Window)
		log.Info().Msg("login limiter running in memory")
	}

	tokens, err := service.NewJWTTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)

	userRepo := mongodb.NewUserRepository(db)
	catRepo := mongodb.NewCatRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// Audit writes outlive the request that produced them; the dispatcher
	// gets its own context so shutdown can drain it after the server stops.
	auditCtx, cancelAudit := context.WithCancel(context.Background())
	defer cancelAudit()
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(auditRepo, logger.Component("audit")), logger.Component("dispatcher"))
	dispatcher.Start(auditCtx)

	e := api.NewRouter(api.Dependencies{
		Auth:    service.NewAuthService(userRepo, hasher, tokens, logger.Component("auth")),
		Users:   service.NewUserService(userRepo, hasher, dispatcher, logger.Component("users")),
		Cats:    service.NewCatService(catRepo, userRepo, dispatcher, logger.Component("cats")),
		Tokens:  tokens,
		Limiter: limiter,
		Checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"limiter": limiter.Ping,
		},
	}, logger.Component("http"))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	dispatcher.Close()
	log.Info().Msg("shutdown complete")
	return nil
}
