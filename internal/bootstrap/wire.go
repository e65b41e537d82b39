package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
	"github.com/mercata/storefront/services/user-service/internal/config"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/db/postgres"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/memory"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/redis"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/security"
	"github.com/mercata/storefront/services/user-service/internal/logger"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/handlers"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/router"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server *http.Server

	cleanups []func()
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
}

func (a *App) onClose(fn func()) {
	a.cleanups = append(a.cleanups, fn)
}

// NewServer wires the service from environment configuration.
func NewServer() (*App, error) {
	config.LoadDotenv()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewApp(cfg)
}

// NewApp wires the service from an explicit config. The database is
// required; Redis and RabbitMQ degrade to no-ops when absent.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{}

	db, err := config.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, err
	}
	app.onClose(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		app.Close()
		return nil, err
	}

	repo := postgres.NewUserRepo(db)
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	if cfg.Env == "dev" {
		postgres.SeedUsers(ctx, repo, hasher)
	}

	var pub auth.EventPublisher = memory.NewNoopPublisher()
	if cfg.RabbitURL != "" {
		rp, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable, account events disabled")
		} else {
			pub = rp
			app.onClose(func() { _ = rp.Close() })
		}
	}

	var limiter *redis.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		rc := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
			_ = rc.Close()
		} else {
			limiter = redis.NewFixedWindowLimiter(rc)
			app.onClose(func() { _ = rc.Close() })
		}
	}

	svc := auth.NewService(repo, hasher, signer, pub, auth.Config{
		SessionTTL: cfg.SessionTTL,
	}).WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("auth audit")
	})

	secureCookie := cfg.Env == "prod"
	h := router.New(router.Deps{
		Users:       handlers.NewUserHandler(svc, secureCookie),
		Health:      handlers.NewHealthHandler(db),
		Signer:      signer,
		UserRepo:    repo,
		Limiter:     limiter,
		CORSOrigins: cfg.CORSOrigins,
	})

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return app, nil
}
