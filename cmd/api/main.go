package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/profile-push-service/internal/api/http"
	"github.com/spec-kit/profile-push-service/internal/api/http/handlers"
	"github.com/spec-kit/profile-push-service/internal/auth"
	"github.com/spec-kit/profile-push-service/internal/config"
	"github.com/spec-kit/profile-push-service/internal/observability"
	"github.com/spec-kit/profile-push-service/internal/persistence"
	"github.com/spec-kit/profile-push-service/internal/push"
	"github.com/spec-kit/profile-push-service/internal/ratelimit"
	"github.com/spec-kit/profile-push-service/internal/repository"
	"github.com/spec-kit/profile-push-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openDocumentStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open document store", zap.String("driver", cfg.DocStore.Driver), zap.Error(err))
	}
	defer closeStore()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	sender, err := newSender(ctx, cfg.Push, logger)
	if err != nil {
		logger.Fatal("failed to init push sender", zap.Error(err))
	}

	users := cfg.DocStore.UserCollection
	profileService := service.NewProfileService(store, users, logger)
	tokenService := service.NewTokenService(store, users, logger)
	messageService := service.NewMessageService(sender, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	metrics := observability.NewMetrics()

	var limiter httptransport.RateLimiter
	if cfg.RateLimit.Messages > 0 {
		limiter = ratelimit.New(redis.Client, "ratelimit:messages:", cfg.RateLimit.Messages, cfg.RateLimit.Window())
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"docstore": store,
			"redis":    redis,
		}, metrics),
		Profiles:       handlers.NewProfilesHandler(profileService, tokenService),
		Messages:       handlers.NewMessagesHandler(messageService),
		AuthMiddleware: auth.NewAuthMiddleware(tokenManager),
		MessageLimiter: limiter,
		Logger:         logger,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openDocumentStore connects the configured backend and returns its closer.
func openDocumentStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.DocumentStore, func(), error) {
	switch cfg.DocStore.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return repository.NewPostgresDocumentStore(pg.PoolHandle()), pg.Close, nil
	case config.DriverMemory:
		logger.Warn("using in-memory document store; data is lost on exit")
		return repository.NewMemoryDocumentStore(), func() {}, nil
	default:
		mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoDocumentStore(mongo.DB), func() { mongo.Close(context.Background()) }, nil
	}
}

func newSender(ctx context.Context, cfg config.PushConfig, logger *zap.Logger) (push.Sender, error) {
	if cfg.CredentialsFile == "" {
		logger.Warn("PUSH_CREDENTIALS_FILE not set; push messages are only logged")
		return push.NewLogSender(logger), nil
	}
	return push.NewFCMSender(ctx, cfg)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
