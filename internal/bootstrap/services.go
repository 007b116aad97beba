package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/socialgrid/socialgrid/config"
	"github.com/socialgrid/socialgrid/internal/core"
	"github.com/socialgrid/socialgrid/internal/data"
	"github.com/socialgrid/socialgrid/internal/password"
	"github.com/socialgrid/socialgrid/internal/service"
	"github.com/socialgrid/socialgrid/internal/token"
)

// ServiceContainer holds the wired application services and their backing
// resources.
type ServiceContainer struct {
	Config config.AppConfig
	Logger *slog.Logger

	DB    *sql.DB
	Redis *redis.Client

	Auth       *service.AuthService
	Users      *service.UserService
	Posts      *service.PostService
	Statistics *service.StatisticsService
}

// NewServices connects storage and wires the service graph.
func NewServices(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*ServiceContainer, error) {
	if err := EnsureSigningSecret(&cfg, logger); err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(cfg.Auth.Secret, cfg.Auth.TTL)
	if err != nil {
		return nil, fmt.Errorf("build token codec: %w", err)
	}

	db, err := ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}

	redisClient, err := ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	userRepo := data.NewUserRepo(db)
	postRepo := data.NewPostRepo(db)

	var cacheRepo core.CacheRepository
	if redisClient != nil {
		cacheRepo = data.NewRedisCacheRepo(redisClient)
	}

	hasher := password.NewBcryptHasher(bcrypt.DefaultCost)

	return &ServiceContainer{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:  userRepo,
			Hasher: hasher,
			Codec:  codec,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			Users:  userRepo,
			Hasher: hasher,
		}),
		Posts: service.NewPostService(service.PostServiceOptions{
			Posts: postRepo,
		}),
		Statistics: service.NewStatisticsService(service.StatisticsServiceOptions{
			Posts:    postRepo,
			Cache:    cacheRepo,
			CacheTTL: cfg.Cache.PopularPostsTTL,
			Logger:   logger,
		}),
	}, nil
}

// Close releases the container's backing resources.
func (c *ServiceContainer) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("close redis", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Error("close database", "error", err)
		}
	}
}

// RunServicesWithShutdown starts the HTTP server and blocks until SIGINT or
// SIGTERM, then shuts everything down gracefully. A listener failure also
// triggers shutdown and is returned to the caller.
func RunServicesWithShutdown(ctx context.Context, services *ServiceContainer) error {
	defer services.Close()

	srv := NewHTTPServer(services)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		services.Logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		waitForShutdown(gctx, services.Logger)
		ShutdownHTTPServer(srv, services.Logger)
		return nil
	})

	return g.Wait()
}

func waitForShutdown(ctx context.Context, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down")
	}
}
