package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/socialgrid/socialgrid/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting socialgrid",
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
		"http_addr", cfg.HTTP.Addr,
		"cache_enabled", cfg.Redis.Enabled,
		"dev", cfg.IsDev)

	services, err := bootstrap.NewServices(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return bootstrap.RunServicesWithShutdown(ctx, services)
}
