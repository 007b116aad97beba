// Package bootstrap wires configuration, storage and services into a running
// process.
package bootstrap

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/socialgrid/socialgrid/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// EnsureSigningSecret fills in a throwaway signing secret in development so
// the service starts without setup. Tokens do not survive restarts in that
// mode. Production refuses to start without JWT_SECRET.
func EnsureSigningSecret(cfg *config.AppConfig, logger *slog.Logger) error {
	if cfg.Auth.Secret != "" {
		return nil
	}
	if !cfg.IsDev {
		return errors.New("JWT_SECRET is required outside development mode")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate dev signing secret: %w", err)
	}
	cfg.Auth.Secret = base64.StdEncoding.EncodeToString(buf)
	if logger != nil {
		logger.Warn("using ephemeral development signing secret; tokens will not survive restarts")
	}
	return nil
}
