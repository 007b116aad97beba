package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "socialgrid", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, time.Hour, cfg.Auth.TTL)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("JWT_SECRET", "c2VjcmV0")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("HTTP_ADDR", ":9090")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Equal(t, "c2VjcmV0", cfg.Auth.Secret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TTL)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestAuthConfig_Sanitize_ClampsTTL(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero becomes default", 0, time.Hour},
		{"negative becomes default", -time.Minute, time.Hour},
		{"below floor clamps up", time.Second, time.Minute},
		{"above ceiling clamps down", 365 * 24 * time.Hour, 30 * 24 * time.Hour},
		{"in range unchanged", 2 * time.Hour, 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AuthConfig{TTL: tt.in}
			a.Sanitize()
			assert.Equal(t, tt.want, a.TTL)
		})
	}
}

func TestAppConfig_DetectDevMode_NodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
