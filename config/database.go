package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"socialgrid"`
	Password string `env:"PASSWORD" envDefault:"socialgrid"`
	Name     string `env:"NAME"     envDefault:"socialgrid"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	// Enabled toggles the Redis-backed statistics cache. The service runs
	// without Redis when disabled; statistics reads go straight to Postgres.
	Enabled bool `env:"ENABLED" envDefault:"true"`
}

// CacheConfig contains cache TTLs for the statistics read paths.
type CacheConfig struct {
	// PopularPostsTTL is how long the popular-posts ranking may be served
	// from cache before being recomputed.
	PopularPostsTTL time.Duration `env:"CACHE_POPULAR_POSTS_TTL" envDefault:"30s"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.PopularPostsTTL <= 0 {
		c.PopularPostsTTL = 30 * time.Second
	}
}
