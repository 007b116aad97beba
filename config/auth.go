package config

import "time"

// Token TTL guardrails. The TTL bounds keep a fat-fingered env value from
// issuing effectively-permanent or instantly-dead tokens.
const (
	minTokenTTL     = time.Minute
	maxTokenTTL     = 30 * 24 * time.Hour
	defaultTokenTTL = time.Hour
)

// AuthConfig groups token signing configuration.
//
// The signing secret is the sole trust anchor for token validity. It is
// read once at startup, base64-decoded by the token codec, and never logged.
type AuthConfig struct {
	// Secret is the base64-encoded HMAC signing secret (JWT_SECRET).
	// Required in production; a development fallback is injected by
	// bootstrap when DEV=true.
	Secret string `env:"SECRET"`

	// TTL is the lifetime of an issued token (JWT_TTL).
	// Accepts Go duration syntax, e.g. "1h", "30m".
	TTL time.Duration `env:"TTL" envDefault:"1h"`
}

// Sanitize clamps the token TTL to a sane range.
func (a *AuthConfig) Sanitize() {
	if a.TTL <= 0 {
		a.TTL = defaultTokenTTL
	}
	if a.TTL < minTokenTTL {
		a.TTL = minTokenTTL
	}
	if a.TTL > maxTokenTTL {
		a.TTL = maxTokenTTL
	}
}
