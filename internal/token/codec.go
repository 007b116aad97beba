// Package token implements the signed, expiring identity token codec.
//
// Tokens are compact JWTs signed with HMAC-SHA256 under a single
// process-wide secret. The payload carries identity only (subject, issued-at,
// expires-at). Authority is deliberately not embedded, so role changes take
// effect on the next request without reissuing tokens.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/socialgrid/socialgrid/internal/domain/auth"
)

var (
	// ErrMalformed is returned when a token's structure cannot be parsed.
	ErrMalformed = errors.New("token malformed")
	// ErrInvalidSignature is returned when a token's signature does not
	// verify against the configured secret.
	ErrInvalidSignature = errors.New("token signature invalid")
)

// Claims is the verified payload of a decoded token. ExpiresAt is surfaced
// to the caller unchecked: freshness policy belongs to the caller, not the
// codec.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec issues and decodes identity tokens. Immutable after construction
// and safe for concurrent use; the secret is the sole trust anchor and is
// never exposed or logged.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a codec from a base64-encoded secret and a token TTL.
func NewCodec(secretB64 string, ttl time.Duration) (*Codec, error) {
	if secretB64 == "" {
		return nil, errors.New("signing secret is required")
	}
	secret, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, fmt.Errorf("decode signing secret: %w", err)
	}
	if len(secret) < 32 {
		return nil, errors.New("signing secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Codec{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue creates a signed token for the subject, valid from now until
// now + TTL. Roles are validated against the closed enumeration but are not
// embedded in the payload. Deterministic for identical inputs and now.
func (c *Codec) Issue(subject string, roles []auth.Role, now time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	for _, role := range roles {
		if !role.Valid() {
			return "", fmt.Errorf("unknown role tag %q", role)
		}
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode parses the token and verifies its signature over header+payload
// before trusting any field. It does not check expiry; callers compare
// Claims.ExpiresAt against their own clock so freshness policy can vary.
func (c *Codec) Decode(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expiry is the caller's policy; signature and structure only here.
		jwt.WithoutClaimsValidation(),
	)

	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, classifyParseError(err)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Claims{}, ErrMalformed
	}

	out := Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

// classifyParseError collapses the parser's error surface onto the codec's
// two failure modes. Signature failures (including alg confusion) must not
// be reported as structural ones.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
