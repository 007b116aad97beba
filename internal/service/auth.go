package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/socialgrid/socialgrid/internal/core"
	"github.com/socialgrid/socialgrid/internal/domain/auth"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
	"github.com/socialgrid/socialgrid/internal/ports"
	"github.com/socialgrid/socialgrid/internal/token"
)

var (
	// ErrBadCredentials is returned by Login for unknown usernames and wrong
	// passwords alike. Callers must not be able to tell the two apart.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrInvalidToken is returned by Resolve for tokens that fail signature
	// or structural verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned by Resolve for well-signed tokens past
	// their expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrUnknownSubject is returned by Resolve when the token subject no
	// longer maps to an account.
	ErrUnknownSubject = errors.New("unknown token subject")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  core.UserRepository
	Hasher ports.PasswordHasher
	Codec  *token.Codec
	Now    func() time.Time
}

// AuthService implements login, registration and bearer token resolution.
// Tokens carry identity only; roles are read from the account on every
// resolution so revocations take effect immediately.
type AuthService struct {
	users  core.UserRepository
	hasher ports.PasswordHasher
	codec  *token.Codec
	now    func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:  opts.Users,
		hasher: opts.Hasher,
		codec:  opts.Codec,
		now:    now,
	}
}

// LoginResult is a successful authentication response.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Login verifies credentials and issues a signed token. Unknown usernames
// and wrong passwords both collapse into ErrBadCredentials; the password is
// still checked against a dummy hash on unknown usernames so the two cases
// take comparable time.
func (s *AuthService) Login(ctx context.Context, creds *model.Credentials) (*LoginResult, error) {
	if creds == nil || creds.Username == "" || creds.Password == "" {
		return nil, ErrBadCredentials
	}

	user, err := s.users.LoadUser(ctx, creds.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.hasher.Verify(creds.Password, dummyHash)
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}

	now := s.now().UTC()
	signed, err := s.codec.Issue(user.Username, user.Roles, now)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token:     signed,
		ExpiresAt: now.Add(s.codec.TTL()),
		User:      user,
	}, nil
}

// Register creates a new account with the USER role and returns it.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("registration payload is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, req, hash)
}

// Resolve verifies a bearer token and returns the principal it identifies.
// Signature and structure are checked first, then expiry against the current
// clock, then the subject is re-read from the account store so the returned
// roles are current rather than whatever they were at issuance.
func (s *AuthService) Resolve(ctx context.Context, raw string) (*auth.Principal, error) {
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !claims.ExpiresAt.After(s.now()) {
		return nil, ErrTokenExpired
	}

	user, err := s.users.LoadUser(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	// A stored account whose username diverges from the token subject means
	// the token no longer names this identity.
	if user.Username != claims.Subject {
		return nil, ErrInvalidToken
	}

	return &auth.Principal{
		UserID:  user.ID,
		Subject: user.Username,
		Roles:   user.Roles,
	}, nil
}

// dummyHash is a bcrypt hash of a random string nobody knows. Verifying
// against it keeps login timing uniform for unknown usernames.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye1J6XJbQz8bbkT7xKkCfBpiFCbQU1s2S"
