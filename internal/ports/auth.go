package ports

// Package ports defines interfaces (hexagonal ports) for the collaborators
// the authentication core depends on. Implementations live in internal/data
// and internal/password; orchestration in internal/service.

import (
	"context"

	"github.com/socialgrid/socialgrid/internal/domain/model"
)

// UserStore is the external user-lookup collaborator of the identity
// resolver. LoadUser returns a NotFound application error when no record
// exists for the username. The lookup may block on the backing store; it
// must honor ctx cancellation and is the only suspension point on the
// authentication path.
type UserStore interface {
	LoadUser(ctx context.Context, username string) (*model.User, error)
}

// PasswordHasher hashes credentials at registration and verifies them at
// login. The scheme is opaque to the auth core.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)
	// Verify reports whether the plaintext matches the stored hash.
	Verify(password, hash string) bool
}
