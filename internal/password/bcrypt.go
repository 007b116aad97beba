// Package password provides the bcrypt credential hashing scheme used at
// registration and login.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/socialgrid/socialgrid/internal/ports"
)

// BcryptHasher implements ports.PasswordHasher with bcrypt's salted,
// deliberately slow comparison.
type BcryptHasher struct {
	cost int
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher returns a hasher at the given cost; values outside
// bcrypt's supported range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a salted bcrypt hash from the plaintext password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash. All failure
// modes (wrong password, corrupt hash) collapse to false; the caller never
// learns which.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
