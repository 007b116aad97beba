package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/socialgrid/socialgrid/internal/domain/auth"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
	maxEmailLen    = 255
)

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Roles        []auth.Role `json:"roles"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims whitespace from identity fields. Passwords are taken as-is.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks the registration payload.
func (r *RegisterRequest) Validate() error {
	if err := validateUsername(r.Username); err != nil {
		return err
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

// UpdateUserRequest carries a profile update. Password is optional; when
// empty the stored hash is kept.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Normalize trims whitespace from identity fields.
func (r *UpdateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks the update payload.
func (r *UpdateUserRequest) Validate() error {
	if err := validateUsername(r.Username); err != nil {
		return err
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password != "" {
		return validatePassword(r.Password)
	}
	return nil
}

// Credentials is a login attempt.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func validateUsername(username string) error {
	if username == "" {
		return apperrors.ValidationField("username", "username is required")
	}
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return apperrors.ValidationField("username", "username must be between 3 and 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if len(email) > maxEmailLen {
		return apperrors.ValidationField("email", "email is too long")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ValidationField("email", "email is not a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return apperrors.ValidationField("password", "password must be at least 8 characters")
	}
	return nil
}
