package service

import (
	"context"
	"fmt"

	"github.com/socialgrid/socialgrid/internal/core"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
	"github.com/socialgrid/socialgrid/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users  core.UserRepository
	Hasher ports.PasswordHasher
}

// UserService orchestrates account reads and profile management.
type UserService struct {
	users  core.UserRepository
	hasher ports.PasswordHasher
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users, hasher: opts.Hasher}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return s.users.List(ctx, limit, offset)
}

// Update replaces the profile fields of a user. The password is rehashed
// only when the request carries one.
func (s *UserService) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("update payload is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var hash string
	if req.Password != "" {
		var err error
		hash, err = s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	return s.users.Update(ctx, id, req, hash)
}

// Delete removes a user and, through the schema, all their posts, likes and
// comments. Returns false when the user does not exist.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.users.Delete(ctx, id)
}
