package core

import (
	"context"
	"time"

	"github.com/socialgrid/socialgrid/internal/domain/model"
	"github.com/socialgrid/socialgrid/internal/ports"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user data operations.
// It embeds ports.UserStore so the authentication layer can resolve a
// principal from a username without depending on the full repository surface.
type UserRepository interface {
	ports.UserStore

	Create(ctx context.Context, req *model.RegisterRequest, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	Update(ctx context.Context, id string, req *model.UpdateUserRequest, passwordHash string) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PostRepository defines the interface for post, like and comment data operations.
type PostRepository interface {
	Create(ctx context.Context, authorID string, req *model.CreatePostRequest) (*model.Post, error)
	// GetByID returns the post together with its comments ordered oldest first.
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, id string, req *model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*model.Post, error)
	// Feed lists posts ordered by the given filter, newest or most liked first.
	Feed(ctx context.Context, filter model.FeedFilter, limit, offset int) ([]*model.Post, error)
	ListByUser(ctx context.Context, userID string, opts *model.UserPostsOptions) ([]*model.Post, error)

	// OwnerID returns the author id of a post without loading the full row.
	OwnerID(ctx context.Context, postID string) (string, error)

	// ToggleLike likes the post on behalf of userID, or removes the like if it
	// already exists. Returns the resulting like count and whether the post is
	// now liked by the user.
	ToggleLike(ctx context.Context, postID, userID string) (*model.LikeResult, error)

	AddComment(ctx context.Context, postID, authorID string, req *model.AddCommentRequest) (*model.Comment, error)

	// PopularPosts returns posts ranked by like count for the statistics endpoints.
	PopularPosts(ctx context.Context, limit int) ([]*model.PostStatistics, error)
	// UserActivity aggregates post, like and comment counts for a single user.
	UserActivity(ctx context.Context, userID string) (*model.UserActivity, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}
