package service

import (
	"context"

	"github.com/socialgrid/socialgrid/internal/core"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

// PostServiceOptions groups dependencies for PostService.
type PostServiceOptions struct {
	Posts core.PostRepository
}

// PostService orchestrates post publishing, feeds, likes and comments.
type PostService struct {
	posts core.PostRepository
}

// NewPostService constructs a new PostService.
func NewPostService(opts PostServiceOptions) *PostService {
	return &PostService{posts: opts.Posts}
}

// Create publishes a post for the given author.
func (s *PostService) Create(ctx context.Context, authorID string, req *model.CreatePostRequest) (*model.Post, error) {
	if req == nil {
		return nil, apperrors.Validation("post payload is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.posts.Create(ctx, authorID, req)
}

// GetByID retrieves a post with its comments.
func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Update replaces the content of a post.
func (s *PostService) Update(ctx context.Context, id string, req *model.UpdatePostRequest) (*model.Post, error) {
	if req == nil {
		return nil, apperrors.Validation("post payload is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.posts.Update(ctx, id, req)
}

// Delete removes a post. Returns false when the post does not exist.
func (s *PostService) Delete(ctx context.Context, id string) (bool, error) {
	return s.posts.Delete(ctx, id)
}

// List returns a page of all posts, newest first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	return s.posts.List(ctx, limit, offset)
}

// Feed returns a page of posts ordered by the given filter.
func (s *PostService) Feed(ctx context.Context, filter model.FeedFilter, limit, offset int) ([]*model.Post, error) {
	return s.posts.Feed(ctx, filter, limit, offset)
}

// ListByUser returns a single author's posts with optional time bounds.
func (s *PostService) ListByUser(ctx context.Context, userID string, opts *model.UserPostsOptions) ([]*model.Post, error) {
	if opts != nil && opts.Start != nil && opts.End != nil && opts.End.Before(*opts.Start) {
		return nil, apperrors.ValidationField("endTime", "endTime must not be before startTime")
	}
	return s.posts.ListByUser(ctx, userID, opts)
}

// ToggleLike likes or unlikes a post on behalf of the given user.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*model.LikeResult, error) {
	return s.posts.ToggleLike(ctx, postID, userID)
}

// AddComment appends a comment to a post.
func (s *PostService) AddComment(ctx context.Context, postID, authorID string, req *model.AddCommentRequest) (*model.Comment, error) {
	if req == nil {
		return nil, apperrors.Validation("comment payload is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.posts.AddComment(ctx, postID, authorID, req)
}

// OwnerID resolves the author of a post for ownership checks.
func (s *PostService) OwnerID(ctx context.Context, postID string) (string, error) {
	return s.posts.OwnerID(ctx, postID)
}
