package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

const maxPostContentLen = 5000

// FeedFilter controls ordering of feed and per-user post listings.
type FeedFilter string

const (
	FeedFilterTime       FeedFilter = "time"
	FeedFilterPopularity FeedFilter = "popularity"
)

// ParseFeedFilter normalizes a filter string, defaulting to time ordering
// when empty, and reports whether it is supported.
func ParseFeedFilter(value string) (FeedFilter, bool) {
	f := FeedFilter(strings.ToLower(strings.TrimSpace(value)))
	switch f {
	case "":
		return FeedFilterTime, true
	case FeedFilterTime, FeedFilterPopularity:
		return f, true
	default:
		return "", false
	}
}

// Post represents a published post. AuthorUsername is denormalized from the
// author record at read time. Comments is populated on detail reads only.
type Post struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	LikeCount      int       `json:"like_count"`
	CommentCount   int       `json:"comment_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Comments []Comment `json:"comments,omitempty"`
}

// CreatePostRequest carries the fields needed to publish a post.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// Validate checks the post payload.
func (r *CreatePostRequest) Validate() error {
	return validatePostContent(r.Content)
}

// UpdatePostRequest carries a post edit.
type UpdatePostRequest struct {
	Content string `json:"content"`
}

// Validate checks the edit payload.
func (r *UpdatePostRequest) Validate() error {
	return validatePostContent(r.Content)
}

// LikeResult reports the outcome of a like toggle.
type LikeResult struct {
	PostID    string `json:"post_id"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"like_count"`
}

// UserPostsOptions controls per-user post listings: ordering plus optional
// inclusive time bounds on creation time.
type UserPostsOptions struct {
	Filter FeedFilter
	Start  *time.Time
	End    *time.Time
}

func validatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperrors.ValidationField("content", "content is required")
	}
	if utf8.RuneCountInString(content) > maxPostContentLen {
		return apperrors.ValidationField("content", "content must be at most 5000 characters")
	}
	return nil
}
