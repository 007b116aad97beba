package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

const maxCommentContentLen = 1000

// Comment represents a comment attached to a post.
type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// AddCommentRequest carries the fields needed to comment on a post.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// Validate checks the comment payload.
func (r *AddCommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return apperrors.ValidationField("content", "content is required")
	}
	if utf8.RuneCountInString(r.Content) > maxCommentContentLen {
		return apperrors.ValidationField("content", "content must be at most 1000 characters")
	}
	return nil
}
