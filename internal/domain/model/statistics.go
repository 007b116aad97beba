package model

// PostStatistics summarizes a post's engagement for the popular-posts ranking.
type PostStatistics struct {
	PostID       string `json:"post_id"`
	Content      string `json:"content"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
}

// UserActivity aggregates a user's contribution counts. LikeCount is the
// number of likes received across the user's posts, not likes given.
type UserActivity struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	PostCount    int64  `json:"post_count"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
}
