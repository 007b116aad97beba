package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/socialgrid/socialgrid/internal/data/pgxutil"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

// postSelect returns posts joined with their author plus like and comment
// counts. Denormalized counters are computed at read time so the write path
// never has to keep them in sync.
const postSelect = `
	SELECT p.id, p.author_id, u.username AS author_username, p.content,
	       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id)::int AS like_count,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)::int AS comment_count,
	       p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

const commentSelect = `
	SELECT c.id, c.post_id, c.author_id, u.username AS author_username, c.content, c.created_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

// PostRepo provides database operations for posts, likes and comments.
type PostRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPostRepo creates a new PostRepo with real time provider.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPostRepoWithTimeProvider creates a new PostRepo with a custom time provider (useful for tests).
func NewPostRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PostRepo {
	return &PostRepo{DB: db, timeProvider: tp}
}

// Create inserts a new post for the given author.
func (r *PostRepo) Create(
	ctx context.Context,
	authorID string,
	req *model.CreatePostRequest,
) (*model.Post, error) {
	if req == nil {
		return nil, errors.New("create post request is required")
	}

	id := uuid.NewString()
	now := r.timeProvider.Now().UTC()
	var out model.Post
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if _, err := conn.Exec(ctx, `
			INSERT INTO posts (id, author_id, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)`,
			id, authorID, req.Content, now,
		); err != nil {
			return err
		}
		return r.collectOne(ctx, conn, &out, postSelect+` WHERE p.id = $1`, id)
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a post with its comments, oldest comment first.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var out model.Post
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if err := r.collectOne(ctx, conn, &out, postSelect+` WHERE p.id = $1`, id); err != nil {
			return err
		}
		rows, err := conn.Query(ctx, commentSelect+` WHERE c.post_id = $1 ORDER BY c.created_at, c.id`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out.Comments, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Comment])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Update replaces the content of a post.
func (r *PostRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdatePostRequest,
) (*model.Post, error) {
	if req == nil {
		return nil, errors.New("update post request is required")
	}

	var out model.Post
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			UPDATE posts SET content = $2, updated_at = $3 WHERE id = $1`,
			id, req.Content, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return r.collectOne(ctx, conn, &out, postSelect+` WHERE p.id = $1`, id)
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a post. Comments and likes cascade at the schema level.
// Returns false when the post does not exist.
func (r *PostRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return deleted, nil
}

// List retrieves all posts with pagination, newest first.
func (r *PostRepo) List(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	return r.listByQuery(
		ctx,
		postSelect+` ORDER BY p.created_at DESC, p.id LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), normalizeOffset(offset),
	)
}

// Feed lists posts ordered by the given filter.
func (r *PostRepo) Feed(
	ctx context.Context,
	filter model.FeedFilter,
	limit, offset int,
) ([]*model.Post, error) {
	return r.listByQuery(
		ctx,
		postSelect+` ORDER BY `+feedOrderClause(filter)+` LIMIT $1 OFFSET $2`,
		normalizeLimit(limit), normalizeOffset(offset),
	)
}

// ListByUser lists a single author's posts with optional inclusive creation
// time bounds.
func (r *PostRepo) ListByUser(
	ctx context.Context,
	userID string,
	opts *model.UserPostsOptions,
) ([]*model.Post, error) {
	if opts == nil {
		opts = &model.UserPostsOptions{Filter: model.FeedFilterTime}
	}

	where := []string{"p.author_id = $1"}
	args := []any{userID}
	if opts.Start != nil {
		args = append(args, opts.Start.UTC())
		where = append(where, "p.created_at >= $"+strconv.Itoa(len(args)))
	}
	if opts.End != nil {
		args = append(args, opts.End.UTC())
		where = append(where, "p.created_at <= $"+strconv.Itoa(len(args)))
	}

	query := postSelect + ` WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ` + feedOrderClause(opts.Filter)
	return r.listByQuery(ctx, query, args...)
}

// OwnerID returns the author id of a post without loading the full row.
func (r *PostRepo) OwnerID(ctx context.Context, postID string) (string, error) {
	var ownerID string
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, postID).Scan(&ownerID)
	}); err != nil {
		return "", apperrors.MapDBError(err)
	}
	return ownerID, nil
}

// ToggleLike likes the post on behalf of userID, or removes an existing like.
// The toggle runs in a transaction so the reported count matches the outcome.
func (r *PostRepo) ToggleLike(ctx context.Context, postID, userID string) (*model.LikeResult, error) {
	res := &model.LikeResult{PostID: postID}
	if err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `
				INSERT INTO post_likes (post_id, user_id, created_at)
				VALUES ($1, $2, $3)`,
				postID, userID, r.timeProvider.Now().UTC(),
			); err != nil {
				return err
			}
			res.Liked = true
		}

		return tx.QueryRow(ctx,
			`SELECT COUNT(*)::int FROM post_likes WHERE post_id = $1`, postID,
		).Scan(&res.LikeCount)
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return res, nil
}

// AddComment appends a comment to a post.
func (r *PostRepo) AddComment(
	ctx context.Context,
	postID, authorID string,
	req *model.AddCommentRequest,
) (*model.Comment, error) {
	if req == nil {
		return nil, errors.New("add comment request is required")
	}

	id := uuid.NewString()
	var out model.Comment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if _, err := conn.Exec(ctx, `
			INSERT INTO comments (id, post_id, author_id, content, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			id, postID, authorID, req.Content, r.timeProvider.Now().UTC(),
		); err != nil {
			return err
		}
		rows, err := conn.Query(ctx, commentSelect+` WHERE c.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Comment])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// PopularPosts returns posts ranked by like count, most liked first.
func (r *PostRepo) PopularPosts(ctx context.Context, limit int) ([]*model.PostStatistics, error) {
	var rowsOut []model.PostStatistics
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT p.id AS post_id, p.content,
			       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id)::int AS like_count,
			       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)::int AS comment_count
			FROM posts p
			ORDER BY like_count DESC, p.created_at DESC
			LIMIT $1`, normalizeLimit(limit))
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.PostStatistics])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to rank popular posts: %w", err)
	}

	res := make([]*model.PostStatistics, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UserActivity aggregates post, like and comment counts for a single user.
// The like count is likes received on the user's posts, not likes the user
// handed out.
func (r *PostRepo) UserActivity(ctx context.Context, userID string) (*model.UserActivity, error) {
	var out model.UserActivity
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT u.id AS user_id, u.username,
			       (SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id) AS post_count,
			       (SELECT COUNT(*)
			        FROM post_likes pl
			        JOIN posts lp ON lp.id = pl.post_id
			        WHERE lp.author_id = u.id) AS like_count,
			       (SELECT COUNT(*) FROM comments c WHERE c.author_id = u.id) AS comment_count
			FROM users u
			WHERE u.id = $1`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserActivity])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func (r *PostRepo) collectOne(
	ctx context.Context,
	conn *pgx.Conn,
	dst *model.Post,
	query string,
	args ...any,
) error {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[model.Post])
	if err != nil {
		return err
	}
	*dst = out
	return nil
}

func (r *PostRepo) listByQuery(ctx context.Context, query string, args ...any) ([]*model.Post, error) {
	var rowsOut []model.Post
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByNameLax[model.Post])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	res := make([]*model.Post, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func feedOrderClause(filter model.FeedFilter) string {
	if filter == model.FeedFilterPopularity {
		return "like_count DESC, p.created_at DESC, p.id"
	}
	return "p.created_at DESC, p.id"
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
