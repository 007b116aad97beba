package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/socialgrid/socialgrid/internal/data/pgxutil"
	"github.com/socialgrid/socialgrid/internal/domain/auth"
	"github.com/socialgrid/socialgrid/internal/domain/model"
	apperrors "github.com/socialgrid/socialgrid/internal/errors"
)

const userColumns = `id, username, email, password_hash, roles, created_at, updated_at`

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user with the given password hash. New accounts start
// with the USER role only.
func (r *UserRepo) Create(
	ctx context.Context,
	req *model.RegisterRequest,
	passwordHash string,
) (*model.User, error) {
	if req == nil {
		return nil, errors.New("register request is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, username, email, password_hash, roles, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+userColumns,
			uuid.NewString(),
			strings.TrimSpace(req.Username),
			strings.TrimSpace(req.Email),
			passwordHash,
			[]string{string(auth.RoleUser)},
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// LoadUser retrieves a user by username. Returns a not-found application
// error when no such account exists.
func (r *UserRepo) LoadUser(ctx context.Context, username string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// List retrieves users with pagination, newest first.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+userColumns+`
			FROM users
			ORDER BY created_at DESC, id
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update replaces the profile fields of a user. When passwordHash is empty
// the stored hash is kept.
func (r *UserRepo) Update(
	ctx context.Context,
	id string,
	req *model.UpdateUserRequest,
	passwordHash string,
) (*model.User, error) {
	if req == nil {
		return nil, errors.New("update user request is required")
	}

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE users
			SET username = $2,
			    email = $3,
			    password_hash = CASE WHEN $4 = '' THEN password_hash ELSE $4 END,
			    updated_at = $5
			WHERE id = $1
			RETURNING `+userColumns,
			id,
			strings.TrimSpace(req.Username),
			strings.TrimSpace(req.Email),
			passwordHash,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a user. Posts, comments and likes cascade at the schema
// level. Returns false when the user does not exist.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
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

func (r *UserRepo) getByQuery(ctx context.Context, query, arg string) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
