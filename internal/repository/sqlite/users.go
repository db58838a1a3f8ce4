package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

const userColumns = `id, username, password_hash, created_at`

func (r *Repo) CreateUser(ctx context.Context, username string, passwordHash []byte) (entity.User, error) {
	createdAt := fromMillis(toMillis(r.now()))

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, toMillis(createdAt),
	)
	if err != nil {
		if uniqueViolation(err, "users.username") {
			return entity.User{}, entity.ErrUserExists
		}
		return entity.User{}, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entity.User{}, fmt.Errorf("create user: last insert id: %w", err)
	}

	return entity.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}

func (r *Repo) GetUserByID(ctx context.Context, id int64) (entity.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (entity.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *Repo) getUser(ctx context.Context, query string, arg any) (entity.User, error) {
	var (
		u         entity.User
		createdAt int64
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, entity.ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("get user: %w", err)
	}

	u.CreatedAt = fromMillis(createdAt)

	return u, nil
}
