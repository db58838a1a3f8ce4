package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
)

const userColumns = `id, username, password_hash, created_at`

func (r *Repo) CreateUser(ctx context.Context, username string, passwordHash []byte) (entity.User, error) {
	rows, err := r.db.Query(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		username, passwordHash,
	)

	row, err := collectUser(rows, err)
	if err != nil {
		if name, ok := uniqueConstraint(err); ok && name == usersUsernameKey {
			return entity.User{}, entity.ErrUserExists
		}
		return entity.User{}, fmt.Errorf("create user: %w", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) GetUserByID(ctx context.Context, id int64) (entity.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (entity.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *Repo) getUser(ctx context.Context, query string, arg any) (entity.User, error) {
	rows, err := r.db.Query(ctx, query, arg)

	row, err := collectUser(rows, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, entity.ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("get user: %w", err)
	}

	return row.toEntity(), nil
}

func collectUser(rows pgx.Rows, err error) (userRow, error) {
	if err != nil {
		return userRow{}, err
	}

	return pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
}
