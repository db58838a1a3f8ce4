// Package postgres stores notes and users in PostgreSQL through pgx.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Dmitry-Bulhin/ya-note/pkg/database"
)

const uniqueViolation = "23505"

const (
	notesSlugKey     = "notes_slug_key"
	usersUsernameKey = "users_username_key"
)

type Repo struct {
	db database.Tx
}

func New(db database.Tx) *Repo {
	return &Repo{db: db}
}

func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}

	return "", false
}
