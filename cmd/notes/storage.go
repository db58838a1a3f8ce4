package main

import (
	"context"
	"fmt"

	"github.com/Dmitry-Bulhin/ya-note/internal/config"
	"github.com/Dmitry-Bulhin/ya-note/internal/entity"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/migrations"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/postgres"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/notes"
	"github.com/Dmitry-Bulhin/ya-note/internal/usecase/users"
	"github.com/Dmitry-Bulhin/ya-note/pkg/database"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
	"github.com/Dmitry-Bulhin/ya-note/pkg/sqlitedb"
)

type repository interface {
	CreateNote(ctx context.Context, authorID int64, in entity.NoteInput) (entity.Note, error)
	GetNoteBySlug(ctx context.Context, authorID int64, slug string) (entity.Note, error)
	GetNotesByAuthor(ctx context.Context, authorID int64) ([]entity.Note, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	UpdateNote(ctx context.Context, id int64, in entity.NoteInput) (entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, username string, passwordHash []byte) (entity.User, error)
	GetUserByID(ctx context.Context, id int64) (entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (entity.User, error)
}

type txPinger interface {
	RunInTx(ctx context.Context, f func(context.Context) error) error
	Ping(ctx context.Context) error
}

// storage is everything the commands need from the configured database.
type storage struct {
	repo     repository
	db       txPinger
	migrator *migrations.Migrator
	close    func()
}

func openStorage(ctx context.Context, c config.DatabaseConfig) (*storage, error) {
	switch c.Driver {
	case config.DriverPostgres:
		db, err := database.Open(ctx, database.NewOptions(
			c.Address(),
			c.User,
			c.Password,
			c.Name,
			database.WithSslMode(c.SSLMode),
			database.WithMaxConns(c.MaxConns),
			database.WithConnectAttempts(c.RetryAttempts),
			database.WithLogger(slogx.Default()),
		))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %v", err)
		}

		m, err := migrations.New(migrations.DriverPostgres, db.SQLDB())
		if err != nil {
			db.Close()
			return nil, err
		}

		return &storage{repo: postgres.New(db), db: db, migrator: m, close: db.Close}, nil

	case config.DriverSQLite:
		db, err := sqlitedb.Open(ctx, sqlitedb.NewOptions(c.SQLitePath))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %v", err)
		}

		m, err := migrations.New(migrations.DriverSQLite, db.SQLDB())
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		return &storage{repo: sqlite.New(db), db: db, migrator: m, close: func() { _ = db.Close() }}, nil
	}

	return nil, fmt.Errorf("unknown db driver %q", c.Driver)
}

func (s *storage) usecases(bcryptCost int) (*notes.Usecase, *users.Usecase, error) {
	notesUC, err := notes.New(notes.NewOptions(s.repo, s.db))
	if err != nil {
		return nil, nil, fmt.Errorf("init notes usecase: %v", err)
	}

	usersUC, err := users.New(users.NewOptions(s.repo, users.WithHashCost(bcryptCost)))
	if err != nil {
		return nil, nil, fmt.Errorf("init users usecase: %v", err)
	}

	return notesUC, usersUC, nil
}
