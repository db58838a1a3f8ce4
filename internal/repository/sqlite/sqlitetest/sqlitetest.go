// Package sqlitetest opens migrated throwaway SQLite databases for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dmitry-Bulhin/ya-note/internal/repository/migrations"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite"
	"github.com/Dmitry-Bulhin/ya-note/pkg/sqlitedb"
)

// New returns a database in t.TempDir() with all migrations applied and a
// repository on top of it. Both are closed on test cleanup.
func New(t testing.TB) (*sqlitedb.Database, *sqlite.Repo) {
	t.Helper()

	ctx := context.Background()

	db, err := sqlitedb.Open(ctx, sqlitedb.NewOptions(filepath.Join(t.TempDir(), "notes.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.New(migrations.DriverSQLite, db.SQLDB())
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx))

	return db, sqlite.New(db)
}
