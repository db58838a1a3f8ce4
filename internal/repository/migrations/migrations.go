// Package migrations holds the embedded goose migrations for every supported
// database driver.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

type Migrator struct {
	provider *goose.Provider
}

func New(driver string, db *sql.DB) (*Migrator, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	fsys, err := fs.Sub(embedded, driver)
	if err != nil {
		return nil, fmt.Errorf("sub migrations fs: %v", err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("new goose provider: %v", err)
	}

	return &Migrator{provider: provider}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		logResult(ctx, r)
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	r, err := m.provider.Down(ctx)
	if r != nil {
		logResult(ctx, r)
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}

	return nil
}

func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations status: %w", err)
	}

	return statuses, nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations version: %w", err)
	}

	return v, nil
}

func logResult(ctx context.Context, r *goose.MigrationResult) {
	attrs := []slog.Attr{
		slog.String("direction", r.Direction),
		slog.Duration("duration", r.Duration),
	}
	if r.Source != nil {
		attrs = append(attrs,
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
		)
	}

	if r.Error != nil {
		slogx.Error(ctx, "migration failed", append(attrs, slogx.Err(r.Error))...)
		return
	}

	slogx.Info(ctx, "migration applied", attrs...)
}
