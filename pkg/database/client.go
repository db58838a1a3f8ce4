package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

type logger interface {
	Warn(context.Context, string, ...slog.Attr)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=client_options.gen.go -from-struct=Options
type Options struct {
	address  string `option:"mandatory" validate:"required,hostname_port"`
	username string `option:"mandatory" validate:"required"`
	password string `option:"mandatory"`
	database string `option:"mandatory" validate:"required"`

	sslMode         string `default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	applicationName string `default:"ya-note"`

	connectAttempts uint          `default:"5" validate:"min=1,max=10"`
	connectDelay    time.Duration `default:"300ms"`

	logger logger

	maxConns int32 `default:"5" validate:"min=1,max=20"`
	minConns int32 `default:"1" validate:"min=0,max=20"`
}

// Open connects a pool and waits until the server answers a ping,
// retrying up to connectAttempts times.
func Open(ctx context.Context, opts Options) (*Database, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate postgres options: %v", err)
	}

	if opts.logger == nil {
		opts.logger = noopLogger{}
	}

	cfg, err := pgxpool.ParseConfig(connString(opts))
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %v", err)
	}

	cfg.MaxConns = opts.maxConns
	cfg.MinConns = min(opts.minConns, opts.maxConns)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %v", err)
	}

	if err := waitReady(ctx, pool, opts); err != nil {
		pool.Close()
		return nil, err
	}

	return NewDatabase(pool), nil
}

func connString(opts Options) string {
	q := url.Values{}
	q.Set("sslmode", opts.sslMode)
	if opts.applicationName != "" {
		q.Set("application_name", opts.applicationName)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(opts.username, opts.password),
		Host:     opts.address,
		Path:     opts.database,
		RawQuery: q.Encode(),
	}

	return u.String()
}

func waitReady(ctx context.Context, pool *pgxpool.Pool, opts Options) error {
	err := retry.Do(
		func() error { return pool.Ping(ctx) },
		retry.Context(ctx),
		retry.Delay(opts.connectDelay),
		retry.Attempts(opts.connectAttempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			opts.logger.Warn(ctx, "postgres is not ready",
				slog.String("addr", opts.address),
				slog.Uint64("attempt", uint64(attempt+1)),
				slog.Any("err", err),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("ping postgres at %s: %v", opts.address, err)
	}

	return nil
}

type noopLogger struct{}

func (noopLogger) Warn(context.Context, string, ...slog.Attr) {}
