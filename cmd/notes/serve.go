package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Dmitry-Bulhin/ya-note/internal/api/health"
	"github.com/Dmitry-Bulhin/ya-note/internal/api/web"
	"github.com/Dmitry-Bulhin/ya-note/pkg/grpcx"
	"github.com/Dmitry-Bulhin/ya-note/pkg/httpserver"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server and the gRPC health endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	st, err := openStorage(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer st.close()

	if cfg.Database.AutoMigrate {
		if err := st.migrator.Up(ctx); err != nil {
			return err
		}
	}

	notesUC, usersUC, err := st.usecases(cfg.Web.BcryptCost)
	if err != nil {
		return err
	}

	secret, err := sessionSecret(ctx)
	if err != nil {
		return err
	}

	webSrv, err := web.New(web.NewOptions(
		notesUC,
		usersUC,
		secret,
		web.WithCsrf(cfg.Web.CSRF),
		web.WithSecureCookie(cfg.Web.SecureCookie),
	))
	if err != nil {
		return fmt.Errorf("init web server: %v", err)
	}

	httpSrv, err := httpserver.New(httpserver.NewOptions(
		cfg.HTTP.Addr,
		webSrv,
		httpserver.WithMiddlewares(limitBody),
		httpserver.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	healthSvc, err := health.New(health.NewOptions(
		st.db,
		health.WithInterval(cfg.GRPC.HealthInterval),
	))
	if err != nil {
		return fmt.Errorf("init health service: %v", err)
	}

	grpcSrv, err := grpcx.New(grpcx.NewOptions(
		cfg.GRPC.Addr,
		grpcx.WithServices(healthSvc),
		grpcx.WithLogger(slogx.Default()),
		grpcx.WithTime(cfg.GRPC.KeepaliveTime),
		grpcx.WithTimeout(cfg.GRPC.KeepaliveTimeout),
		grpcx.WithMaxConcurrentStreams(cfg.GRPC.MaxConcurrentStreams),
		grpcx.WithReflection(cfg.GRPC.Reflection),
	))
	if err != nil {
		return fmt.Errorf("init grpc server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return httpSrv.Run(ctx) })
	eg.Go(func() error { return grpcSrv.Run(ctx) })
	eg.Go(func() error { return healthSvc.Run(ctx) })

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	return nil
}

// Note forms are small; anything larger is refused before parsing.
const maxBodyBytes = 1 << 20

func limitBody(next http.Handler) http.Handler {
	return http.MaxBytesHandler(next, maxBodyBytes)
}

func sessionSecret(ctx context.Context) ([]byte, error) {
	if cfg.Web.SessionSecret != "" {
		return []byte(cfg.Web.SessionSecret), nil
	}

	slogx.Warn(ctx, "WEB_SESSION_SECRET is empty, sessions will not survive a restart")

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %v", err)
	}

	return secret, nil
}
