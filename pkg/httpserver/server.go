// Package httpserver runs an http.Handler until its context is cancelled.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

type Logger interface {
	Info(context.Context, string, ...slog.Attr)
}

//go:generate options-gen -out-filename=server_options.gen.go -from-struct=Options -all-variadic true
type Options struct {
	addr    string       `option:"mandatory" validate:"hostname_port"`
	handler http.Handler `option:"mandatory" validate:"required"`

	middlewares []func(http.Handler) http.Handler
	logger      Logger

	readHeaderTimeout time.Duration `default:"5s" validate:"min=1ms"`
	idleTimeout       time.Duration `default:"2m"`
	shutdownTimeout   time.Duration `default:"3s" validate:"min=1ms"`
}

type Server struct {
	Options
	srv *http.Server
}

func New(opts Options) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate http server opts: %v", err)
	}

	handler := opts.handler

	// The first middleware ends up outermost.
	for i := len(opts.middlewares) - 1; i >= 0; i-- {
		handler = opts.middlewares[i](handler)
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           handler,
		ReadHeaderTimeout: opts.readHeaderTimeout,
		IdleTimeout:       opts.idleTimeout,
	}

	return &Server{Options: opts, srv: srv}, nil
}

func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %v", s.addr, err)
	}

	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done, then shuts down and
// waits up to shutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()

		s.info(ctx, "shutdown http server")

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %v", err)
		}

		return nil
	})

	eg.Go(func() error {
		s.info(ctx, "serve http", slog.String("addr", l.Addr().String()))

		if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %v", err)
		}

		return nil
	})

	return eg.Wait()
}

func (s *Server) info(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger != nil {
		s.logger.Info(ctx, msg, attrs...)
	}
}
