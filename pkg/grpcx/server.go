package grpcx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

type logger interface {
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
}

type Service interface {
	RegisterService(grpc.ServiceRegistrar)
}

//go:generate options-gen -out-filename=server_options.gen.go -from-struct=Options -all-variadic true
type Options struct {
	addr     string    `option:"mandatory" validate:"required,hostname_port"`
	services []Service `validate:"required,min=1"`

	logger logger

	grpcOptions []grpc.ServerOption

	maxConnIdle          time.Duration `default:"5m"`
	time                 time.Duration `default:"2h"`
	timeout              time.Duration `default:"20s"`
	maxConcurrentStreams uint32        `default:"50"`
	stopTimeout          time.Duration `default:"3s"`

	reflection bool
}

type Server struct {
	opts   Options
	srv    *grpc.Server
	logger logger
}

func New(opts Options) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("grpc server validate: %v", err)
	}

	if opts.logger == nil {
		opts.logger = &noopLogger{}
	}

	opts.grpcOptions = append(opts.grpcOptions,
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: opts.maxConnIdle,
			Time:              opts.time,
			Timeout:           opts.timeout,
		}),
		grpc.MaxConcurrentStreams(opts.maxConcurrentStreams),
		grpc.ChainUnaryInterceptor(
			slogx.LoggingInterceptor,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
	)

	srv := grpc.NewServer(
		opts.grpcOptions...,
	)

	for _, svc := range opts.services {
		svc.RegisterService(srv)
	}

	if opts.reflection {
		reflection.Register(srv)
	}

	return &Server{opts: opts, srv: srv, logger: opts.logger}, nil
}

func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		return fmt.Errorf("run grpc: %v", err)
	}

	return s.Serve(ctx, listener)
}

// Serve accepts connections on l until ctx is done. Then it stops
// gracefully, cutting open streams after stopTimeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		s.stop()
	}()

	s.logger.Info(
		ctx,
		"run grpc server",
		slog.String("addr", l.Addr().String()),
	)

	if err := s.srv.Serve(l); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("listen and server: %v", err)
	}

	return nil
}

func (s *Server) stop() {
	stopped := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(s.opts.stopTimeout):
		s.srv.Stop()
		<-stopped
	}
}

func recoverPanic(ctx context.Context, p any) error {
	slogx.Error(ctx, "recovered from panic", slog.Any("panic", p))
	return status.Error(codes.Internal, "internal error")
}

type noopLogger struct{}

func (n *noopLogger) Info(
	ctx context.Context,
	msg string,
	attrs ...slog.Attr,
) {
}
