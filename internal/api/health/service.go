// Package health reports database availability over the standard gRPC
// health protocol.
package health

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

type pinger interface {
	Ping(ctx context.Context) error
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=service_options.gen.go -from-struct=Options
type Options struct {
	pinger   pinger        `option:"mandatory" validate:"required"`
	interval time.Duration `default:"10s"`
	timeout  time.Duration `default:"2s"`
}

type Service struct {
	Options
	srv     *health.Server
	serving bool
}

func New(opts Options) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate health service options: %v", err)
	}
	if opts.interval <= 0 || opts.timeout <= 0 {
		return nil, fmt.Errorf("validate health service options: interval and timeout must be positive")
	}

	srv := health.NewServer()
	srv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Service{Options: opts, srv: srv}, nil
}

func (s *Service) RegisterService(r grpc.ServiceRegistrar) {
	grpc_health_v1.RegisterHealthServer(r, s.srv)
}

// Run pings the database every interval until ctx is done. After that every
// check answers NOT_SERVING.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(ctx)

	for {
		select {
		case <-ctx.Done():
			s.srv.Shutdown()
			return nil
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *Service) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.pinger.Ping(pingCtx)
	serving := err == nil

	if serving == s.serving {
		return
	}
	s.serving = serving

	if serving {
		slogx.Info(ctx, "database is available")
		s.srv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		return
	}

	slogx.Warn(ctx, "database is unavailable", slogx.Err(err))
	s.srv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}
