package grpcx

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type healthService struct {
	*health.Server
}

func (h healthService) RegisterService(r grpc.ServiceRegistrar) {
	grpc_health_v1.RegisterHealthServer(r, h.Server)
}

// panicHealth answers every check with a panic.
type panicHealth struct {
	grpc_health_v1.UnimplementedHealthServer
}

func (panicHealth) Check(context.Context, *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	panic("boom")
}

func (p panicHealth) RegisterService(r grpc.ServiceRegistrar) {
	grpc_health_v1.RegisterHealthServer(r, p)
}

func serve(t *testing.T, svc Service) grpc_health_v1.HealthClient {
	t.Helper()

	srv, err := New(NewOptions("localhost:50051", WithServices(svc)))
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		assert.NoError(t, <-done)
	})

	return grpc_health_v1.NewHealthClient(conn)
}

func TestNewRequiresServices(t *testing.T) {
	_, err := New(NewOptions("localhost:50051"))
	assert.Error(t, err)

	_, err = New(NewOptions("", WithServices(healthService{health.NewServer()})))
	assert.Error(t, err)
}

func TestServeHealth(t *testing.T) {
	client := serve(t, healthService{health.NewServer()})

	resp, err := client.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestRecoversFromPanic(t *testing.T) {
	client := serve(t, panicHealth{})

	_, err := client.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestReflectionIsOptIn(t *testing.T) {
	hasReflection := func(srv *Server) bool {
		for name := range srv.srv.GetServiceInfo() {
			if strings.HasPrefix(name, "grpc.reflection.") {
				return true
			}
		}
		return false
	}

	plain, err := New(NewOptions("localhost:50051", WithServices(healthService{health.NewServer()})))
	require.NoError(t, err)
	assert.False(t, hasReflection(plain))

	reflective, err := New(NewOptions("localhost:50051",
		WithServices(healthService{health.NewServer()}),
		WithReflection(true),
	))
	require.NoError(t, err)
	assert.True(t, hasReflection(reflective))
}
