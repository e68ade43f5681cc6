package health

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/zoeyai/djwatch/internal/logger"
)

func startServer(t *testing.T) (*Server, healthpb.HealthClient) {
	t.Helper()

	log := logger.New()
	log.SetEnabled(false)

	lis := bufconn.Listen(1 << 20)
	s := NewServer(log)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("创建客户端失败: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return s, healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

func TestHealthServing(t *testing.T) {
	s, client := startServer(t)

	got, err := check(t, client, ServiceName)
	if err != nil {
		t.Fatalf("Check 失败: %v", err)
	}
	if got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("初始状态应为 NOT_SERVING, 实际为 %s", got)
	}

	s.SetServing(true)
	if !s.Serving() {
		t.Error("Serving() 应为 true")
	}
	if got, _ = check(t, client, ServiceName); got != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("状态应为 SERVING, 实际为 %s", got)
	}

	s.SetServing(false)
	if got, _ = check(t, client, ServiceName); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("状态应为 NOT_SERVING, 实际为 %s", got)
	}
}

func TestHealthOverall(t *testing.T) {
	_, client := startServer(t)

	got, err := check(t, client, "")
	if err != nil {
		t.Fatalf("Check 失败: %v", err)
	}
	if got != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("进程自身状态应为 SERVING, 实际为 %s", got)
	}
}

func TestHealthUnknownService(t *testing.T) {
	_, client := startServer(t)

	_, err := check(t, client, "djwatch.Unknown")
	if status.Code(err) != codes.NotFound {
		t.Errorf("未知服务应返回 NotFound, 实际为 %v", err)
	}
}

func TestHealthStart(t *testing.T) {
	log := logger.New()
	log.SetEnabled(false)

	s := NewServer(log)
	if err := s.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start 失败: %v", err)
	}
	defer s.Stop()

	if s.Addr() == nil {
		t.Error("启动后 Addr 不应为 nil")
	}
}
