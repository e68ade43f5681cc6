// Package health 通过 gRPC 健康检查协议暴露被监视 RadioDJ 实例的存活状态
package health

import (
	"fmt"
	"net"
	"sync"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/zoeyai/djwatch/internal/logger"
)

// ServiceName 健康检查中代表 RadioDJ 实例的服务名
const ServiceName = "djwatch.RadioDJ"

// Server gRPC 健康检查服务。
// 服务名 ServiceName 在实例存活时为 SERVING，否则为 NOT_SERVING；
// 空服务名代表 djwatch 进程自身，始终为 SERVING。
type Server struct {
	grpc   *grpc.Server
	health *grpchealth.Server
	log    *logger.Logger

	mu      sync.Mutex
	lis     net.Listener
	serving bool
}

// NewServer 创建健康检查服务，初始状态为 NOT_SERVING
func NewServer(log *logger.Logger) *Server {
	if log == nil {
		log = logger.Default().Component("health")
	}

	hs := grpchealth.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{grpc: gs, health: hs, log: log}
}

// SetServing 更新 RadioDJ 实例的存活状态，状态变化时记录日志
func (s *Server) SetServing(alive bool) {
	s.mu.Lock()
	changed := s.serving != alive
	s.serving = alive
	s.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if alive {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)

	if changed {
		s.log.Info("健康状态: %s = %s", ServiceName, status)
	}
}

// Serving 当前存活状态
func (s *Server) Serving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serving
}

// Serve 在 lis 上提供服务，阻塞直到 Stop
func (s *Server) Serve(lis net.Listener) error {
	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()

	return s.grpc.Serve(lis)
}

// Start 监听 addr 并在后台提供服务
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("健康检查监听失败 %s: %w", addr, err)
	}

	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()

	go func() {
		if err := s.Serve(lis); err != nil {
			s.log.Error("健康检查服务退出: %v", err)
		}
	}()

	s.log.Info("健康检查服务已启动: %s", lis.Addr())
	return nil
}

// Addr 监听地址，未启动时为 nil
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis == nil {
		return nil
	}
	return s.lis.Addr()
}

// Stop 将全部服务置为 NOT_SERVING 并停止
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
