package grpc

import (
	"context"
	"net"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var Error = errs.Class("grpc server")

type Config struct {
	Address string `help:"监听地址" default:"0.0.0.0:8090"`
}

// Server 目前只提供健康检查，导出服务的状态通过SetServing更新
type Server struct {
	*grpc.Server
	health *health.Server
	config Config
	logger *zap.Logger
}

func NewServer(logger *zap.Logger, config Config, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		Server: grpc.NewServer(opts...),
		health: health.NewServer(),
		logger: logger,
		config: config,
	}
	healthpb.RegisterHealthServer(s.Server, s.health)
	return s
}

// SetServing 设置服务的健康状态，service为空表示整个进程
func (s *Server) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, status)
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return Error.Wrap(err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Sugar().Infof("grpc server start: %s", lis.Addr())
	if err := s.Server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return Error.Wrap(err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.health.Shutdown()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		s.Server.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.Server.Stop()
		<-done
	}

	s.logger.Info("Server exiting")
	return nil
}
