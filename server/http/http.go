package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

var Error = errs.Class("http server")

type Config struct {
	Endpoint        string        `help:"访问地址" default:"http://localhost:8989"`
	Address         string        `help:"监听地址" default:"0.0.0.0:8989"`
	ReadTimeout     time.Duration `help:"读取请求超时" default:"30s"`
	WriteTimeout    time.Duration `help:"写响应超时，导出大文件时需要调大" default:"5m"`
	ShutdownTimeout time.Duration `help:"关闭时等待请求完成的时间" default:"5s"`
}

type Server struct {
	*gin.Engine
	httpSrv *http.Server
	logger  *zap.Logger
	config  Config
}

func NewServer(engine *gin.Engine, logger *zap.Logger, conf Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf.ShutdownTimeout <= 0 {
		conf.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{
		Engine: engine,
		logger: logger,
		config: conf,
	}
	s.httpSrv = &http.Server{
		Addr:         conf.Address,
		Handler:      s,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
	}
	return s
}

// Start 监听并阻塞到服务关闭
func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return Error.Wrap(err)
	}
	return s.Serve(ctx, lis)
}

// Serve 在给定的listener上提供服务
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.httpSrv.BaseContext = func(net.Listener) context.Context { return ctx }
	s.logger.Sugar().Infof("http server start: %s; endpoint: %s", lis.Addr(), s.config.Endpoint)
	if err := s.httpSrv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return Error.Wrap(err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return Error.New("server forced to shutdown: %v", err)
	}

	s.logger.Sugar().Info("Server exiting")
	return nil
}
