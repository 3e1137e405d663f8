package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opdss/report/api"
	"github.com/opdss/report/contracts/locker"
	contractstorage "github.com/opdss/report/contracts/storage"
	"github.com/opdss/report/export"
	"github.com/opdss/report/jwt"
	"github.com/opdss/report/metrics"
	"github.com/opdss/report/process"
	"github.com/opdss/report/redis"
	"github.com/opdss/report/server/grpc"
	"github.com/opdss/report/server/http"
	"github.com/opdss/report/storage"
	"github.com/opdss/report/workbook"
)

func cmdServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := process.Ctx(cmd)
	defer cancel()
	log := zap.L()

	loader := workbook.NewLoaderFromConfig(conf.Workbook, log)
	workbook.SetDefault(loader)
	go func() {
		// 提前解析表格库，失败时第一次导出表格会再试
		if lib, err := loader.Library(ctx); err != nil {
			log.Warn("workbook library unavailable", zap.Error(err))
		} else {
			log.Info("workbook library ready", zap.String("library", lib.Name()))
		}
	}()

	var lockers locker.Provider
	if conf.Redis.Enabled {
		rdb, err := redis.NewRedis(conf.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		lockers = redis.NewLockerProvider(rdb, conf.Redis.Prefix, log)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(conf.Metrics, registry)
	service := export.NewService(conf.Export, lockers, collector, log, export.WithLoader(loader))

	var (
		files  contractstorage.FileSystem
		tokens *jwt.Jwt
	)
	if conf.Jwt.Key != "" {
		var err error
		if files, err = storage.New(conf.Storage); err != nil {
			return err
		}
		if tokens, err = jwt.NewJwt(conf.Jwt); err != nil {
			return err
		}
	} else {
		log.Info("jwt key is empty, store and download are disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(api.Recovery(log), api.Logger(log))
	api.NewHandler(conf.Api, service, files, tokens, collector, log).Register(engine)
	if files != nil && conf.Storage.Driver == storage.DriverLocal {
		engine.Static("/files", conf.Storage.Local.Root)
	}

	httpSrv := http.NewServer(engine, log, conf.Http)
	grpcSrv := grpc.NewServer(log, conf.Grpc)
	grpcSrv.SetServing("", true)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.Start(gctx) })
	g.Go(func() error { return grpcSrv.Start(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		grpcSrv.SetServing("", false)
		return errs.Combine(httpSrv.Stop(stopCtx), grpcSrv.Stop(stopCtx))
	})
	return g.Wait()
}
