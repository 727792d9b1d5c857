package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/xiebiao/northwind/docs"
	"github.com/xiebiao/northwind/internal/infrastructure/config"
	"github.com/xiebiao/northwind/pkg/logger"
	"github.com/xiebiao/northwind/pkg/tracing"
)

// @title                       Northwind销售数据服务
// @version                     1.0
// @description                 客户维护、订单登记/删除、销售报表
// @BasePath                    /
// @schemes                     http

func main() {
	if err := run(); err != nil {
		slog.Error("服务异常退出", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	log, closeLog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	slog.SetDefault(log)

	slog.Info("配置加载成功",
		slog.Int("port", cfg.Server.Port),
		slog.String("mode", cfg.Server.Mode),
		slog.Bool("database_configured", cfg.Database.Configured()),
		slog.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	// 3. 链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// 4. 依赖注入
	engine, cleanup, err := InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	// 5. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("服务启动成功",
			slog.String("addr", srv.Addr),
			slog.String("swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", srv.Addr)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 6. 优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}

	slog.Info("服务已关闭")
	return nil
}
