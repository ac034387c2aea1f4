package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/config"
	"github.com/azniosman/Project-Fortress/internal/gateway"
	"github.com/azniosman/Project-Fortress/internal/handler"
	"github.com/azniosman/Project-Fortress/internal/metrics"
	"github.com/azniosman/Project-Fortress/internal/ratelimit"
	"github.com/azniosman/Project-Fortress/pkg/logger"
	redispkg "github.com/azniosman/Project-Fortress/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Rate-limit counters: Redis when configured, otherwise in process.
	var store ratelimit.Store
	if cfg.Redis.Addr != "" {
		redisClient := redispkg.NewClient(cfg.Redis.Addr)
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()); err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		store = ratelimit.NewRedisStore(redisClient)
		zlog.Info("using redis rate limit store", zap.String("addr", cfg.Redis.Addr))
	} else {
		memStore := ratelimit.NewMemoryStore()
		defer memStore.Close()
		store = memStore
		zlog.Info("using in-memory rate limit store")
	}

	generalLimiter := ratelimit.NewLimiter(store, "general", cfg.RateLimit.GeneralLimit, cfg.RateLimit.GeneralWindow, zlog)
	failedLimiter := ratelimit.NewLimiter(store, "failed", cfg.RateLimit.FailedLimit, cfg.RateLimit.FailedWindow, zlog)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	gw := gateway.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Timeout, zlog)

	router := handler.NewRouter(handler.RouterDeps{
		Config:         cfg,
		Logger:         zlog,
		Gateway:        gw,
		Metrics:        m,
		GeneralLimiter: generalLimiter,
		FailedLimiter:  failedLimiter,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		zlog.Info("starting server",
			zap.String("port", cfg.HTTP.Port),
			zap.String("environment", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
