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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell/config"
	"github.com/AntonStoeckl/bookstore/bookstore/transport/httpapi"
)

const readHeaderTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("bookstore api failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	obs, shutdownObservability, err := newObservability(ctx, cfg, logger, registry)
	if err != nil {
		return fmt.Errorf("setting up observability: %w", err)
	}
	defer shutdownObservability()

	bookstore, closeStore, err := openStore(ctx, cfg, logger, obs)
	if err != nil {
		return fmt.Errorf("opening the %s store: %w", cfg.StoreEngine, err)
	}
	defer closeStore()

	handlers, err := obs.wrapHandlers(httpapi.NewHandlers(bookstore))
	if err != nil {
		return fmt.Errorf("instrumenting handlers: %w", err)
	}

	routerOptions := []httpapi.Option{
		httpapi.WithLogger(logger),
		httpapi.WithPrometheus(registry, registry),
	}

	if cfg.RedisAddr != "" && cfg.RateLimitPerMinute > 0 {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = redisClient.Close() }()

		routerOptions = append(routerOptions, httpapi.WithRateLimiter(
			httpapi.NewRedisRateLimiter(redisClient, cfg.RateLimitPerMinute, logger),
		))
		logger.Info("rate limiting enabled", slog.String("redis", cfg.RedisAddr), slog.Int("per_minute", cfg.RateLimitPerMinute))
	}

	router, err := httpapi.NewRouter(handlers, cfg.JWTSecret, routerOptions...)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("bookstore api listening", slog.String("addr", cfg.HTTPAddr), slog.String("store", cfg.StoreEngine))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
