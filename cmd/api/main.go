package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/medmatch/internal/api/router"
	"github.com/wolfman30/medmatch/internal/app/bootstrap"
	appconfig "github.com/wolfman30/medmatch/internal/config"
	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/observability/metrics"
	"github.com/wolfman30/medmatch/internal/search"
	"github.com/wolfman30/medmatch/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting medmatch API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, closers, err := buildServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	defer closeAll(closers, logger)

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func buildServer(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*http.Server, []io.Closer, error) {
	metricsHandler, gatewayMetrics, searchMetrics := setupMetrics()

	ai, closers, err := bootstrap.BuildGateway(ctx, cfg, gatewayMetrics, logger)
	if err != nil {
		return nil, closers, err
	}
	tokens, err := bootstrap.BuildOwnerTokens(cfg, logger)
	if err != nil {
		return nil, closers, err
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		closers = append(closers, redisClient)
	}
	sessions := bootstrap.BuildSessionStore(redisClient, cfg, logger)
	doctors := bootstrap.BuildDirectory(cfg, logger.Component("directory"))

	searchService := search.NewService(doctors, sessions, ai, searchMetrics, logger.Component("search"))

	handler := router.New(&router.Config{
		Logger:               logger,
		DirectoryHandler:     directory.NewHandler(doctors, ai, tokens, logger.Component("directory")),
		SearchHandler:        search.NewHandler(searchService, logger.Component("search")),
		OwnerTokens:          tokens,
		MetricsHandler:       metricsHandler,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		AIRateLimitPerSecond: cfg.AIRateLimitPerSecond,
		AIRateLimitBurst:     cfg.AIRateLimitBurst,
	})

	// Gateway calls block the request goroutine, so the write timeout has to
	// leave room for a slow model.
	writeTimeout := 60 * time.Second
	if cfg.GatewayTimeout > 0 && cfg.GatewayTimeout+15*time.Second > writeTimeout {
		writeTimeout = cfg.GatewayTimeout + 15*time.Second
	}
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}, closers, nil
}

func setupMetrics() (http.Handler, *metrics.GatewayMetrics, *metrics.SearchMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return handler, metrics.NewGatewayMetrics(reg), metrics.NewSearchMetrics(reg)
}

func closeAll(closers []io.Closer, logger *logging.Logger) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close resource", "error", err)
		}
	}
}
