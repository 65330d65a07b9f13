package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/app"
	"github.com/kailas-cloud/plantdex/internal/config"
	logpkg "github.com/kailas-cloud/plantdex/internal/logger"
	chiTransport "github.com/kailas-cloud/plantdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
	"github.com/kailas-cloud/plantdex/internal/version"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic("failed to load .env: " + err.Error())
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, "plantdex", cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting plantdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("semantic_search", cfg.Embedding.Enabled()),
	)

	ctx := context.Background()
	deps, err := app.Open(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer deps.Close()

	if created, err := deps.CatalogService(&cfg, logger).EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure catalog index", zap.Error(err))
	} else if created {
		logger.Warn("Catalog index was missing and has been created; seed it with plantctl")
	}

	// Pass a nil interface, not a typed nil pointer, when embedding is off.
	var embHealth healthuc.EmbeddingChecker
	if deps.Embedder != nil {
		embHealth = deps.Embedder
	}
	healthSvc := healthuc.New(deps.Catalog, embHealth)

	server := chiTransport.NewServer(deps.PlantService(&cfg), healthSvc, logger, chiTransport.ServerOptions{
		MaxQueryLength:    cfg.Search.MaxQueryLength,
		ExposeErrorDetail: !logpkg.IsProduction(env),
	})
	router := chiTransport.NewRouter(server, logger, chiTransport.RouterOptions{
		MetricsAPIKeys: cfg.Auth.APIKeys,
		RateLimit:      cfg.RateLimit.RPS,
		RateBurst:      cfg.RateLimit.Burst,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
