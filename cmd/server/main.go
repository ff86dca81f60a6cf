package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rbeckert/pagefold/internal"
	"github.com/rbeckert/pagefold/internal/handler"
	"github.com/rbeckert/pagefold/internal/metrics"
	"github.com/rbeckert/pagefold/internal/middleware"
	"github.com/rbeckert/pagefold/internal/repository"
	"github.com/rbeckert/pagefold/internal/service"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository
	repo := repository.New(db)

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		TemplatesDir: "web/templates",
		Logger:       logger,
		IsDev:        cfg.Env == "development",
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}

	// Initialize services
	entryService := service.NewEntryService(repo, logger)

	// Seed an empty feed so the page lists have something to summarize
	if cfg.SeedEntries > 0 {
		if err := entryService.Seed(ctx, cfg.SeedEntries); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}

	// Initialize handlers
	entryHandler := handler.NewEntryHandler(entryService, renderer, logger, handler.EntryHandlerConfig{
		PerPage:     cfg.PerPage,
		Orphans:     cfg.Orphans,
		PageKey:     cfg.PageKey,
		ElasticUnit: cfg.ElasticUnit,
	})

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	staticFS := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint (basic auth when configured)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	// Feed routes
	mux.HandleFunc("GET /{$}", entryHandler.Feed)
	mux.HandleFunc("GET /archive", entryHandler.Archive)
	mux.HandleFunc("GET /entries/{id}", entryHandler.Show)

	// ==========================================================================
	// Middleware
	// ==========================================================================

	isSecure := cfg.Env != "development"

	requestLogging := middleware.NewRequestLoggingMiddleware(logger, cfg.PageKey)
	securityHeaders := middleware.NewSecurityHeadersMiddleware(isSecure)
	rateLimit := middleware.NewRateLimitMiddleware(
		middleware.NewRateLimiter(300, time.Minute, logger),
		logger,
	)

	chain := middleware.Stack(
		requestLogging.Handler,
		metrics.Middleware,
		securityHeaders.Handler,
		rateLimit.Limit,
	)

	// ==========================================================================
	// Background workers
	// ==========================================================================

	samplerCtx, stopSampler := context.WithCancel(ctx)
	defer stopSampler()

	sampler := metrics.NewSampler(repo, cfg.StatsInterval, logger)
	go sampler.Run(samplerCtx)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: chain(mux),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	stopSampler()

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
