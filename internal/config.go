package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rbeckert/pagefold/internal/pagelist"
)

type Config struct {
	Env         string
	Port        int
	LogLevel    string
	DatabaseUrl string

	// Application base URL (for canonical links)
	BaseURL string

	// Feed pagination
	PerPage     int    // Entries per page
	Orphans     int    // Stragglers merged into the last page
	PageKey     string // Querystring key carrying the page number
	ElasticUnit int    // Base step size of the elastic page list

	// Seeding (development convenience)
	SeedEntries int // Entries generated into an empty feed; 0 disables

	// Periodic feed stats sampling for the metrics endpoint
	StatsInterval time.Duration

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Base URL defaults to localhost for development
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		// Pagination defaults
		PerPage:     getEnvInt("PER_PAGE", 10),
		Orphans:     getEnvInt("ORPHANS", 0),
		PageKey:     getEnv("PAGE_KEY", pagelist.DefaultPageKey),
		ElasticUnit: getEnvInt("ELASTIC_UNIT", pagelist.DefaultUnit),

		// Seeding defaults on in development so the feed is browsable
		SeedEntries: getEnvInt("SEED_ENTRIES", 120),

		StatsInterval: getEnvDuration("STATS_INTERVAL", time.Minute),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	if cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.PerPage < 1 {
		return nil, fmt.Errorf("PER_PAGE must be positive, got: %d", cfg.PerPage)
	}
	if cfg.Orphans < 0 {
		return nil, fmt.Errorf("ORPHANS must not be negative, got: %d", cfg.Orphans)
	}
	if cfg.ElasticUnit < 1 {
		return nil, fmt.Errorf("ELASTIC_UNIT must be positive, got: %d", cfg.ElasticUnit)
	}
	if cfg.PageKey == "" {
		return nil, fmt.Errorf("PAGE_KEY must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
