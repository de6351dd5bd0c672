package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DiscordToken  string
	DatabaseURL   string
	LogLevel      string
	Environment   string
	CheckInterval time.Duration
	LegacyDataDir string // When set, legacy JSON files are imported on startup
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	intervalStr := os.Getenv("CHECK_INTERVAL")
	if intervalStr == "" {
		cfg.CheckInterval = time.Hour // Default: hourly birthday checks
	} else {
		interval, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CHECK_INTERVAL: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("CHECK_INTERVAL must be positive, got %s", interval)
		}
		cfg.CheckInterval = interval
	}

	cfg.LegacyDataDir = os.Getenv("LEGACY_DATA_DIR")

	return cfg, nil
}
