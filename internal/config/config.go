package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/fadedpez/blackjack/internal/logging"
)

// Storage backends for banks and round history
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Table configuration
	StartingBank int64

	// Persistence
	StorageType string
	DataDir     string

	// Elasticsearch is optional; results are only indexed when URL is set
	ElasticsearchURL         string
	ElasticsearchUsername    string
	ElasticsearchPassword    string
	ElasticsearchIndexPrefix string

	// Logging
	LogLevel string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	bank, err := strconv.ParseInt(getEnvWithDefault("STARTING_BANK", "100"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("STARTING_BANK must be a whole number: %w", err)
	}

	cfg := &Config{
		StartingBank:             bank,
		StorageType:              getEnvWithDefault("STORAGE_TYPE", StorageMemory),
		DataDir:                  getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		ElasticsearchURL:         os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUsername:    os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword:    os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndexPrefix: getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "blackjack"),
		LogLevel:                 getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:              getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.StorageType == StorageSQLite {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks that the configuration is usable. Call it again after
// overriding fields from command line flags.
func (c *Config) Validate() error {
	if c.StartingBank <= 0 {
		return fmt.Errorf("STARTING_BANK must be positive, got %d", c.StartingBank)
	}
	switch c.StorageType {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageSQLite, c.StorageType)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// DatabasePath is where the SQLite database lives
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "blackjack.db")
}

// Level returns the parsed log level, falling back to INFO
func (c *Config) Level() logging.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
