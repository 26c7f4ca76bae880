package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-level configuration loaded from the environment.
// Application tuning (labels, feature flags, performance) lives in the
// per-environment YAML file, see app.go.
type Config struct {
	// Server
	Port int

	// Warehouse serving tables
	DatabaseURL string

	// Response cache; empty disables memoization and the preset refresher
	RedisAddr string

	// Databricks workspace; both empty disables cluster details and insights
	DatabricksHost  string
	DatabricksToken string

	// Serving endpoint used for insight generation
	InsightModel string

	// Environment name selecting the app.<env>.yaml file
	Environment string

	// Directory holding the app.<env>.yaml files
	ConfigDir string
}

// Load reads configuration from the environment, loading a .env file first
// if one is present.
func Load() (*Config, error) {
	// Non-fatal if missing
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		DatabricksHost:  os.Getenv("DATABRICKS_HOST"),
		DatabricksToken: os.Getenv("DATABRICKS_TOKEN"),
		InsightModel:    getEnv("INSIGHT_MODEL", "databricks-claude-sonnet-4"),
		Environment:     getEnv("APP_ENV", "dev"),
		ConfigDir:       getEnv("CONFIG_DIR", "configs"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}
	cfg.Port = port

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if (cfg.DatabricksHost == "") != (cfg.DatabricksToken == "") {
		return nil, fmt.Errorf("DATABRICKS_HOST and DATABRICKS_TOKEN must be set together")
	}

	return cfg, nil
}

// WorkspaceConfigured reports whether the Databricks workspace client can be
// created.
func (c *Config) WorkspaceConfigured() bool {
	return c.DatabricksHost != "" && c.DatabricksToken != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
