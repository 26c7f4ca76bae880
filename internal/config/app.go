package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Platform is the cloud platform the workspace runs on. It drives the
// compute-cost display labels.
type Platform string

const (
	PlatformAWS   Platform = "aws"
	PlatformAzure Platform = "azure"
	PlatformGCP   Platform = "gcp"
)

// CloudConfig names the cloud platform behind the workspace.
type CloudConfig struct {
	Platform Platform `yaml:"platform" validate:"oneof=aws azure gcp"`
}

// FeatureConfig toggles optional dashboard surfaces.
type FeatureConfig struct {
	Insights        bool `yaml:"insights"`
	ClusterAnalysis bool `yaml:"cluster_analysis"`
	Export          bool `yaml:"export"`
}

// PerformanceConfig tunes query and cache behavior.
type PerformanceConfig struct {
	QueryTimeoutSeconds    int `yaml:"query_timeout_seconds" validate:"min=1"`
	CacheTTLMinutes        int `yaml:"cache_ttl_minutes" validate:"min=1"`
	RefreshIntervalMinutes int `yaml:"refresh_interval_minutes" validate:"min=1"`
}

// LoggingConfig holds logging tuning.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the per-environment application configuration loaded from
// app.<env>.yaml.
type AppConfig struct {
	Cloud       CloudConfig       `yaml:"cloud"`
	Features    FeatureConfig     `yaml:"features"`
	Performance PerformanceConfig `yaml:"performance"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// DefaultAppConfig returns the configuration used when no YAML file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Cloud: CloudConfig{Platform: PlatformAWS},
		Features: FeatureConfig{
			Insights:        true,
			ClusterAnalysis: true,
			Export:          true,
		},
		Performance: PerformanceConfig{
			QueryTimeoutSeconds:    30,
			CacheTTLMinutes:        5,
			RefreshIntervalMinutes: 15,
		},
		Logging: LoggingConfig{Level: "INFO"},
	}
}

// LoadAppConfig loads app.<env>.yaml from dir, falling back to app.dev.yaml
// and then to built-in defaults when neither file exists.
func LoadAppConfig(dir, env string) (*AppConfig, error) {
	filename := filepath.Join(dir, fmt.Sprintf("app.%s.yaml", env))

	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		filename = filepath.Join(dir, "app.dev.yaml")
		data, err = os.ReadFile(filename)
	}
	if os.IsNotExist(err) {
		return DefaultAppConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read app config %s: %w", filename, err)
	}

	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse app config YAML %s: %w", filename, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate app config %s: %w", filename, err)
	}

	return cfg, nil
}

// QueryTimeout returns the warehouse query timeout as a duration.
func (c *AppConfig) QueryTimeout() time.Duration {
	return time.Duration(c.Performance.QueryTimeoutSeconds) * time.Second
}

// CacheTTL returns the response cache freshness window.
func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Performance.CacheTTLMinutes) * time.Minute
}

// RefreshInterval returns the preset-summary refresher cadence.
func (c *AppConfig) RefreshInterval() time.Duration {
	return time.Duration(c.Performance.RefreshIntervalMinutes) * time.Minute
}

// CostLabels are the display labels for the two cost components.
type CostLabels struct {
	Compute  string
	Platform string
}

// computeServiceNames maps platform to compute service name for labels.
var computeServiceNames = map[Platform]string{
	PlatformAWS:   "EC2",
	PlatformAzure: "Azure Compute",
	PlatformGCP:   "GCE",
}

// CostLabels returns the platform-specific labels used by cost-split charts
// and CSV exports.
func (c *AppConfig) CostLabels() CostLabels {
	svc, ok := computeServiceNames[c.Cloud.Platform]
	if !ok {
		svc = computeServiceNames[PlatformAWS]
	}
	return CostLabels{
		Compute:  svc + " Cost",
		Platform: "Databricks Cost",
	}
}
