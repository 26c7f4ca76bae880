package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbspend360/dbspend360/internal/config"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadAppConfig(t *testing.T) {
	t.Run("loads the environment file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "app.prod.yaml", `
cloud:
  platform: azure
features:
  insights: true
  cluster_analysis: false
  export: true
performance:
  query_timeout_seconds: 60
  cache_ttl_minutes: 10
  refresh_interval_minutes: 30
logging:
  level: WARNING
`)

		cfg, err := config.LoadAppConfig(dir, "prod")
		require.NoError(t, err)

		assert.Equal(t, config.PlatformAzure, cfg.Cloud.Platform)
		assert.False(t, cfg.Features.ClusterAnalysis)
		assert.Equal(t, 60*time.Second, cfg.QueryTimeout())
		assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
		assert.Equal(t, 30*time.Minute, cfg.RefreshInterval())
		assert.Equal(t, "WARNING", cfg.Logging.Level)
	})

	t.Run("falls back to app.dev.yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "app.dev.yaml", `
cloud:
  platform: gcp
`)

		cfg, err := config.LoadAppConfig(dir, "staging")
		require.NoError(t, err)
		assert.Equal(t, config.PlatformGCP, cfg.Cloud.Platform)
	})

	t.Run("falls back to defaults when no file exists", func(t *testing.T) {
		cfg, err := config.LoadAppConfig(t.TempDir(), "prod")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultAppConfig(), cfg)
	})

	t.Run("partial file keeps defaults for missing sections", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "app.dev.yaml", `
features:
  export: false
`)

		cfg, err := config.LoadAppConfig(dir, "dev")
		require.NoError(t, err)

		assert.False(t, cfg.Features.Export)
		assert.Equal(t, config.PlatformAWS, cfg.Cloud.Platform)
		assert.Equal(t, 30*time.Second, cfg.QueryTimeout())
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "app.dev.yaml", `
cloud:
  platform: onprem
`)

		_, err := config.LoadAppConfig(dir, "dev")
		assert.Error(t, err)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "app.dev.yaml", "cloud: [unclosed")

		_, err := config.LoadAppConfig(dir, "dev")
		assert.Error(t, err)
	})
}

func TestCostLabels(t *testing.T) {
	cases := []struct {
		platform config.Platform
		compute  string
	}{
		{config.PlatformAWS, "EC2 Cost"},
		{config.PlatformAzure, "Azure Compute Cost"},
		{config.PlatformGCP, "GCE Cost"},
	}

	for _, tc := range cases {
		t.Run(string(tc.platform), func(t *testing.T) {
			cfg := config.DefaultAppConfig()
			cfg.Cloud.Platform = tc.platform

			labels := cfg.CostLabels()
			assert.Equal(t, tc.compute, labels.Compute)
			assert.Equal(t, "Databricks Cost", labels.Platform)
		})
	}

	t.Run("unknown platform defaults to AWS labels", func(t *testing.T) {
		cfg := config.DefaultAppConfig()
		cfg.Cloud.Platform = config.Platform("other")
		assert.Equal(t, "EC2 Cost", cfg.CostLabels().Compute)
	})
}
