package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbspend360/dbspend360/internal/config"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/spends")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DATABRICKS_HOST", "")
	t.Setenv("DATABRICKS_TOKEN", "")
	t.Setenv("PORT", "8080")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setBaseEnv(t)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost:5432/spends", cfg.DatabaseURL)
		assert.Equal(t, "databricks-claude-sonnet-4", cfg.InsightModel)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "configs", cfg.ConfigDir)
		assert.False(t, cfg.WorkspaceConfigured())
	})

	t.Run("requires DATABASE_URL", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DATABASE_URL", "")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("rejects invalid PORT", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("PORT", "not-a-port")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("requires host and token together", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DATABRICKS_HOST", "https://example.cloud.databricks.com")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("workspace configured with both set", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DATABRICKS_HOST", "https://example.cloud.databricks.com")
		t.Setenv("DATABRICKS_TOKEN", "dapi-test")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.True(t, cfg.WorkspaceConfigured())
	})
}
