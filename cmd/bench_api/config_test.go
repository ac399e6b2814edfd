package main

import (
	"log/slog"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Load(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("ENV_PATH", "does-not-exist.env")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "")
		t.Setenv("ALERT_THRESHOLD", "")
		t.Setenv("LOG_LEVEL", "")

		cfg, err := NewAppConfig().Load()
		require.NoError(t, err)
		assert.Equal(t, storage.File, cfg.StorageConfig.Type)
		assert.Equal(t, 2.0, cfg.Threshold)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "in_mem")
		t.Setenv("ALERT_THRESHOLD", "150%")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := NewAppConfig().Load()
		require.NoError(t, err)
		assert.Equal(t, storage.InMem, cfg.StorageConfig.Type)
		assert.Equal(t, 1.5, cfg.Threshold)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "in_mem")
		t.Setenv("ALERT_THRESHOLD", "fast")
		t.Setenv("LOG_LEVEL", "")

		_, err := NewAppConfig().Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ALERT_THRESHOLD")
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "in_mem")
		t.Setenv("ALERT_THRESHOLD", "")
		t.Setenv("LOG_LEVEL", "chatty")

		_, err := NewAppConfig().Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_LEVEL")
	})
}
