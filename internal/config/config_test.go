package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, ".", cfg.MapDir)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 8.0, cfg.MapWidth)
	assert.Equal(t, 6.0, cfg.MapHeight)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("FARS_DATA_DIR", "/data/fars")
	t.Setenv("FARS_MAP_DIR", "/data/maps")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MAP_WIDTH_IN", "10")
	t.Setenv("MAP_HEIGHT_IN", "7.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/fars", cfg.DataDir)
	assert.Equal(t, "/data/maps", cfg.MapDir)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10.0, cfg.MapWidth)
	assert.Equal(t, 7.5, cfg.MapHeight)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-5s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_UnparseableDuration(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_InvalidMapGeometry(t *testing.T) {
	t.Setenv("MAP_WIDTH_IN", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_WIDTH_IN")
}
