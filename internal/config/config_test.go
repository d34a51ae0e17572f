package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddress)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.SeedFile)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("ACTIVITIES_HTTP_ADDRESS", "127.0.0.1:9000")
	t.Setenv("ACTIVITIES_LOG_LEVEL", "debug")
	t.Setenv("ACTIVITIES_LOG_FORMAT", "console")
	t.Setenv("ACTIVITIES_METRICS_ENABLED", "false")
	t.Setenv("ACTIVITIES_SEED_FILE", "/etc/activities.json")
	t.Setenv("ACTIVITIES_WRITE_TIMEOUT", "30s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "/etc/activities.json", cfg.SeedFile)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"ACTIVITIES_LOG_LEVEL":       "verbose",
		"ACTIVITIES_LOG_FORMAT":      "xml",
		"ACTIVITIES_GIN_MODE":        "prod",
		"ACTIVITIES_READ_TIMEOUT":    "soon",
		"ACTIVITIES_METRICS_ENABLED": "maybe",
		"ACTIVITIES_IDLE_TIMEOUT":    "-1s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
