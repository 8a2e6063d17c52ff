package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appKeys = []string{
	"WEATHERBIT_API_KEY", "WEATHERBIT_BASE_URL", "WEATHER_HTTP_TIMEOUT", "PORT",
	"LOG_LEVEL", "LOG_FORMAT", "AGENT_CONFIG_DIR", "GOOGLE_API_KEY",
	"GOOGLE_GENAI_USE_VERTEXAI", "GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_PROJECT_ID",
	"GOOGLE_CLOUD_LOCATION", "GOOGLE_CLOUD_REGION",
	"GOOGLE_CLOUD_STAGING_BUCKET", "STAGING_BUCKET", "AGENT_DISPLAY_NAME", "AGENT_EXTRA_PACKAGES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range appKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.WeatherbitAPIKey)
	assert.Equal(t, "https://api.weatherbit.io/v2.0", cfg.WeatherbitBaseURL)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, ".", cfg.AgentConfigDir)
	assert.False(t, cfg.UseVertexAI)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHERBIT_API_KEY", "k")
	t.Setenv("WEATHER_HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "TRUE")
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "proj")
	t.Setenv("GOOGLE_CLOUD_REGION", "us-central1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.WeatherbitAPIKey)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.UseVertexAI)
	assert.Equal(t, "proj", cfg.Project)
	assert.Equal(t, "us-central1", cfg.Location)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"WEATHER_HTTP_TIMEOUT":      "soon",
		"PORT":                      "http",
		"LOG_FORMAT":                "xml",
		"GOOGLE_GENAI_USE_VERTEXAI": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadVertexRequiresProject(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "true")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDeploy(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "proj")
	t.Setenv("GOOGLE_CLOUD_LOCATION", "us-central1")
	t.Setenv("STAGING_BUCKET", "gs://fallback")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "TRUE")
	t.Setenv("AGENT_EXTRA_PACKAGES", " internal , ,go.mod")

	cfg, err := LoadDeploy()
	require.NoError(t, err)
	assert.Equal(t, "gs://fallback", cfg.StagingBucket)
	assert.Equal(t, "weather-agent", cfg.DisplayName)
	assert.Equal(t, []string{"internal", "go.mod"}, cfg.ExtraPackages)
	assert.Equal(t, "TRUE", cfg.UseVertexAI)

	t.Setenv("GOOGLE_CLOUD_STAGING_BUCKET", "gs://primary")
	cfg, err = LoadDeploy()
	require.NoError(t, err)
	assert.Equal(t, "gs://primary", cfg.StagingBucket)
}

func TestLoadDeployRequiresVertexFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "proj")
	t.Setenv("GOOGLE_CLOUD_LOCATION", "us-central1")
	t.Setenv("GOOGLE_CLOUD_STAGING_BUCKET", "gs://bucket")

	_, err := LoadDeploy()
	assert.Error(t, err)
}
