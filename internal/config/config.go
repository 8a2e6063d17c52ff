package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type AppConfig struct {
	// WeatherbitAPIKey may be empty; lookups then report the missing credential.
	WeatherbitAPIKey  string
	WeatherbitBaseURL string `validate:"required,url"`

	// HTTPTimeout bounds outbound provider calls (0 = no client timeout).
	HTTPTimeout time.Duration

	Port      string `validate:"required,numeric"`
	LogLevel  string `validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `validate:"required,oneof=console json"`

	// AgentConfigDir is searched for an optional agent.yaml.
	AgentConfigDir string

	// Model backend.
	GoogleAPIKey string
	UseVertexAI  bool
	Project      string `validate:"required_if=UseVertexAI true"`
	Location     string `validate:"required_if=UseVertexAI true"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	loadDotEnv()
	cfg := &AppConfig{}

	cfg.WeatherbitAPIKey = os.Getenv("WEATHERBIT_API_KEY")
	cfg.WeatherbitBaseURL = getenvDefault("WEATHERBIT_BASE_URL", "https://api.weatherbit.io/v2.0")

	timeout, err := time.ParseDuration(getenvDefault("WEATHER_HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: must not be negative")
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "console"))
	cfg.AgentConfigDir = getenvDefault("AGENT_CONFIG_DIR", ".")

	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	useVertex, err := getenvBool("GOOGLE_GENAI_USE_VERTEXAI", false)
	if err != nil {
		return nil, err
	}
	cfg.UseVertexAI = useVertex
	// The deployed runtime receives *_PROJECT_ID / *_REGION.
	cfg.Project = getenvFirst("GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_PROJECT_ID")
	cfg.Location = getenvFirst("GOOGLE_CLOUD_LOCATION", "GOOGLE_CLOUD_REGION")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DeployConfig holds what the deploy command needs to stage and create the
// hosted agent.
type DeployConfig struct {
	Project       string `validate:"required"`
	Location      string `validate:"required"`
	StagingBucket string `validate:"required"`
	// UseVertexAI is forwarded verbatim to the hosted runtime.
	UseVertexAI      string `validate:"required"`
	WeatherbitAPIKey string

	DisplayName   string   `validate:"required"`
	ExtraPackages []string `validate:"min=1,dive,required"`

	LogLevel  string `validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `validate:"required,oneof=console json"`
}

// LoadDeploy reads the deploy command's configuration from environment.
func LoadDeploy() (*DeployConfig, error) {
	loadDotEnv()
	cfg := &DeployConfig{
		Project:          os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location:         os.Getenv("GOOGLE_CLOUD_LOCATION"),
		StagingBucket:    getenvFirst("GOOGLE_CLOUD_STAGING_BUCKET", "STAGING_BUCKET"),
		UseVertexAI:      os.Getenv("GOOGLE_GENAI_USE_VERTEXAI"),
		WeatherbitAPIKey: os.Getenv("WEATHERBIT_API_KEY"),
		DisplayName:      getenvDefault("AGENT_DISPLAY_NAME", "weather-agent"),
		ExtraPackages:    splitList(getenvDefault("AGENT_EXTRA_PACKAGES", "go.mod,go.sum,cmd/weather-agent,internal")),
		LogLevel:         strings.ToLower(getenvDefault("LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(getenvDefault("LOG_FORMAT", "console")),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid deploy config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file found or error loading it")
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvFirst returns the first non-empty value among keys.
func getenvFirst(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
