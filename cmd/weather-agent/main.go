// Command weather-agent runs the weather assistant through the ADK launcher.
//
// Usage:
//
//	weather-agent console
//	weather-agent web api webui
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"

	"github.com/i474232898/weather-agent/internal/agent"
	"github.com/i474232898/weather-agent/internal/config"
	"github.com/i474232898/weather-agent/internal/logging"
	"github.com/i474232898/weather-agent/internal/weather"
	"github.com/i474232898/weather-agent/internal/weather/providers"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	desc, err := agent.LoadDescriptor(cfg.AgentConfigDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load agent descriptor")
	}

	provider := providers.NewWeatherbitProvider(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.WeatherbitAPIKey,
		providers.WithBaseURL(cfg.WeatherbitBaseURL))
	weatherTool, err := agent.NewWeatherTool(weather.NewService(provider))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create tool")
	}

	model, err := agent.NewModel(ctx, desc, agent.ModelConfig{
		APIKey:      cfg.GoogleAPIKey,
		UseVertexAI: cfg.UseVertexAI,
		Project:     cfg.Project,
		Location:    cfg.Location,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create model")
	}

	a, err := agent.New(desc, model, weatherTool)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create agent")
	}

	config := &launcher.Config{
		AgentLoader: adkagent.NewSingleLoader(a),
	}

	l := full.NewLauncher()
	if err = l.Execute(ctx, config, os.Args[1:]); err != nil {
		log.Fatal().Err(err).Str("usage", l.CommandLineSyntax()).Msg("run failed")
	}
}
