// Command deploy-agent packages the weather agent and creates it on Vertex AI
// Agent Engine. Run it from the repository root.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-agent/internal/config"
	"github.com/i474232898/weather-agent/internal/deploy"
	"github.com/i474232898/weather-agent/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadDeploy()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load deploy config")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	stager, err := deploy.NewGCSStager(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create stager")
	}
	defer stager.Close()

	creator, err := deploy.NewVertexEngineCreator(ctx, cfg.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create engine client")
	}
	defer creator.Close()

	name, err := deploy.New(cfg, ".", stager, creator).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("deploy failed")
	}
	fmt.Printf("Deployed remote app resource: %s\n", name)
}
