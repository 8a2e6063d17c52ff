// Package deploy packages the weather agent and uploads it to Vertex AI
// Agent Engine.
package deploy

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-agent/internal/config"
)

// Deployer runs bundle, stage and create.
type Deployer struct {
	cfg     *config.DeployConfig
	root    string
	stager  Stager
	creator EngineCreator
	newID   func() string
}

// New creates a Deployer packaging paths relative to root.
func New(cfg *config.DeployConfig, root string, stager Stager, creator EngineCreator) *Deployer {
	return &Deployer{
		cfg:     cfg,
		root:    root,
		stager:  stager,
		creator: creator,
		newID:   uuid.NewString,
	}
}

// Run deploys the agent and returns the created resource name.
func (d *Deployer) Run(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := Bundle(&buf, d.root, d.cfg.ExtraPackages); err != nil {
		return "", err
	}
	log.Info().Int("bytes", buf.Len()).Strs("packages", d.cfg.ExtraPackages).Msg("bundled agent")

	object := fmt.Sprintf("agent_engine/%s/%s.tar.gz", d.cfg.DisplayName, d.newID())
	uri, err := d.stager.Stage(ctx, d.cfg.StagingBucket, object, &buf)
	if err != nil {
		return "", fmt.Errorf("stage bundle: %w", err)
	}
	log.Info().Str("uri", uri).Msg("staged agent bundle")

	name, err := d.creator.Create(ctx, EngineSpec{
		Parent:      fmt.Sprintf("projects/%s/locations/%s", d.cfg.Project, d.cfg.Location),
		DisplayName: d.cfg.DisplayName,
		Description: "Weather assistant backed by the Weatherbit current conditions API.",
		BundleURI:   uri,
		Env:         d.runtimeEnv(),
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// runtimeEnv is the environment injected into the hosted agent.
func (d *Deployer) runtimeEnv() map[string]string {
	env := map[string]string{
		"GOOGLE_GENAI_USE_VERTEXAI": d.cfg.UseVertexAI,
		"GOOGLE_CLOUD_PROJECT_ID":   d.cfg.Project,
		"GOOGLE_CLOUD_REGION":       d.cfg.Location,
	}
	if d.cfg.WeatherbitAPIKey == "" {
		log.Warn().Msg("WEATHERBIT_API_KEY is empty; the deployed tool will report a missing credential")
	} else {
		env["WEATHERBIT_API_KEY"] = d.cfg.WeatherbitAPIKey
	}
	return env
}
