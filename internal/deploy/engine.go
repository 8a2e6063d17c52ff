package deploy

import (
	"context"
	"fmt"
	"sort"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
)

// EngineSpec describes the hosted agent to create.
type EngineSpec struct {
	// Parent is "projects/<project>/locations/<location>".
	Parent      string
	DisplayName string
	Description string
	BundleURI   string
	Env         map[string]string
}

// EngineCreator creates a hosted agent and returns its resource name.
type EngineCreator interface {
	Create(ctx context.Context, spec EngineSpec) (string, error)
}

// VertexEngineCreator creates Vertex AI Agent Engine (reasoning engine)
// resources.
type VertexEngineCreator struct {
	client *aiplatform.ReasoningEngineClient
}

// NewVertexEngineCreator connects to the regional aiplatform endpoint.
func NewVertexEngineCreator(ctx context.Context, location string) (*VertexEngineCreator, error) {
	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)
	client, err := aiplatform.NewReasoningEngineClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("aiplatform.NewReasoningEngineClient: %w", err)
	}
	return &VertexEngineCreator{client: client}, nil
}

// Close releases the aiplatform client.
func (c *VertexEngineCreator) Close() error {
	return c.client.Close()
}

func (c *VertexEngineCreator) Create(ctx context.Context, spec EngineSpec) (string, error) {
	op, err := c.client.CreateReasoningEngine(ctx, &aiplatformpb.CreateReasoningEngineRequest{
		Parent: spec.Parent,
		ReasoningEngine: &aiplatformpb.ReasoningEngine{
			DisplayName: spec.DisplayName,
			Description: spec.Description,
			Spec: &aiplatformpb.ReasoningEngineSpec{
				// PackageSpec targets the Python runtime; no pickle object is staged.
				PackageSpec: &aiplatformpb.ReasoningEngineSpec_PackageSpec{
					DependencyFilesGcsUri: spec.BundleURI,
				},
				DeploymentSpec: &aiplatformpb.ReasoningEngineSpec_DeploymentSpec{
					Env: envVars(spec.Env),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create reasoning engine: %w", err)
	}

	engine, err := op.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("wait for reasoning engine: %w", err)
	}
	return engine.GetName(), nil
}

// envVars converts env to the API shape, sorted by name.
func envVars(env map[string]string) []*aiplatformpb.EnvVar {
	names := make([]string, 0, len(env))
	for k := range env {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]*aiplatformpb.EnvVar, 0, len(names))
	for _, k := range names {
		out = append(out, &aiplatformpb.EnvVar{Name: k, Value: env[k]})
	}
	return out
}
