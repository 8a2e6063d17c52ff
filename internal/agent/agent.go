// Package agent declares the weather assistant and wires it to the ADK
// runtime: its descriptor, its single lookup tool and the Gemini model.
package agent

import (
	"context"
	"fmt"

	adkagent "google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

// ModelConfig selects the Gemini backend.
type ModelConfig struct {
	APIKey      string
	UseVertexAI bool
	Project     string
	Location    string
}

// NewModel creates the Gemini model named by d.
func NewModel(ctx context.Context, d Descriptor, cfg ModelConfig) (model.LLM, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.UseVertexAI {
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: cfg.Location,
		}
	}
	m, err := gemini.NewModel(ctx, d.Model, cc)
	if err != nil {
		return nil, fmt.Errorf("create model %s: %w", d.Model, err)
	}
	return m, nil
}

// New builds the LLM agent described by d.
func New(d Descriptor, m model.LLM, tools ...tool.Tool) (adkagent.Agent, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("model is required")
	}

	a, err := llmagent.New(llmagent.Config{
		Name:        d.Name,
		Model:       m,
		Description: d.Description,
		Instruction: d.Instruction,
		GenerateContentConfig: &genai.GenerateContentConfig{
			Temperature: genai.Ptr(d.Temperature),
		},
		Tools: tools,
	})
	if err != nil {
		return nil, fmt.Errorf("create agent %s: %w", d.Name, err)
	}
	return a, nil
}
