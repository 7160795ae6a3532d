// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// GoogleAIGenerator produces enrichment text with a Gemini model through
// langchaingo.
type GoogleAIGenerator struct {
	llm llms.Model
}

// NewGoogleAIGenerator builds the Gemini client. Call it only when an API
// key is configured; without one the enrichment stage stays off entirely.
func NewGoogleAIGenerator(ctx context.Context, cfg types.EnrichConfig) (*GoogleAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(model))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GoogleAIGenerator{llm: llm}, nil
}

// GenerateText sends one prompt and returns the raw completion.
func (g *GoogleAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini generation: %w", err)
	}
	return text, nil
}
