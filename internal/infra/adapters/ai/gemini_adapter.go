package ai

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"

	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.TextGenerator = (*GeminiAdapter)(nil)

// GeminiAdapter implements adapter.TextGenerator on the Gemini API.
type GeminiAdapter struct {
	client *genai.Client
	model  string
}

func NewGeminiAdapter(ctx context.Context, apiKey, model string) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key empty")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: client, model: model}, nil
}

func (g *GeminiAdapter) Name() string { return "gemini" }

func (g *GeminiAdapter) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	})
	metrics.ObserveAICall(g.Name(), err == nil, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}
