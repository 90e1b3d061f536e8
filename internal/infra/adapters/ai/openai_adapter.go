package ai

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pkoukk/tiktoken-go"

	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.TextGenerator = (*OpenAIAdapter)(nil)

// promptTokenBudget caps the prompt side of an enrichment call. Oversized
// prompts are rejected before the network round trip.
const promptTokenBudget = 1024

// OpenAIAdapter implements adapter.TextGenerator via Chat Completions.
type OpenAIAdapter struct {
	client openai.Client
	model  string
	enc    *tiktoken.Tiktoken
}

func NewOpenAIAdapter(apiKey, model string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &OpenAIAdapter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		enc:    enc,
	}, nil
}

func (o *OpenAIAdapter) Name() string { return "openai" }

func (o *OpenAIAdapter) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	inTokens := len(o.enc.Encode(prompt, nil, nil))
	if inTokens > promptTokenBudget {
		return "", errors.New("prompt exceeds token budget")
	}
	metrics.AddAITokensIn(o.Name(), inTokens)

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	metrics.ObserveAICall(o.Name(), err == nil, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
