package ai

import (
	"context"
	"errors"

	"skrbl-automation-platform/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.TextGenerator = (*NoopAdapter)(nil)

// NoopAdapter always fails, forcing callers onto the template fallback. Used
// when no AI provider is configured.
type NoopAdapter struct{}

func NewNoopAdapter() *NoopAdapter { return &NoopAdapter{} }

func (n *NoopAdapter) Name() string { return "noop" }

func (n *NoopAdapter) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", errors.New("no ai provider configured")
}
