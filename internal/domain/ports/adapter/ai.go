package adapter

import "context"

// TextGenerator produces a short completion for a prompt. Implementations
// enforce their own token budget and deadline; callers treat any error as a
// signal to fall back to template output.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Name() string
}
