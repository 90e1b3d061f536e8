package adapter

import "context"

// SMSSender sends a single SMS. Returns a provider message id.
type SMSSender interface {
	Send(ctx context.Context, to, body string) (string, error)
	Configured() bool
}
