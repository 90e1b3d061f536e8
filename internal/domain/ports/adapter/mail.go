package adapter

import "context"

// Mailer sends a single transactional email. Returns a provider message id.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
	Configured() bool
}
