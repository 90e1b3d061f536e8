package mail

import (
	"context"

	"github.com/google/uuid"

	"skrbl-automation-platform/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.Mailer = (*NoopMailer)(nil)

// NoopMailer accepts every send without delivering. Used in dev and tests.
type NoopMailer struct{}

func NewNoopMailer() *NoopMailer { return &NoopMailer{} }

func (n *NoopMailer) Configured() bool { return false }

func (n *NoopMailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	return "noop-" + uuid.NewString()[:8], nil
}
