package sms

import (
	"context"

	"github.com/google/uuid"

	"skrbl-automation-platform/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.SMSSender = (*NoopSender)(nil)

// NoopSender accepts every send without delivering. Used in dev and tests.
type NoopSender struct{}

func NewNoopSender() *NoopSender { return &NoopSender{} }

func (n *NoopSender) Configured() bool { return false }

func (n *NoopSender) Send(ctx context.Context, to, body string) (string, error) {
	return "noop-" + uuid.NewString()[:8], nil
}
