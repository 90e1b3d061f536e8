package workflow

import (
	"context"

	"skrbl-automation-platform/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.WorkflowTrigger = (*NoopTrigger)(nil)

// NoopTrigger swallows every trigger. Used when no n8n instance is configured.
type NoopTrigger struct{}

func NewNoopTrigger() *NoopTrigger { return &NoopTrigger{} }

func (n *NoopTrigger) Configured() bool { return false }

func (n *NoopTrigger) Trigger(ctx context.Context, event string, payload map[string]any) error {
	return nil
}
