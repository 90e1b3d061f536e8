package adapter

import "context"

// WorkflowTrigger fires an external workflow webhook. Delivery is best-effort
// and at-most-once: callers record the outcome but never retry.
type WorkflowTrigger interface {
	Trigger(ctx context.Context, event string, payload map[string]any) error
	Configured() bool
}
