package repository

import (
	"context"
	"encoding/json"

	"skrbl-automation-platform/internal/domain/model"
)

// JobUpdate is a partial, conditional update applied by a status transition.
// Nil fields are left untouched.
type JobUpdate struct {
	Status   *model.JobStatus
	Progress *int
	Output   json.RawMessage
	Error    *string
}

// JobRepository persists agent jobs. Transitions are single conditional
// updates: they match only non-terminal rows, so a terminal job is immutable
// at the data layer.
type JobRepository interface {
	Create(ctx context.Context, tx Tx, job *model.Job) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Job, error)
	// ApplyTransition updates a non-terminal job in place. Returns
	// domain.ErrNotFound when no row has the id and domain.ErrTerminalJob when
	// the row exists but is already complete or failed.
	ApplyTransition(ctx context.Context, tx Tx, id string, upd JobUpdate) error
	// ClaimQueued atomically fetches the oldest queued job and marks it
	// in_progress (FOR UPDATE SKIP LOCKED). Returns domain.ErrNotFound when the
	// queue is empty.
	ClaimQueued(ctx context.Context, jobType string) (*model.Job, error)
}
