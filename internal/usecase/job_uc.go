package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"

	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
	"skrbl-automation-platform/internal/infra/metrics"
)

// Compile-time check
var _ JobUseCase = (*jobUC)(nil)

// JobUseCase drives the agent job lifecycle:
// queued -> in_progress -> complete | failed.
type JobUseCase interface {
	Create(ctx context.Context, jobType, userID string) (*model.Job, error)
	Get(ctx context.Context, id string) (*model.Job, error)
	MarkStarted(ctx context.Context, id string) error
	UpdateProgress(ctx context.Context, id string, progress int) error
	MarkComplete(ctx context.Context, id string, output json.RawMessage) error
	MarkFailed(ctx context.Context, id string, msg string) error
}

type jobUC struct {
	jobs repository.JobRepository
}

func NewJobUseCase(jobs repository.JobRepository) *jobUC {
	return &jobUC{jobs: jobs}
}

func (u *jobUC) Create(ctx context.Context, jobType, userID string) (*model.Job, error) {
	now := time.Now()
	job := &model.Job{
		ID:        ulid.Make().String(),
		Type:      jobType,
		UserID:    userID,
		Status:    model.JobStatusQueued,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.jobs.Create(ctx, repository.NoTX, job); err != nil {
		return nil, err
	}
	metrics.IncJobCreated(jobType)
	return job, nil
}

func (u *jobUC) Get(ctx context.Context, id string) (*model.Job, error) {
	return u.jobs.FindByID(ctx, repository.NoTX, id)
}

func (u *jobUC) MarkStarted(ctx context.Context, id string) error {
	status := model.JobStatusInProgress
	progress := 10
	return u.jobs.ApplyTransition(ctx, repository.NoTX, id, repository.JobUpdate{
		Status:   &status,
		Progress: &progress,
	})
}

// UpdateProgress clamps progress into [0,100]. The store keeps progress
// monotone, so a clamped value below the current one is a no-op on the column.
func (u *jobUC) UpdateProgress(ctx context.Context, id string, progress int) error {
	progress = clampProgress(progress)
	return u.jobs.ApplyTransition(ctx, repository.NoTX, id, repository.JobUpdate{
		Progress: &progress,
	})
}

func (u *jobUC) MarkComplete(ctx context.Context, id string, output json.RawMessage) error {
	status := model.JobStatusComplete
	progress := 100
	err := u.jobs.ApplyTransition(ctx, repository.NoTX, id, repository.JobUpdate{
		Status:   &status,
		Progress: &progress,
		Output:   output,
	})
	if err == nil {
		metrics.IncJobFinished("complete")
	}
	return err
}

func (u *jobUC) MarkFailed(ctx context.Context, id string, msg string) error {
	if msg == "" {
		// failed always carries a non-empty error string
		msg = "job failed"
	}
	status := model.JobStatusFailed
	err := u.jobs.ApplyTransition(ctx, repository.NoTX, id, repository.JobUpdate{
		Status: &status,
		Error:  &msg,
	})
	if err == nil {
		metrics.IncJobFinished("failed")
	}
	return err
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
