package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/usecase"
)

func TestJobLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("create starts queued with zero progress", func(t *testing.T) {
		repo := newMemJobRepo()
		uc := usecase.NewJobUseCase(repo)

		job, err := uc.Create(ctx, "social_content", "user-1")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if job.ID == "" {
			t.Error("expected a generated job id")
		}
		if job.Status != model.JobStatusQueued {
			t.Errorf("expected status queued, got %s", job.Status)
		}
		if job.Progress != 0 {
			t.Errorf("expected progress 0, got %d", job.Progress)
		}
	})

	t.Run("full run reaches complete with progress 100 and output", func(t *testing.T) {
		repo := newMemJobRepo()
		uc := usecase.NewJobUseCase(repo)

		job, _ := uc.Create(ctx, "social_content", "user-1")
		if err := uc.MarkStarted(ctx, job.ID); err != nil {
			t.Fatalf("mark started: %v", err)
		}
		if err := uc.UpdateProgress(ctx, job.ID, 60); err != nil {
			t.Fatalf("update progress: %v", err)
		}
		output := json.RawMessage(`{"posts":3}`)
		if err := uc.MarkComplete(ctx, job.ID, output); err != nil {
			t.Fatalf("mark complete: %v", err)
		}

		got, _ := uc.Get(ctx, job.ID)
		if got.Status != model.JobStatusComplete {
			t.Errorf("expected status complete, got %s", got.Status)
		}
		if got.Progress != 100 {
			t.Errorf("expected progress 100, got %d", got.Progress)
		}
		if string(got.Output) != `{"posts":3}` {
			t.Errorf("unexpected output: %s", got.Output)
		}
	})

	t.Run("terminal jobs reject further transitions", func(t *testing.T) {
		repo := newMemJobRepo()
		uc := usecase.NewJobUseCase(repo)

		job, _ := uc.Create(ctx, "social_content", "user-1")
		if err := uc.MarkComplete(ctx, job.ID, nil); err != nil {
			t.Fatalf("mark complete: %v", err)
		}

		if err := uc.MarkFailed(ctx, job.ID, "boom"); !errors.Is(err, domain.ErrTerminalJob) {
			t.Errorf("expected ErrTerminalJob, got %v", err)
		}
		if err := uc.UpdateProgress(ctx, job.ID, 50); !errors.Is(err, domain.ErrTerminalJob) {
			t.Errorf("expected ErrTerminalJob, got %v", err)
		}

		got, _ := uc.Get(ctx, job.ID)
		if got.Status != model.JobStatusComplete || got.Error != "" {
			t.Errorf("terminal job was mutated: status=%s error=%q", got.Status, got.Error)
		}
	})

	t.Run("progress is clamped and never regresses", func(t *testing.T) {
		repo := newMemJobRepo()
		uc := usecase.NewJobUseCase(repo)

		job, _ := uc.Create(ctx, "social_content", "user-1")
		_ = uc.MarkStarted(ctx, job.ID)
		_ = uc.UpdateProgress(ctx, job.ID, 150)

		got, _ := uc.Get(ctx, job.ID)
		if got.Progress != 100 {
			t.Errorf("expected progress clamped to 100, got %d", got.Progress)
		}

		_ = uc.UpdateProgress(ctx, job.ID, -5)
		got, _ = uc.Get(ctx, job.ID)
		if got.Progress != 100 {
			t.Errorf("expected progress to hold at 100, got %d", got.Progress)
		}
	})

	t.Run("failed always carries an error string", func(t *testing.T) {
		repo := newMemJobRepo()
		uc := usecase.NewJobUseCase(repo)

		job, _ := uc.Create(ctx, "social_content", "user-1")
		if err := uc.MarkFailed(ctx, job.ID, ""); err != nil {
			t.Fatalf("mark failed: %v", err)
		}

		got, _ := uc.Get(ctx, job.ID)
		if got.Status != model.JobStatusFailed {
			t.Errorf("expected status failed, got %s", got.Status)
		}
		if got.Error == "" {
			t.Error("expected a non-empty error string")
		}
	})

	t.Run("transition on unknown id returns not found", func(t *testing.T) {
		repo := newMemJobRepo()
		uc := usecase.NewJobUseCase(repo)

		if err := uc.UpdateProgress(ctx, "no-such-job", 50); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
