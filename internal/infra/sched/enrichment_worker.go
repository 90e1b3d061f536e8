package sched

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/ports/repository"
	"skrbl-automation-platform/internal/usecase"
)

// EnrichmentWorker drains queued social-content jobs: claim, enrich, complete.
// Claims use FOR UPDATE SKIP LOCKED so multiple instances never double-process.
type EnrichmentWorker struct {
	interval time.Duration
	jobs     repository.JobRepository
	social   usecase.SocialContentUseCase
	log      *zerolog.Logger
}

func NewEnrichmentWorker(interval time.Duration, jobs repository.JobRepository, social usecase.SocialContentUseCase, logger *zerolog.Logger) *EnrichmentWorker {
	compLog := logger.With().Str("component", "EnrichmentWorker").Logger()
	return &EnrichmentWorker{
		interval: interval,
		jobs:     jobs,
		social:   social,
		log:      &compLog,
	}
}

func (w *EnrichmentWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting enrichment worker")
	// Drain once on startup, then on every tick
	w.drain(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping enrichment worker")
			return ctx.Err()
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain claims jobs until the queue is empty.
func (w *EnrichmentWorker) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		job, err := w.jobs.ClaimQueued(ctx, usecase.JobTypeSocialContent)
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		if err != nil {
			w.log.Error().Err(err).Msg("claim failed")
			return
		}

		if err := w.social.EnrichJob(ctx, job); err != nil {
			w.log.Error().Err(err).Str("job_id", job.ID).Msg("enrichment failed")
		}
	}
}
