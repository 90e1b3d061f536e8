package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/infra/metrics"
	"skrbl-automation-platform/internal/usecase"
)

// DripWorker periodically advances due sequence enrollments. The cron endpoint
// drives the same use case for deployments that prefer an external scheduler.
type DripWorker struct {
	interval time.Duration
	drip     usecase.DripUseCase
	log      *zerolog.Logger
}

func NewDripWorker(interval time.Duration, drip usecase.DripUseCase, logger *zerolog.Logger) *DripWorker {
	compLog := logger.With().Str("component", "DripWorker").Logger()
	return &DripWorker{
		interval: interval,
		drip:     drip,
		log:      &compLog,
	}
}

func (w *DripWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting drip worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping drip worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.drip.ProcessDue(ctx, time.Now())
			if err != nil {
				w.log.Error().Err(err).Msg("drip run failed")
			}
			if n > 0 {
				metrics.AddDripSteps(n)
				w.log.Info().Int("count", n).Msg("drip steps processed")
			}
		}
	}
}
