package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ DripUseCase = (*dripUC)(nil)

// DripUseCase advances active enrollments through their sequence steps.
// Invoked by the cron endpoint and the background worker.
type DripUseCase interface {
	ProcessDue(ctx context.Context, now time.Time) (int, error)
}

type dripUC struct {
	sequences   repository.SequenceRepository
	enrollments repository.EnrollmentRepository
	mailer      adapter.Mailer
	batchSize   int
	log         *zerolog.Logger
}

func NewDripUseCase(
	sequences repository.SequenceRepository,
	enrollments repository.EnrollmentRepository,
	mailer adapter.Mailer,
	logger *zerolog.Logger,
) *dripUC {
	compLog := logger.With().Str("component", "DripUC").Logger()
	return &dripUC{
		sequences:   sequences,
		enrollments: enrollments,
		mailer:      mailer,
		batchSize:   100,
		log:         &compLog,
	}
}

// ProcessDue sends the next step of every due enrollment and advances it.
// Send failures are logged and the enrollment is left for the next run; a
// single bad enrollment never aborts the batch.
func (u *dripUC) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	due, err := u.enrollments.ListDue(ctx, repository.NoTX, now, u.batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, enr := range due {
		seq, err := u.sequences.FindByID(ctx, repository.NoTX, enr.SequenceID)
		if err != nil {
			u.log.Warn().Err(err).Str("sequence_id", enr.SequenceID).Msg("sequence missing for enrollment")
			continue
		}
		if !u.stepDue(enr, seq, now) {
			continue
		}

		step := seq.Steps[enr.CurrentStep]
		email := u.recipient(enr)
		if email != "" {
			if _, err := u.mailer.Send(ctx, email, step.Subject, step.Body); err != nil {
				u.log.Warn().Err(err).Str("enrollment_id", enr.ID).Msg("drip send failed, will retry next run")
				continue
			}
		}

		nextStep := enr.CurrentStep + 1
		done := nextStep >= len(seq.Steps)
		if err := u.enrollments.Advance(ctx, repository.NoTX, enr.ID, nextStep, done, now); err != nil {
			u.log.Error().Err(err).Str("enrollment_id", enr.ID).Msg("advance failed")
			continue
		}
		processed++
	}
	return processed, nil
}

func (u *dripUC) stepDue(enr *model.SequenceEnrollment, seq *model.EmailSequence, now time.Time) bool {
	if !enr.Active || enr.CurrentStep >= len(seq.Steps) {
		return false
	}
	offset := time.Duration(seq.Steps[enr.CurrentStep].DayOffset) * 24 * time.Hour
	return !now.Before(enr.EnrolledAt.Add(offset))
}

// recipient pulls the email captured at trigger time out of the enrollment
// metadata.
func (u *dripUC) recipient(enr *model.SequenceEnrollment) string {
	if len(enr.Metadata) == 0 {
		return ""
	}
	var meta struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(enr.Metadata, &meta); err != nil {
		return ""
	}
	return meta.Email
}
