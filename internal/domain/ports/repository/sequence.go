package repository

import (
	"context"
	"time"

	"skrbl-automation-platform/internal/domain/model"
)

type SequenceRepository interface {
	Save(ctx context.Context, tx Tx, seq *model.EmailSequence) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.EmailSequence, error)
	// FindActiveByTrigger returns active sequences matching the trigger type
	// whose target role is empty or equals role.
	FindActiveByTrigger(ctx context.Context, tx Tx, triggerType, role string) ([]*model.EmailSequence, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.EmailSequence, error)
}

type EnrollmentRepository interface {
	// Insert creates an enrollment row. Returns domain.ErrAlreadyEnrolled when
	// an active enrollment for the same (user, sequence) pair already exists;
	// the unique partial index makes this atomic under concurrent triggers.
	Insert(ctx context.Context, tx Tx, e *model.SequenceEnrollment) error
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.SequenceEnrollment, error)
	// ListDue returns active enrollments whose next drip step is due at or
	// before now.
	ListDue(ctx context.Context, tx Tx, now time.Time, limit int) ([]*model.SequenceEnrollment, error)
	// Advance bumps the step counter, stamps last_processed_at, and deactivates
	// the enrollment when the sequence is exhausted.
	Advance(ctx context.Context, tx Tx, id string, nextStep int, done bool, processedAt time.Time) error
}
