package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

var (
	_ repository.SequenceRepository   = (*sequenceRepo)(nil)
	_ repository.EnrollmentRepository = (*enrollmentRepo)(nil)
)

type sequenceRepo struct {
	pool *pgxpool.Pool
}

func NewSequenceRepo(pool *pgxpool.Pool) *sequenceRepo {
	return &sequenceRepo{pool: pool}
}

const sequenceColumns = `id, name, trigger_type, target_role, active, steps, created_at`

func (r *sequenceRepo) Save(ctx context.Context, tx repository.Tx, seq *model.EmailSequence) error {
	steps, err := json.Marshal(seq.Steps)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO email_sequences (id, name, trigger_type, target_role, active, steps, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  trigger_type = EXCLUDED.trigger_type,
  target_role = EXCLUDED.target_role,
  active = EXCLUDED.active,
  steps = EXCLUDED.steps;`

	_, err = execSQL(ctx, r.pool, tx, q,
		seq.ID, seq.Name, seq.TriggerType, seq.TargetRole, seq.Active, steps, seq.CreatedAt)
	return err
}

func (r *sequenceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.EmailSequence, error) {
	q := `SELECT ` + sequenceColumns + ` FROM email_sequences WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanSequence(row)
}

func (r *sequenceRepo) FindActiveByTrigger(ctx context.Context, tx repository.Tx, triggerType, role string) ([]*model.EmailSequence, error) {
	q := `
SELECT ` + sequenceColumns + `
FROM email_sequences
WHERE active AND trigger_type = $1 AND (target_role = '' OR target_role = $2)
ORDER BY created_at;`

	rows, err := pickRows(ctx, r.pool, tx, q, triggerType, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSequences(rows)
}

func (r *sequenceRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.EmailSequence, error) {
	q := `SELECT ` + sequenceColumns + ` FROM email_sequences ORDER BY created_at;`
	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSequences(rows)
}

func collectSequences(rows pgx.Rows) ([]*model.EmailSequence, error) {
	var out []*model.EmailSequence
	for rows.Next() {
		s, err := scanSequence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSequence(row pgx.Row) (*model.EmailSequence, error) {
	var s model.EmailSequence
	var steps []byte
	err := row.Scan(&s.ID, &s.Name, &s.TriggerType, &s.TargetRole, &s.Active, &steps, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &s.Steps); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return &s, nil
}

type enrollmentRepo struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepo(pool *pgxpool.Pool) *enrollmentRepo {
	return &enrollmentRepo{pool: pool}
}

const enrollmentColumns = `id, user_id, sequence_id, trigger_type, active, current_step, metadata, enrolled_at, last_processed_at`

// Insert relies on the partial unique index on (user_id, sequence_id) WHERE
// active: the constraint violation IS the "already enrolled" signal, there is
// no read-before-write.
func (r *enrollmentRepo) Insert(ctx context.Context, tx repository.Tx, e *model.SequenceEnrollment) error {
	const q = `
INSERT INTO sequence_enrollments (id, user_id, sequence_id, trigger_type, active, current_step, metadata, enrolled_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	_, err := execSQL(ctx, r.pool, tx, q,
		e.ID, e.UserID, e.SequenceID, e.TriggerType, e.Active, e.CurrentStep, e.Metadata, e.EnrolledAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyEnrolled
	}
	return err
}

func (r *enrollmentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.SequenceEnrollment, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM sequence_enrollments WHERE user_id = $1 ORDER BY enrolled_at DESC;`
	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEnrollments(rows)
}

func (r *enrollmentRepo) ListDue(ctx context.Context, tx repository.Tx, now time.Time, limit int) ([]*model.SequenceEnrollment, error) {
	// Candidates only; the use case checks step due-ness against the sequence
	// definition. last_processed_at gates one step per day at most.
	q := `
SELECT ` + enrollmentColumns + `
FROM sequence_enrollments
WHERE active AND (last_processed_at IS NULL OR last_processed_at <= $1)
ORDER BY enrolled_at
LIMIT $2;`

	rows, err := pickRows(ctx, r.pool, tx, q, now.Add(-24*time.Hour), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEnrollments(rows)
}

func (r *enrollmentRepo) Advance(ctx context.Context, tx repository.Tx, id string, nextStep int, done bool, processedAt time.Time) error {
	const q = `
UPDATE sequence_enrollments
SET current_step = $2, active = $3, last_processed_at = $4
WHERE id = $1;`

	tag, err := execSQL(ctx, r.pool, tx, q, id, nextStep, !done, processedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectEnrollments(rows pgx.Rows) ([]*model.SequenceEnrollment, error) {
	var out []*model.SequenceEnrollment
	for rows.Next() {
		var e model.SequenceEnrollment
		err := rows.Scan(&e.ID, &e.UserID, &e.SequenceID, &e.TriggerType, &e.Active,
			&e.CurrentStep, &e.Metadata, &e.EnrolledAt, &e.LastProcessedAt)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
