package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

var _ repository.JobRepository = (*jobRepo)(nil)

type jobRepo struct {
	pool *pgxpool.Pool
	tm   repository.TransactionManager
}

func NewJobRepo(pool *pgxpool.Pool, tm repository.TransactionManager) *jobRepo {
	return &jobRepo{pool: pool, tm: tm}
}

const jobColumns = `id, type, user_id, status, progress, output, error, created_at, updated_at`

func (r *jobRepo) Create(ctx context.Context, tx repository.Tx, job *model.Job) error {
	const q = `
INSERT INTO agent_jobs (id, type, user_id, status, progress, output, error, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := execSQL(ctx, r.pool, tx, q,
		job.ID, job.Type, job.UserID, job.Status, job.Progress, job.Output, job.Error, job.CreatedAt, job.UpdatedAt)
	return err
}

func (r *jobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM agent_jobs WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanJob(row)
}

// ApplyTransition is a single conditional UPDATE. The WHERE clause matches
// only non-terminal rows, so complete/failed jobs are immutable here, and
// GREATEST keeps progress monotone.
func (r *jobRepo) ApplyTransition(ctx context.Context, tx repository.Tx, id string, upd repository.JobUpdate) error {
	set := "updated_at = $2"
	args := []interface{}{id, time.Now()}

	if upd.Status != nil {
		args = append(args, *upd.Status)
		set += fmt.Sprintf(", status = $%d", len(args))
	}
	if upd.Progress != nil {
		args = append(args, *upd.Progress)
		set += fmt.Sprintf(", progress = GREATEST(progress, $%d)", len(args))
	}
	if upd.Output != nil {
		args = append(args, upd.Output)
		set += fmt.Sprintf(", output = $%d", len(args))
	}
	if upd.Error != nil {
		args = append(args, *upd.Error)
		set += fmt.Sprintf(", error = $%d", len(args))
	}

	q := `UPDATE agent_jobs SET ` + set + ` WHERE id = $1 AND status IN ('queued','in_progress');`
	tag, err := execSQL(ctx, r.pool, tx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the id does not exist or the job is terminal.
	if _, err := r.FindByID(ctx, tx, id); err != nil {
		return err // domain.ErrNotFound for missing ids
	}
	return domain.ErrTerminalJob
}

func (r *jobRepo) ClaimQueued(ctx context.Context, jobType string) (*model.Job, error) {
	var job *model.Job

	err := r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		fetchQuery := `
SELECT ` + jobColumns + `
FROM agent_jobs
WHERE status = 'queued' AND type = $1
ORDER BY id
LIMIT 1
FOR UPDATE SKIP LOCKED;`

		row, err := pickRow(ctx, r.pool, tx, fetchQuery, jobType)
		if err != nil {
			return err
		}
		claimed, err := scanJob(row)
		if err != nil {
			return err
		}

		const mark = `
UPDATE agent_jobs SET status = 'in_progress', progress = GREATEST(progress, 10), updated_at = $2
WHERE id = $1;`
		if _, err := execSQL(ctx, r.pool, tx, mark, claimed.ID, time.Now()); err != nil {
			return err
		}
		claimed.Status = model.JobStatusInProgress
		if claimed.Progress < 10 {
			claimed.Progress = 10
		}

		job = claimed
		return nil
	})

	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	return job, err
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var j model.Job
	var statusStr string
	err := row.Scan(&j.ID, &j.Type, &j.UserID, &statusStr, &j.Progress, &j.Output, &j.Error, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	j.Status = model.JobStatus(statusStr)
	return &j, nil
}
