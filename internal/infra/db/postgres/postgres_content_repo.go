package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

var _ repository.ContentRepository = (*contentRepo)(nil)

type contentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *contentRepo {
	return &contentRepo{pool: pool}
}

const contentColumns = `id, user_id, job_id, business_name, industry, params, payload, status, created_at`

// Save is insert-only: content rows never mutate, and duplicate submissions
// intentionally create duplicate rows (no dedup key).
func (r *contentRepo) Save(ctx context.Context, tx repository.Tx, c *model.GeneratedContent) error {
	const q = `
INSERT INTO social_content (id, user_id, job_id, business_name, industry, params, payload, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := execSQL(ctx, r.pool, tx, q,
		c.ID, c.UserID, c.JobID, c.BusinessName, c.Industry, c.Params, c.Payload, c.Status, c.CreatedAt)
	return err
}

func (r *contentRepo) FindByJobID(ctx context.Context, tx repository.Tx, jobID string) (*model.GeneratedContent, error) {
	q := `SELECT ` + contentColumns + ` FROM social_content WHERE job_id = $1 ORDER BY created_at DESC LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, jobID)
	if err != nil {
		return nil, err
	}
	return scanContent(row)
}

func (r *contentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.GeneratedContent, error) {
	q := `SELECT ` + contentColumns + ` FROM social_content WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`
	rows, err := pickRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.GeneratedContent
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanContent(row pgx.Row) (*model.GeneratedContent, error) {
	var c model.GeneratedContent
	err := row.Scan(&c.ID, &c.UserID, &c.JobID, &c.BusinessName, &c.Industry, &c.Params, &c.Payload, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &c, nil
}
