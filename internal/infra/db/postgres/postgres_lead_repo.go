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

var _ repository.LeadRepository = (*leadRepo)(nil)

type leadRepo struct {
	pool *pgxpool.Pool
}

func NewLeadRepo(pool *pgxpool.Pool) *leadRepo {
	return &leadRepo{pool: pool}
}

func (r *leadRepo) Save(ctx context.Context, tx repository.Tx, lead *model.Lead) error {
	const q = `
INSERT INTO leads (id, name, email, user_id, fields, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6);`

	_, err := execSQL(ctx, r.pool, tx, q,
		lead.ID, lead.Name, lead.Email, lead.UserID, lead.Fields, lead.CreatedAt)
	return err
}

func (r *leadRepo) SaveActivity(ctx context.Context, tx repository.Tx, act *model.LeadActivity) error {
	const q = `
INSERT INTO lead_activities (id, lead_id, activity_type, score_change, created_at)
VALUES ($1, $2, $3, $4, $5);`

	_, err := execSQL(ctx, r.pool, tx, q,
		act.ID, act.LeadID, act.ActivityType, act.ScoreChange, act.CreatedAt)
	return err
}

func (r *leadRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Lead, error) {
	const q = `
SELECT id, name, email, COALESCE(user_id, ''), fields, created_at
FROM leads WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var l model.Lead
	if err := row.Scan(&l.ID, &l.Name, &l.Email, &l.UserID, &l.Fields, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &l, nil
}
