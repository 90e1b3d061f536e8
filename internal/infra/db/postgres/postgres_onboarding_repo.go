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

var _ repository.OnboardingRepository = (*onboardingRepo)(nil)

type onboardingRepo struct {
	pool *pgxpool.Pool
}

func NewOnboardingRepo(pool *pgxpool.Pool) *onboardingRepo {
	return &onboardingRepo{pool: pool}
}

func (r *onboardingRepo) Upsert(ctx context.Context, tx repository.Tx, rec *model.OnboardingRecord) error {
	const q = `
INSERT INTO onboarding_records (user_id, agent_id, payload, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, agent_id) DO UPDATE SET
  payload = EXCLUDED.payload,
  updated_at = EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q, rec.UserID, rec.AgentID, rec.Payload, rec.UpdatedAt)
	return err
}

func (r *onboardingRepo) Find(ctx context.Context, tx repository.Tx, userID, agentID string) (*model.OnboardingRecord, error) {
	const q = `
SELECT user_id, agent_id, payload, updated_at
FROM onboarding_records WHERE user_id = $1 AND agent_id = $2;`

	row, err := pickRow(ctx, r.pool, tx, q, userID, agentID)
	if err != nil {
		return nil, err
	}
	var rec model.OnboardingRecord
	if err := row.Scan(&rec.UserID, &rec.AgentID, &rec.Payload, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &rec, nil
}
