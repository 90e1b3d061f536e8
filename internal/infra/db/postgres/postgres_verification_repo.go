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

var _ repository.VerificationRepository = (*verificationRepo)(nil)

type verificationRepo struct {
	pool *pgxpool.Pool
}

func NewVerificationRepo(pool *pgxpool.Pool) *verificationRepo {
	return &verificationRepo{pool: pool}
}

func (r *verificationRepo) Save(ctx context.Context, tx repository.Tx, v *model.SMSVerification) error {
	const q = `
INSERT INTO sms_verifications (id, phone_number, code, vip_tier, expires_at, verified, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);`

	_, err := execSQL(ctx, r.pool, tx, q,
		v.ID, v.PhoneNumber, v.Code, v.VIPTier, v.ExpiresAt, v.Verified, v.CreatedAt)
	return err
}

func (r *verificationRepo) FindLatestByPhone(ctx context.Context, tx repository.Tx, phone string) (*model.SMSVerification, error) {
	const q = `
SELECT id, phone_number, code, vip_tier, expires_at, verified, created_at
FROM sms_verifications
WHERE phone_number = $1
ORDER BY created_at DESC
LIMIT 1;`

	row, err := pickRow(ctx, r.pool, tx, q, phone)
	if err != nil {
		return nil, err
	}
	var v model.SMSVerification
	if err := row.Scan(&v.ID, &v.PhoneNumber, &v.Code, &v.VIPTier, &v.ExpiresAt, &v.Verified, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &v, nil
}

func (r *verificationRepo) MarkVerified(ctx context.Context, tx repository.Tx, id string) error {
	const q = `UPDATE sms_verifications SET verified = TRUE WHERE id = $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
