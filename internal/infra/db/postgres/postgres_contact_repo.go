package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

var _ repository.ContactRepository = (*contactRepo)(nil)

type contactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *contactRepo {
	return &contactRepo{pool: pool}
}

func (r *contactRepo) Save(ctx context.Context, tx repository.Tx, c *model.ContactRequest) error {
	const q = `
INSERT INTO percy_contacts (id, user_id, method, contact_info, message, message_type, urgency, status, provider_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := execSQL(ctx, r.pool, tx, q,
		c.ID, c.UserID, c.Method, c.ContactInfo, c.Message, c.MessageType, c.Urgency, c.Status, c.ProviderID, c.CreatedAt)
	return err
}

func (r *contactRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.ContactRequest, error) {
	const q = `
SELECT id, user_id, method, contact_info, message, message_type, urgency, status, provider_id, created_at
FROM percy_contacts
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;`

	rows, err := pickRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ContactRequest
	for rows.Next() {
		var c model.ContactRequest
		var method string
		err := rows.Scan(&c.ID, &c.UserID, &method, &c.ContactInfo, &c.Message,
			&c.MessageType, &c.Urgency, &c.Status, &c.ProviderID, &c.CreatedAt)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		c.Method = model.ContactMethod(method)
		out = append(out, &c)
	}
	return out, rows.Err()
}
