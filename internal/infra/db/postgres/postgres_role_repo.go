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

var _ repository.RoleRepository = (*roleRepo)(nil)

type roleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *roleRepo {
	return &roleRepo{pool: pool}
}

func (r *roleRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.UserRole, error) {
	const q = `SELECT user_id, role, updated_at FROM user_roles WHERE user_id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	var ur model.UserRole
	var role string
	if err := row.Scan(&ur.UserID, &role, &ur.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	ur.Role = model.Role(role)
	return &ur, nil
}

func (r *roleRepo) Save(ctx context.Context, tx repository.Tx, ur *model.UserRole) error {
	const q = `
INSERT INTO user_roles (user_id, role, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
  role = EXCLUDED.role,
  updated_at = EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q, ur.UserID, ur.Role, ur.UpdatedAt)
	return err
}
