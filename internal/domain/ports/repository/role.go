package repository

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
)

type RoleRepository interface {
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.UserRole, error)
	Save(ctx context.Context, tx Tx, r *model.UserRole) error
}
