package repository

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
)

type ContactRepository interface {
	Save(ctx context.Context, tx Tx, c *model.ContactRequest) error
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.ContactRequest, error)
}
