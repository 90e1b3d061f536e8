package repository

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
)

// ContentRepository persists generated content artifacts. Rows are insert-only.
type ContentRepository interface {
	Save(ctx context.Context, tx Tx, c *model.GeneratedContent) error
	FindByJobID(ctx context.Context, tx Tx, jobID string) (*model.GeneratedContent, error)
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.GeneratedContent, error)
}
