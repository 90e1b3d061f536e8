package repository

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
)

type LeadRepository interface {
	Save(ctx context.Context, tx Tx, lead *model.Lead) error
	SaveActivity(ctx context.Context, tx Tx, act *model.LeadActivity) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Lead, error)
}
