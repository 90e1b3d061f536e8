package repository

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
)

type OnboardingRepository interface {
	Upsert(ctx context.Context, tx Tx, rec *model.OnboardingRecord) error
	Find(ctx context.Context, tx Tx, userID, agentID string) (*model.OnboardingRecord, error)
}
