package usecase

import (
	"context"
	"encoding/json"
	"time"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ OnboardingUseCase = (*onboardingUC)(nil)

type OnboardingUseCase interface {
	Save(ctx context.Context, userID, agentID string, payload json.RawMessage) error
	Get(ctx context.Context, userID, agentID string) (*model.OnboardingRecord, error)
}

type onboardingUC struct {
	records repository.OnboardingRepository
}

func NewOnboardingUseCase(records repository.OnboardingRepository) *onboardingUC {
	return &onboardingUC{records: records}
}

func (u *onboardingUC) Save(ctx context.Context, userID, agentID string, payload json.RawMessage) error {
	if userID == "" || agentID == "" || len(payload) == 0 {
		return domain.ErrInvalidArgument
	}
	return u.records.Upsert(ctx, repository.NoTX, &model.OnboardingRecord{
		UserID:    userID,
		AgentID:   agentID,
		Payload:   payload,
		UpdatedAt: time.Now(),
	})
}

func (u *onboardingUC) Get(ctx context.Context, userID, agentID string) (*model.OnboardingRecord, error) {
	if userID == "" || agentID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.records.Find(ctx, repository.NoTX, userID, agentID)
}
