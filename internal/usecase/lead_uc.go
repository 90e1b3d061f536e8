package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ LeadUseCase = (*leadUC)(nil)

type LeadSubmission struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	UserID string          `json:"userId,omitempty"`
	Fields json.RawMessage `json:"fields,omitempty"`
}

type LeadUseCase interface {
	Submit(ctx context.Context, sub LeadSubmission) (leadID string, err error)
}

type leadUC struct {
	leads     repository.LeadRepository
	sequences SequenceUseCase
	log       *zerolog.Logger
}

func NewLeadUseCase(leads repository.LeadRepository, sequences SequenceUseCase, logger *zerolog.Logger) *leadUC {
	compLog := logger.With().Str("component", "LeadUC").Logger()
	return &leadUC{leads: leads, sequences: sequences, log: &compLog}
}

func (u *leadUC) Submit(ctx context.Context, sub LeadSubmission) (string, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	if sub.Name == "" || sub.Email == "" || !strings.Contains(sub.Email, "@") {
		return "", domain.ErrInvalidArgument
	}

	lead := &model.Lead{
		ID:        uuid.NewString(),
		Name:      sub.Name,
		Email:     sub.Email,
		UserID:    sub.UserID,
		Fields:    sub.Fields,
		CreatedAt: time.Now(),
	}
	if err := u.leads.Save(ctx, repository.NoTX, lead); err != nil {
		return "", err
	}

	act := &model.LeadActivity{
		ID:           uuid.NewString(),
		LeadID:       lead.ID,
		ActivityType: model.ActivityFormSubmit,
		ScoreChange:  0,
		CreatedAt:    time.Now(),
	}
	if err := u.leads.SaveActivity(ctx, repository.NoTX, act); err != nil {
		// the lead row is already in; log and keep the success
		u.log.Warn().Err(err).Str("lead_id", lead.ID).Msg("activity write failed")
	}

	// Best-effort sequence trigger; never fails the submission.
	meta, _ := json.Marshal(map[string]string{"email": sub.Email, "leadId": lead.ID})
	if _, err := u.sequences.Trigger(ctx, TriggerRequest{
		TriggerType: "lead_captured",
		UserID:      leadTriggerUser(sub, lead),
		UserEmail:   sub.Email,
		Metadata:    meta,
	}); err != nil {
		u.log.Warn().Err(err).Str("lead_id", lead.ID).Msg("lead trigger failed")
	}

	return lead.ID, nil
}

// leadTriggerUser keys anonymous submissions by lead id so enrollment dedup
// still has a stable subject.
func leadTriggerUser(sub LeadSubmission, lead *model.Lead) string {
	if sub.UserID != "" {
		return sub.UserID
	}
	return "lead:" + lead.ID
}
