package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/domain/ports/repository"
	"skrbl-automation-platform/internal/infra/metrics"
)

// Compile-time check
var _ SequenceUseCase = (*sequenceUC)(nil)

type TriggerRequest struct {
	TriggerType string          `json:"triggerType"`
	UserID      string          `json:"userId"`
	UserEmail   string          `json:"userEmail"`
	UserRole    string          `json:"userRole"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

type TriggerResult struct {
	Triggered []string `json:"triggeredSequences"`
	Failed    []string `json:"failedSequences"`
}

type EnrollmentView struct {
	SequenceID   string     `json:"sequenceId"`
	SequenceName string     `json:"sequenceName"`
	TriggerType  string     `json:"triggerType"`
	Active       bool       `json:"active"`
	CurrentStep  int        `json:"currentStep"`
	EnrolledAt   time.Time  `json:"enrolledAt"`
	LastProcess  *time.Time `json:"lastProcessedAt,omitempty"`
}

// SequenceUseCase is the notification/automation trigger pipeline. Enrollment
// rows are the idempotency record; webhook delivery is at-most-once and never
// retried or rolled back.
type SequenceUseCase interface {
	Trigger(ctx context.Context, req TriggerRequest) (*TriggerResult, error)
	ListForUser(ctx context.Context, userID string) ([]EnrollmentView, error)
}

type sequenceUC struct {
	sequences   repository.SequenceRepository
	enrollments repository.EnrollmentRepository
	sysLogs     repository.SystemLogRepository
	webhook     adapter.WorkflowTrigger
	log         *zerolog.Logger
}

func NewSequenceUseCase(
	sequences repository.SequenceRepository,
	enrollments repository.EnrollmentRepository,
	sysLogs repository.SystemLogRepository,
	webhook adapter.WorkflowTrigger,
	logger *zerolog.Logger,
) *sequenceUC {
	compLog := logger.With().Str("component", "SequenceUC").Logger()
	return &sequenceUC{
		sequences:   sequences,
		enrollments: enrollments,
		sysLogs:     sysLogs,
		webhook:     webhook,
		log:         &compLog,
	}
}

func (u *sequenceUC) Trigger(ctx context.Context, req TriggerRequest) (*TriggerResult, error) {
	if req.TriggerType == "" || req.UserID == "" {
		return nil, domain.ErrInvalidArgument
	}

	matches, err := u.sequences.FindActiveByTrigger(ctx, repository.NoTX, req.TriggerType, req.UserRole)
	if err != nil {
		return nil, err
	}

	// The drip processor reads the recipient from enrollment metadata, so the
	// trigger email has to land there, not just in the webhook payload.
	meta := mergeTriggerEmail(req.Metadata, req.UserEmail)

	res := &TriggerResult{Triggered: []string{}, Failed: []string{}}
	for _, seq := range matches {
		enr := &model.SequenceEnrollment{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			SequenceID:  seq.ID,
			TriggerType: req.TriggerType,
			Active:      true,
			Metadata:    meta,
			EnrolledAt:  time.Now(),
		}
		err := u.enrollments.Insert(ctx, repository.NoTX, enr)
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			// already in the sequence; not a new trigger, not a failure
			continue
		}
		if err != nil {
			res.Failed = append(res.Failed, seq.ID)
			continue
		}

		// At-most-once webhook after the enrollment row exists. A failed
		// delivery leaves the enrollment in place (no reconciliation).
		if err := u.webhook.Trigger(ctx, req.TriggerType, map[string]any{
			"sequenceId": seq.ID,
			"userId":     req.UserID,
			"userEmail":  req.UserEmail,
		}); err != nil {
			u.log.Warn().Err(err).Str("sequence_id", seq.ID).Msg("webhook delivery failed")
			u.recordFailure(ctx, seq.ID, err)
			res.Failed = append(res.Failed, seq.ID)
			metrics.IncSequenceTrigger("failed")
			continue
		}
		res.Triggered = append(res.Triggered, seq.ID)
		metrics.IncSequenceTrigger("triggered")
	}
	return res, nil
}

func (u *sequenceUC) ListForUser(ctx context.Context, userID string) ([]EnrollmentView, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	enrs, err := u.enrollments.ListByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	views := make([]EnrollmentView, 0, len(enrs))
	for _, e := range enrs {
		v := EnrollmentView{
			SequenceID:  e.SequenceID,
			TriggerType: e.TriggerType,
			Active:      e.Active,
			CurrentStep: e.CurrentStep,
			EnrolledAt:  e.EnrolledAt,
			LastProcess: e.LastProcessedAt,
		}
		if seq, err := u.sequences.FindByID(ctx, repository.NoTX, e.SequenceID); err == nil {
			v.SequenceName = seq.Name
		}
		views = append(views, v)
	}
	return views, nil
}

// mergeTriggerEmail folds the caller's email into the enrollment metadata. An
// email the caller already put there wins.
func mergeTriggerEmail(meta json.RawMessage, email string) json.RawMessage {
	if email == "" {
		return meta
	}
	m := map[string]any{}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &m); err != nil {
			m = map[string]any{}
		}
	}
	if _, ok := m["email"]; !ok {
		m["email"] = email
	}
	out, err := json.Marshal(m)
	if err != nil {
		return meta
	}
	return out
}

func (u *sequenceUC) recordFailure(ctx context.Context, sequenceID string, cause error) {
	meta, _ := json.Marshal(map[string]string{"sequenceId": sequenceID, "error": cause.Error()})
	entry := &model.SystemLog{
		ID:        uuid.NewString(),
		Level:     "warn",
		Source:    "sequence_trigger",
		Message:   "webhook delivery failed",
		Meta:      meta,
		CreatedAt: time.Now(),
	}
	if err := u.sysLogs.Save(ctx, repository.NoTX, entry); err != nil {
		u.log.Warn().Err(err).Msg("system log write failed")
	}
}
