package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ ContactUseCase = (*contactUC)(nil)

type ContactDispatch struct {
	UserID      string              `json:"userId"`
	Method      model.ContactMethod `json:"contactMethod"`
	ContactInfo string              `json:"contactInfo"`
	Message     string              `json:"message"`
	MessageType string              `json:"messageType,omitempty"`
	Urgency     string              `json:"urgency,omitempty"`
	TestMode    bool                `json:"testMode,omitempty"`
}

type ContactUseCase interface {
	Dispatch(ctx context.Context, d ContactDispatch) (*model.ContactRequest, error)
}

type contactUC struct {
	contacts repository.ContactRepository
	sms      adapter.SMSSender
	mail     adapter.Mailer
	log      *zerolog.Logger
}

func NewContactUseCase(contacts repository.ContactRepository, sms adapter.SMSSender, mail adapter.Mailer, logger *zerolog.Logger) *contactUC {
	compLog := logger.With().Str("component", "ContactUC").Logger()
	return &contactUC{contacts: contacts, sms: sms, mail: mail, log: &compLog}
}

// Dispatch sends the message through the provider matching the method, falling
// back to a mocked send when no credentials are configured or testMode is set.
// The contact row is persisted regardless of delivery outcome.
func (u *contactUC) Dispatch(ctx context.Context, d ContactDispatch) (*model.ContactRequest, error) {
	if d.UserID == "" || !d.Method.Valid() || d.ContactInfo == "" || d.Message == "" {
		return nil, domain.ErrInvalidArgument
	}

	rec := &model.ContactRequest{
		ID:          uuid.NewString(),
		UserID:      d.UserID,
		Method:      d.Method,
		ContactInfo: d.ContactInfo,
		Message:     d.Message,
		MessageType: d.MessageType,
		Urgency:     d.Urgency,
		CreatedAt:   time.Now(),
	}

	rec.Status, rec.ProviderID = u.deliver(ctx, d)

	if err := u.contacts.Save(ctx, repository.NoTX, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (u *contactUC) deliver(ctx context.Context, d ContactDispatch) (status, providerID string) {
	mock := func() (string, string) {
		return "mocked", "mock-" + uuid.NewString()[:8]
	}
	if d.TestMode {
		return mock()
	}

	switch d.Method {
	case model.ContactSMS:
		if !u.sms.Configured() {
			return mock()
		}
		id, err := u.sms.Send(ctx, d.ContactInfo, d.Message)
		if err != nil {
			u.log.Warn().Err(err).Msg("sms dispatch failed")
			return "failed", ""
		}
		return "sent", id
	case model.ContactEmail:
		if !u.mail.Configured() {
			return mock()
		}
		subject := d.MessageType
		if subject == "" {
			subject = "Message from your SKRBL concierge"
		}
		id, err := u.mail.Send(ctx, d.ContactInfo, subject, d.Message)
		if err != nil {
			u.log.Warn().Err(err).Msg("email dispatch failed")
			return "failed", ""
		}
		return "sent", id
	default:
		// voice and chat have no live provider wired; always mock
		return mock()
	}
}
