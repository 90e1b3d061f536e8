package repository

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
)

type VerificationRepository interface {
	Save(ctx context.Context, tx Tx, v *model.SMSVerification) error
	// FindLatestByPhone returns the most recent code for the number, verified
	// or not.
	FindLatestByPhone(ctx context.Context, tx Tx, phone string) (*model.SMSVerification, error)
	MarkVerified(ctx context.Context, tx Tx, id string) error
}
