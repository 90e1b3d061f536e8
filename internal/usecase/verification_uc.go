package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

const codeTTL = 5 * time.Minute

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

// Compile-time check
var _ VerificationUseCase = (*verificationUC)(nil)

type VerificationUseCase interface {
	// SendCode stores a fresh 6-digit code with a 5-minute expiry and sends it
	// via SMS. Whitelisted VIP numbers and missing credentials get a mocked
	// delivery; the code is stored either way.
	SendCode(ctx context.Context, phone, vipTier, message string) (messageID string, err error)
	VerifyCode(ctx context.Context, phone, code string) error
}

type verificationUC struct {
	codes     repository.VerificationRepository
	sms       adapter.SMSSender
	whitelist map[string]bool
	log       *zerolog.Logger
}

func NewVerificationUseCase(codes repository.VerificationRepository, sms adapter.SMSSender, whitelist []string, logger *zerolog.Logger) *verificationUC {
	compLog := logger.With().Str("component", "VerificationUC").Logger()
	wl := make(map[string]bool, len(whitelist))
	for _, n := range whitelist {
		wl[n] = true
	}
	return &verificationUC{codes: codes, sms: sms, whitelist: wl, log: &compLog}
}

func (u *verificationUC) SendCode(ctx context.Context, phone, vipTier, message string) (string, error) {
	if !phonePattern.MatchString(phone) {
		return "", domain.ErrInvalidArgument
	}

	code, err := sixDigitCode()
	if err != nil {
		return "", err
	}
	now := time.Now()
	v := &model.SMSVerification{
		ID:          uuid.NewString(),
		PhoneNumber: phone,
		Code:        code,
		VIPTier:     vipTier,
		ExpiresAt:   now.Add(codeTTL),
		CreatedAt:   now,
	}
	if err := u.codes.Save(ctx, repository.NoTX, v); err != nil {
		return "", err
	}

	if u.whitelist[phone] || !u.sms.Configured() {
		u.log.Info().Str("phone", phone).Msg("verification send mocked")
		return "mock-" + v.ID[:8], nil
	}

	body := message
	if body == "" {
		body = fmt.Sprintf("Your SKRBL verification code is %s. It expires in 5 minutes.", code)
	}
	id, err := u.sms.Send(ctx, phone, body)
	if err != nil {
		u.log.Error().Err(err).Str("phone", phone).Msg("provider send failed")
		return "", fmt.Errorf("%w: send verification: %v", domain.ErrUpstream, err)
	}
	return id, nil
}

func (u *verificationUC) VerifyCode(ctx context.Context, phone, code string) error {
	if !phonePattern.MatchString(phone) || len(code) != 6 {
		return domain.ErrInvalidArgument
	}
	v, err := u.codes.FindLatestByPhone(ctx, repository.NoTX, phone)
	if err != nil {
		return err
	}
	if v.Expired(time.Now()) {
		return domain.ErrCodeExpired
	}
	if v.Code != code {
		return domain.ErrCodeMismatch
	}
	return u.codes.MarkVerified(ctx, repository.NoTX, v.ID)
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
