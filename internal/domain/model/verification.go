package model

import "time"

// SMSVerification is a short-lived 6-digit phone verification code.
type SMSVerification struct {
	ID          string
	PhoneNumber string
	Code        string
	VIPTier     string
	ExpiresAt   time.Time
	Verified    bool
	CreatedAt   time.Time
}

func (v *SMSVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
