package model

import "time"

type ContactMethod string

const (
	ContactSMS   ContactMethod = "sms"
	ContactEmail ContactMethod = "email"
	ContactVoice ContactMethod = "voice"
	ContactChat  ContactMethod = "chat"
)

func (m ContactMethod) Valid() bool {
	switch m {
	case ContactSMS, ContactEmail, ContactVoice, ContactChat:
		return true
	}
	return false
}

// ContactRequest is a concierge contact dispatch. Status is "sent" when a real
// provider accepted the message, "mocked" when no provider credentials were
// configured, "failed" otherwise.
type ContactRequest struct {
	ID          string
	UserID      string
	Method      ContactMethod
	ContactInfo string
	Message     string
	MessageType string
	Urgency     string
	Status      string
	ProviderID  string
	CreatedAt   time.Time
}
