package model

import (
	"encoding/json"
	"time"
)

// OnboardingRecord stores per-user, per-agent onboarding answers. Upserted on
// (UserID, AgentID).
type OnboardingRecord struct {
	UserID    string
	AgentID   string
	Payload   json.RawMessage
	UpdatedAt time.Time
}
