package model

import (
	"encoding/json"
	"time"
)

// DripStep is one step of an email sequence, sent DayOffset days after enrollment.
type DripStep struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	DayOffset int    `json:"dayOffset"`
}

// EmailSequence is a definition of an automated drip sequence. TriggerType
// names the event that enrolls users ("signup", "lead_captured", ...) and
// TargetRole optionally restricts matching to one user role ("" matches all).
type EmailSequence struct {
	ID          string
	Name        string
	TriggerType string
	TargetRole  string
	Active      bool
	Steps       []DripStep
	CreatedAt   time.Time
}

// SequenceEnrollment records that a user is (or was) enrolled in a sequence.
// At most one active enrollment may exist per (user, sequence) pair; the
// storage layer enforces this with a partial unique index.
type SequenceEnrollment struct {
	ID              string
	UserID          string
	SequenceID      string
	TriggerType     string
	Active          bool
	CurrentStep     int
	Metadata        json.RawMessage
	EnrolledAt      time.Time
	LastProcessedAt *time.Time
}
