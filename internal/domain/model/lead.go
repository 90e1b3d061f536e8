package model

import (
	"encoding/json"
	"time"
)

// Lead is a captured marketing lead. UserID is empty when the submitter is
// anonymous.
type Lead struct {
	ID        string
	Name      string
	Email     string
	UserID    string
	Fields    json.RawMessage
	CreatedAt time.Time
}

// LeadActivity is an append-only activity entry attached to a lead.
type LeadActivity struct {
	ID           string
	LeadID       string
	ActivityType string
	ScoreChange  int
	CreatedAt    time.Time
}

const ActivityFormSubmit = "form_submit"
