package model

import (
	"encoding/json"
	"time"
)

// SystemLog is a persisted operational log entry readable by admins.
type SystemLog struct {
	ID        string
	Level     string
	Source    string
	Message   string
	Meta      json.RawMessage
	CreatedAt time.Time
}

// WorkflowLog records one agent workflow run for analytics history.
type WorkflowLog struct {
	ID        string
	UserID    string
	AgentID   string
	Workflow  string
	Status    string
	Result    json.RawMessage
	CreatedAt time.Time
}
