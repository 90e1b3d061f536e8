package model

import (
	"encoding/json"
	"time"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusComplete   JobStatus = "complete"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further transition is allowed from s.
func (s JobStatus) Terminal() bool {
	return s == JobStatusComplete || s == JobStatusFailed
}

// Job is one unit of agent work requested by a user. Progress only moves
// forward while the job is non-terminal; complete implies progress 100 and
// failed implies a non-empty error.
type Job struct {
	ID        string
	Type      string
	UserID    string
	Status    JobStatus
	Progress  int
	Output    json.RawMessage
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
