package repository

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
)

// SystemLogFilter narrows a system-log query; zero values match everything.
type SystemLogFilter struct {
	Level  string
	Source string
	Limit  int
}

type SystemLogRepository interface {
	Save(ctx context.Context, tx Tx, entry *model.SystemLog) error
	List(ctx context.Context, tx Tx, f SystemLogFilter) ([]*model.SystemLog, error)
}

// WorkflowLogFilter narrows an analytics history query.
type WorkflowLogFilter struct {
	UserID   string
	AgentID  string
	Workflow string
	Limit    int
}

type WorkflowLogRepository interface {
	Save(ctx context.Context, tx Tx, entry *model.WorkflowLog) error
	List(ctx context.Context, tx Tx, f WorkflowLogFilter) ([]*model.WorkflowLog, error)
}
