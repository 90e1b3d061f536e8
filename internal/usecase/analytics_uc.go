package usecase

import (
	"context"

	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

const (
	historyDefaultLimit = 50
	historyMaxLimit     = 200
)

// Compile-time check
var (
	_ AnalyticsUseCase = (*analyticsUC)(nil)
	_ SystemLogUseCase = (*systemLogUC)(nil)
)

type AnalyticsUseCase interface {
	History(ctx context.Context, f repository.WorkflowLogFilter) ([]*model.WorkflowLog, error)
}

type analyticsUC struct {
	logs repository.WorkflowLogRepository
}

func NewAnalyticsUseCase(logs repository.WorkflowLogRepository) *analyticsUC {
	return &analyticsUC{logs: logs}
}

func (u *analyticsUC) History(ctx context.Context, f repository.WorkflowLogFilter) ([]*model.WorkflowLog, error) {
	if f.Limit <= 0 {
		f.Limit = historyDefaultLimit
	}
	if f.Limit > historyMaxLimit {
		f.Limit = historyMaxLimit
	}
	return u.logs.List(ctx, repository.NoTX, f)
}

type SystemLogUseCase interface {
	List(ctx context.Context, f repository.SystemLogFilter) ([]*model.SystemLog, error)
}

type systemLogUC struct {
	logs repository.SystemLogRepository
}

func NewSystemLogUseCase(logs repository.SystemLogRepository) *systemLogUC {
	return &systemLogUC{logs: logs}
}

func (u *systemLogUC) List(ctx context.Context, f repository.SystemLogFilter) ([]*model.SystemLog, error) {
	if f.Limit <= 0 {
		f.Limit = historyDefaultLimit
	}
	if f.Limit > historyMaxLimit {
		f.Limit = historyMaxLimit
	}
	return u.logs.List(ctx, repository.NoTX, f)
}
