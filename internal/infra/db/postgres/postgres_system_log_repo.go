package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
)

var (
	_ repository.SystemLogRepository   = (*systemLogRepo)(nil)
	_ repository.WorkflowLogRepository = (*workflowLogRepo)(nil)
)

type systemLogRepo struct {
	pool *pgxpool.Pool
}

func NewSystemLogRepo(pool *pgxpool.Pool) *systemLogRepo {
	return &systemLogRepo{pool: pool}
}

func (r *systemLogRepo) Save(ctx context.Context, tx repository.Tx, entry *model.SystemLog) error {
	const q = `
INSERT INTO system_logs (id, level, source, message, meta, created_at)
VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := execSQL(ctx, r.pool, tx, q,
		entry.ID, entry.Level, entry.Source, entry.Message, entry.Meta, entry.CreatedAt)
	return err
}

func (r *systemLogRepo) List(ctx context.Context, tx repository.Tx, f repository.SystemLogFilter) ([]*model.SystemLog, error) {
	q := `SELECT id, level, source, message, meta, created_at FROM system_logs`
	var args []interface{}
	var where []string
	if f.Level != "" {
		args = append(args, f.Level)
		where = append(where, fmt.Sprintf("level = $%d", len(args)))
	}
	if f.Source != "" {
		args = append(args, f.Source)
		where = append(where, fmt.Sprintf("source = $%d", len(args)))
	}
	q += whereClause(where)
	args = append(args, f.Limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d;", len(args))

	rows, err := pickRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.SystemLog
	for rows.Next() {
		var e model.SystemLog
		if err := rows.Scan(&e.ID, &e.Level, &e.Source, &e.Message, &e.Meta, &e.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

type workflowLogRepo struct {
	pool *pgxpool.Pool
}

func NewWorkflowLogRepo(pool *pgxpool.Pool) *workflowLogRepo {
	return &workflowLogRepo{pool: pool}
}

func (r *workflowLogRepo) Save(ctx context.Context, tx repository.Tx, entry *model.WorkflowLog) error {
	const q = `
INSERT INTO workflow_logs (id, user_id, agent_id, workflow, status, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);`

	_, err := execSQL(ctx, r.pool, tx, q,
		entry.ID, entry.UserID, entry.AgentID, entry.Workflow, entry.Status, entry.Result, entry.CreatedAt)
	return err
}

func (r *workflowLogRepo) List(ctx context.Context, tx repository.Tx, f repository.WorkflowLogFilter) ([]*model.WorkflowLog, error) {
	q := `SELECT id, user_id, agent_id, workflow, status, result, created_at FROM workflow_logs`
	var args []interface{}
	var where []string
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.AgentID != "" {
		args = append(args, f.AgentID)
		where = append(where, fmt.Sprintf("agent_id = $%d", len(args)))
	}
	if f.Workflow != "" {
		args = append(args, f.Workflow)
		where = append(where, fmt.Sprintf("workflow = $%d", len(args)))
	}
	q += whereClause(where)
	args = append(args, f.Limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d;", len(args))

	rows, err := pickRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.WorkflowLog
	for rows.Next() {
		var e model.WorkflowLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.AgentID, &e.Workflow, &e.Status, &e.Result, &e.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	q := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		q += " AND " + c
	}
	return q
}
