package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/repo/selector"
)

type Task struct {
	db      *bun.DB
	compSel selector.S[model.ComparisonTask]
	svSel   selector.S[model.SingleVideoTask]
}

func NewTask(db *bun.DB) *Task {
	return &Task{
		db:      db,
		compSel: selector.New[model.ComparisonTask](db),
		svSel:   selector.New[model.SingleVideoTask](db),
	}
}

func (r *Task) GetComparisonTaskById(ctx context.Context, taskId string) (*model.ComparisonTask, error) {
	return r.compSel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("ct.id = ?", taskId)
	})
}

func (r *Task) GetSingleVideoTaskById(ctx context.Context, taskId string) (*model.SingleVideoTask, error) {
	return r.svSel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("st.id = ?", taskId)
	})
}

func (r *Task) GetComparisonTasksByExperimentId(ctx context.Context, experimentId string) ([]*model.ComparisonTask, error) {
	return r.compSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("ct.experiment_id = ?", experimentId)
	})
}

func (r *Task) GetSingleVideoTasksByExperimentId(ctx context.Context, experimentId string) ([]*model.SingleVideoTask, error) {
	return r.svSel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("st.experiment_id = ?", experimentId)
	})
}
