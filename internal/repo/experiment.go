package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/repo/selector"
)

type Experiment struct {
	db  *bun.DB
	sel selector.S[model.Experiment]
}

func NewExperiment(db *bun.DB) *Experiment {
	return &Experiment{
		db:  db,
		sel: selector.New[model.Experiment](db),
	}
}

func (r *Experiment) GetExperiments(ctx context.Context) ([]*model.Experiment, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at DESC")
	})
}

func (r *Experiment) GetExperimentById(ctx context.Context, experimentId string) (*model.Experiment, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("e.id = ?", experimentId)
	})
}

func (r *Experiment) GetExperimentBySlug(ctx context.Context, slug string) (*model.Experiment, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("e.slug = ?", slug)
	})
}

func (r *Experiment) GetExperimentsByGroupLabel(ctx context.Context, groupLabel string) ([]*model.Experiment, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("e.group_label = ?", groupLabel)
	})
}
