package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/repo/selector"
)

type Video struct {
	db  *bun.DB
	sel selector.S[model.Video]
}

func NewVideo(db *bun.DB) *Video {
	return &Video{
		db:  db,
		sel: selector.New[model.Video](db),
	}
}

func (r *Video) GetVideoById(ctx context.Context, videoId string) (*model.Video, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("v.id = ?", videoId)
	})
}

func (r *Video) GetVideosByModelName(ctx context.Context, modelName string) ([]*model.Video, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("v.model_name = ?", modelName).Order("uploaded_at DESC")
	})
}

func (r *Video) GetVideos(ctx context.Context) ([]*model.Video, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("uploaded_at DESC")
	})
}
