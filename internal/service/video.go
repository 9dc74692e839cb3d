package service

import (
	"context"
	"time"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/cache"
	"github.com/owl-eval/backend/internal/repo"
)

type Video struct {
	VideoRepo *repo.Video
}

func NewVideo(videoRepo *repo.Video) *Video {
	return &Video{
		VideoRepo: videoRepo,
	}
}

// Cache: videos, 10 mins
func (s *Video) GetVideos(ctx context.Context) ([]*model.Video, error) {
	var videos []*model.Video
	err := cache.Videos.MutexGetSet(&videos, func() ([]*model.Video, error) {
		return s.VideoRepo.GetVideos(ctx)
	}, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *Video) GetVideoById(ctx context.Context, videoId string) (*model.Video, error) {
	return s.VideoRepo.GetVideoById(ctx, videoId)
}

func (s *Video) GetVideosByModelName(ctx context.Context, modelName string) ([]*model.Video, error) {
	return s.VideoRepo.GetVideosByModelName(ctx, modelName)
}
