package service

import (
	"context"
	"time"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/cache"
	"github.com/owl-eval/backend/internal/repo"
)

type Task struct {
	TaskRepo *repo.Task
}

func NewTask(taskRepo *repo.Task) *Task {
	return &Task{
		TaskRepo: taskRepo,
	}
}

// Cache: comparisonTask#taskId:{taskId}, 10 mins
func (s *Task) GetComparisonTaskById(ctx context.Context, taskId string) (*model.ComparisonTask, error) {
	var task model.ComparisonTask
	_, err := cache.ComparisonTaskByID.MutexGetSet(taskId, &task, func() (model.ComparisonTask, error) {
		t, err := s.TaskRepo.GetComparisonTaskById(ctx, taskId)
		if err != nil {
			return model.ComparisonTask{}, err
		}
		return *t, nil
	}, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Cache: singleVideoTask#taskId:{taskId}, 10 mins
func (s *Task) GetSingleVideoTaskById(ctx context.Context, taskId string) (*model.SingleVideoTask, error) {
	var task model.SingleVideoTask
	_, err := cache.SingleVideoTaskByID.MutexGetSet(taskId, &task, func() (model.SingleVideoTask, error) {
		t, err := s.TaskRepo.GetSingleVideoTaskById(ctx, taskId)
		if err != nil {
			return model.SingleVideoTask{}, err
		}
		return *t, nil
	}, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Task) GetComparisonTasksByExperimentId(ctx context.Context, experimentId string) ([]*model.ComparisonTask, error) {
	return s.TaskRepo.GetComparisonTasksByExperimentId(ctx, experimentId)
}

func (s *Task) GetSingleVideoTasksByExperimentId(ctx context.Context, experimentId string) ([]*model.SingleVideoTask, error) {
	return s.TaskRepo.GetSingleVideoTasksByExperimentId(ctx, experimentId)
}
