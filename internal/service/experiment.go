package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/cache"
	"github.com/owl-eval/backend/internal/pkg/owerr"
	"github.com/owl-eval/backend/internal/repo"
)

type Experiment struct {
	ExperimentRepo *repo.Experiment
}

func NewExperiment(experimentRepo *repo.Experiment) *Experiment {
	return &Experiment{
		ExperimentRepo: experimentRepo,
	}
}

// Cache: experiments, 10 mins
func (s *Experiment) GetExperiments(ctx context.Context) ([]*model.Experiment, error) {
	var experiments []*model.Experiment
	err := cache.Experiments.MutexGetSet(&experiments, func() ([]*model.Experiment, error) {
		return s.ExperimentRepo.GetExperiments(ctx)
	}, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	return experiments, nil
}

// Cache: experiment#experimentId:{experimentId}, 10 mins
func (s *Experiment) GetExperimentById(ctx context.Context, experimentId string) (*model.Experiment, error) {
	var experiment model.Experiment
	_, err := cache.ExperimentByID.MutexGetSet(experimentId, &experiment, func() (model.Experiment, error) {
		e, err := s.ExperimentRepo.GetExperimentById(ctx, experimentId)
		if err != nil {
			return model.Experiment{}, err
		}
		return *e, nil
	}, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	return &experiment, nil
}

// GetExperimentByIdOrSlug resolves an experiment by its primary ID, falling
// back to the slug so dashboard URLs can use either.
func (s *Experiment) GetExperimentByIdOrSlug(ctx context.Context, idOrSlug string) (*model.Experiment, error) {
	experiment, err := s.GetExperimentById(ctx, idOrSlug)
	if err == nil {
		return experiment, nil
	}
	if !errors.Is(err, owerr.ErrNotFound) {
		return nil, err
	}
	return s.ExperimentRepo.GetExperimentBySlug(ctx, idOrSlug)
}

func (s *Experiment) GetExperimentsByGroupLabel(ctx context.Context, groupLabel string) ([]*model.Experiment, error) {
	return s.ExperimentRepo.GetExperimentsByGroupLabel(ctx, groupLabel)
}
