package service

import (
	"context"
	"strconv"
	"time"

	"github.com/ahmetb/go-linq/v3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/model/cache"
	"github.com/owl-eval/backend/internal/pkg/observability"
	"github.com/owl-eval/backend/internal/pkg/owerr"
	"github.com/owl-eval/backend/internal/repo"
)

/*
This service computes performance reports in stages:

	1. resolveExperiments() decides which experiments the query covers
	2. fetch: either via the eligible participant set, or directly by
	   experiment when the query pinned one (in which case demographic
	   filters are re-applied per evaluation row)
	3. aggregateComparisons() / aggregateSingleVideos() accumulate
	   canonicalized ratings into per-(dimension, experiment) counters
	4. reduceComparisons() / reduceSingleVideos() turn counters into
	   performance records
	5. compose: concatenate both record lists, unsorted
*/

type Performance struct {
	ExperimentRepo  *repo.Experiment
	ParticipantRepo *repo.Participant
	EvaluationRepo  *repo.Evaluation
}

func NewPerformance(
	experimentRepo *repo.Experiment,
	participantRepo *repo.Participant,
	evaluationRepo *repo.Evaluation,
) *Performance {
	return &Performance{
		ExperimentRepo:  experimentRepo,
		ParticipantRepo: participantRepo,
		EvaluationRepo:  evaluationRepo,
	}
}

// Cache: performanceRecords#query:{queryKey}, 10 mins, records last modified time
func (s *Performance) GetPerformanceRecords(ctx context.Context, query *model.PerformanceQueryContext) ([]*model.PerformanceRecord, error) {
	key := query.Key()
	valueFunc := func() ([]*model.PerformanceRecord, error) {
		start := time.Now()
		records, err := s.calcPerformanceRecords(ctx, query)
		if err != nil {
			return nil, err
		}
		observability.PerformanceCalcDuration.
			WithLabelValues(strconv.FormatBool(query.HasDemographicFilters())).
			Observe(time.Since(start).Seconds())
		cache.LastModifiedTime.Set("[performanceRecords#query:"+key+"]", time.Now(), 0)
		return records, nil
	}

	var records []*model.PerformanceRecord
	_, err := cache.PerformanceRecords.MutexGetSet(key, &records, valueFunc, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// RefreshExperimentPerformance recomputes the unfiltered report for one
// experiment and replaces the cached copy.
func (s *Performance) RefreshExperimentPerformance(ctx context.Context, experimentId string) error {
	query := &model.PerformanceQueryContext{
		SelectedExperimentID: null.StringFrom(experimentId),
	}
	records, err := s.calcPerformanceRecords(ctx, query)
	if err != nil {
		return err
	}

	key := query.Key()
	if err := cache.PerformanceRecords.Set(key, records, 10*time.Minute); err != nil {
		return err
	}
	cache.LastModifiedTime.Set("[performanceRecords#query:"+key+"]", time.Now(), 0)
	return nil
}

func (s *Performance) calcPerformanceRecords(ctx context.Context, query *model.PerformanceQueryContext) ([]*model.PerformanceRecord, error) {
	experiments, err := s.resolveExperiments(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(experiments) == 0 {
		return []*model.PerformanceRecord{}, nil
	}

	comparisonExpIds := experimentIdsByMode(experiments, constant.EvaluationModeComparison)
	singleVideoExpIds := experimentIdsByMode(experiments, constant.EvaluationModeSingleVideo)

	var comparisons []*model.ComparisonEvaluation
	var singleVideos []*model.SingleVideoEvaluation

	if query.SelectedExperimentID.Valid {
		// pinned-experiment path: the fetch does not pre-filter by
		// participant, so every row gets the demographic gate re-applied
		comparisons, err = s.EvaluationRepo.GetComparisonsByExperimentIds(ctx, comparisonExpIds)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch comparison evaluations")
		}
		singleVideos, err = s.EvaluationRepo.GetSingleVideosByExperimentIds(ctx, singleVideoExpIds)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch single video evaluations")
		}
		comparisons = filterComparisonEvaluations(comparisons, query)
		singleVideos = filterSingleVideoEvaluations(singleVideos, query)
	} else {
		allExpIds := lo.Map(experiments, func(e *model.Experiment, _ int) string { return e.ID })
		participants, err := s.ParticipantRepo.GetParticipantsByExperimentIds(ctx, allExpIds)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch participants")
		}
		eligible := filterParticipants(participants, query)
		comparisons, err = s.EvaluationRepo.GetComparisonsByParticipantIds(ctx, eligible)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch comparison evaluations")
		}
		singleVideos, err = s.EvaluationRepo.GetSingleVideosByParticipantIds(ctx, eligible)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch single video evaluations")
		}
	}

	comparisonRecords := reduceComparisons(aggregateComparisons(comparisons, comparisonExpIds))
	singleVideoRecords := reduceSingleVideos(aggregateSingleVideos(singleVideos, singleVideoExpIds))

	// compose: concatenation only, presentation ordering is not our concern
	return append(comparisonRecords, singleVideoRecords...), nil
}

// resolveExperiments maps the query's scope to concrete experiments. An
// unknown selected experiment yields no experiments rather than an error, so
// the caller receives a well-formed empty report.
func (s *Performance) resolveExperiments(ctx context.Context, query *model.PerformanceQueryContext) ([]*model.Experiment, error) {
	var experiments []*model.Experiment
	var err error

	switch {
	case query.SelectedExperimentID.Valid:
		experiment, err := s.ExperimentRepo.GetExperimentById(ctx, query.SelectedExperimentID.String)
		if errors.Is(err, owerr.ErrNotFound) {
			return []*model.Experiment{}, nil
		} else if err != nil {
			return nil, err
		}
		experiments = []*model.Experiment{experiment}
	case query.ExperimentGroup.Valid && query.ExperimentGroup.String != "" && query.ExperimentGroup.String != constant.FilterAll:
		experiments, err = s.ExperimentRepo.GetExperimentsByGroupLabel(ctx, query.ExperimentGroup.String)
		if errors.Is(err, owerr.ErrNotFound) {
			return []*model.Experiment{}, nil
		} else if err != nil {
			return nil, err
		}
	default:
		experiments, err = s.ExperimentRepo.GetExperiments(ctx)
		if errors.Is(err, owerr.ErrNotFound) {
			return []*model.Experiment{}, nil
		} else if err != nil {
			return nil, err
		}
	}

	if !query.IncludeArchived {
		experiments = lo.Filter(experiments, func(e *model.Experiment, _ int) bool { return !e.Archived })
	}
	return experiments, nil
}

func experimentIdsByMode(experiments []*model.Experiment, mode string) []string {
	var ids []string
	linq.From(experiments).
		WhereT(func(e *model.Experiment) bool { return e.EvaluationMode == mode }).
		SelectT(func(e *model.Experiment) string { return e.ID }).
		ToSlice(&ids)
	return ids
}

// filterParticipants reduces a participant snapshot to the identifiers
// eligible under the query's status, anonymity and demographic gates.
func filterParticipants(participants []*model.Participant, query *model.PerformanceQueryContext) []string {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		if query.MatchParticipant(p) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func filterComparisonEvaluations(evaluations []*model.ComparisonEvaluation, query *model.PerformanceQueryContext) []*model.ComparisonEvaluation {
	return lo.Filter(evaluations, func(e *model.ComparisonEvaluation, _ int) bool {
		return query.MatchParticipant(e.Participant)
	})
}

func filterSingleVideoEvaluations(evaluations []*model.SingleVideoEvaluation, query *model.PerformanceQueryContext) []*model.SingleVideoEvaluation {
	return lo.Filter(evaluations, func(e *model.SingleVideoEvaluation, _ int) bool {
		return query.MatchParticipant(e.Participant)
	})
}
