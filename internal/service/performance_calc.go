package service

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model"
	"github.com/owl-eval/backend/internal/pkg/observability"
	"github.com/owl-eval/backend/internal/util"
)

type comparisonKey struct {
	Dimension    string
	ExperimentID string
}

// comparisonCounter accumulates canonical outcome counts for one key. The
// model pair is uniform within a key since a comparison task fixes its pair.
type comparisonCounter struct {
	ModelA string
	ModelB string

	Counts map[string]int
	Total  int
}

type singleVideoKey struct {
	Dimension    string
	ExperimentID string
	ModelName    string
}

type singleVideoCounter struct {
	Sum   int
	Count int

	// Histogram holds counts for scores 1..5 at indices 0..4.
	Histogram [5]int
}

// aggregateComparisons accumulates each dimension entry of each rating payload
// into its (dimension, experiment) counter. Entries that fail canonicalization
// are skipped individually: one bad label never discards the submission's
// other dimensions.
func aggregateComparisons(evaluations []*model.ComparisonEvaluation, experimentIds []string) map[comparisonKey]*comparisonCounter {
	inScope := lo.SliceToMap(experimentIds, func(id string) (string, struct{}) { return id, struct{}{} })

	counters := map[comparisonKey]*comparisonCounter{}
	for _, evaluation := range evaluations {
		if _, ok := inScope[evaluation.ExperimentID]; !ok {
			continue
		}
		if evaluation.DetailedRatings == nil {
			observability.SkippedRatings.WithLabelValues(constant.EvaluationModeComparison, "not_an_object").Inc()
			continue
		}
		for dimension, raw := range evaluation.DetailedRatings {
			label, ok := util.CanonicalComparisonLabel(raw)
			if !ok {
				observability.SkippedRatings.WithLabelValues(constant.EvaluationModeComparison, "unknown_label").Inc()
				continue
			}

			key := comparisonKey{Dimension: dimension, ExperimentID: evaluation.ExperimentID}
			counter, ok := counters[key]
			if !ok {
				counter = &comparisonCounter{
					ModelA: evaluation.ModelA,
					ModelB: evaluation.ModelB,
					Counts: map[string]int{},
				}
				counters[key] = counter
			}
			counter.Counts[label]++
			counter.Total++
		}
	}
	return counters
}

// reduceComparisons emits two records per key: one from each model's
// perspective, with the B-side buckets mirrored so either record reads
// correctly on its own. Ties are split evenly between both sides, which makes
// the two win rates of a key always sum to one.
func reduceComparisons(counters map[comparisonKey]*comparisonCounter) []*model.PerformanceRecord {
	records := make([]*model.PerformanceRecord, 0, len(counters)*2)
	for key, counter := range counters {
		if counter.Total == 0 {
			continue
		}
		total := float64(counter.Total)
		aWins := counter.Counts[constant.LabelAMuchBetter] + counter.Counts[constant.LabelASlightlyBetter]
		bWins := counter.Counts[constant.LabelBMuchBetter] + counter.Counts[constant.LabelBSlightlyBetter]
		equals := counter.Counts[constant.LabelEqual]

		aRate := (float64(aWins) + 0.5*float64(equals)) / total
		bRate := (float64(bWins) + 0.5*float64(equals)) / total

		records = append(records,
			&model.PerformanceRecord{
				Model:          counter.ModelA,
				Dimension:      key.Dimension,
				ExperimentID:   key.ExperimentID,
				EvaluationType: constant.EvaluationModeComparison,
				NumEvaluations: counter.Total,
				WinRate:        &aRate,
				DetailedScores: copyCounts(counter.Counts),
			},
			&model.PerformanceRecord{
				Model:          counter.ModelB,
				Dimension:      key.Dimension,
				ExperimentID:   key.ExperimentID,
				EvaluationType: constant.EvaluationModeComparison,
				NumEvaluations: counter.Total,
				WinRate:        &bRate,
				DetailedScores: mirrorCounts(counter.Counts),
			},
		)
	}
	return records
}

func copyCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for label, n := range counts {
		out[label] = n
	}
	return out
}

// mirrorCounts swaps the A and B buckets so the counts describe the
// comparison from model B's perspective. Equal is unchanged.
func mirrorCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for label, n := range counts {
		out[mirrorLabel(label)] = n
	}
	return out
}

func mirrorLabel(label string) string {
	switch label {
	case constant.LabelAMuchBetter:
		return constant.LabelBMuchBetter
	case constant.LabelASlightlyBetter:
		return constant.LabelBSlightlyBetter
	case constant.LabelBSlightlyBetter:
		return constant.LabelASlightlyBetter
	case constant.LabelBMuchBetter:
		return constant.LabelAMuchBetter
	}
	return label
}

// aggregateSingleVideos accumulates whole-number scores into their
// (dimension, experiment, model) counter. Out-of-range or non-integer values
// are dropped rather than clamped.
func aggregateSingleVideos(evaluations []*model.SingleVideoEvaluation, experimentIds []string) map[singleVideoKey]*singleVideoCounter {
	inScope := lo.SliceToMap(experimentIds, func(id string) (string, struct{}) { return id, struct{}{} })

	counters := map[singleVideoKey]*singleVideoCounter{}
	for _, evaluation := range evaluations {
		if _, ok := inScope[evaluation.ExperimentID]; !ok {
			continue
		}
		if evaluation.DimensionScores == nil {
			observability.SkippedRatings.WithLabelValues(constant.EvaluationModeSingleVideo, "not_an_object").Inc()
			continue
		}
		for dimension, raw := range evaluation.DimensionScores {
			score, ok := util.SingleVideoScore(raw)
			if !ok {
				observability.SkippedRatings.WithLabelValues(constant.EvaluationModeSingleVideo, "invalid_score").Inc()
				continue
			}

			key := singleVideoKey{
				Dimension:    dimension,
				ExperimentID: evaluation.ExperimentID,
				ModelName:    evaluation.ModelName,
			}
			counter, ok := counters[key]
			if !ok {
				counter = &singleVideoCounter{}
				counters[key] = counter
			}
			counter.Sum += score
			counter.Count++
			counter.Histogram[score-1]++
		}
	}
	return counters
}

// reduceSingleVideos reports the proportion of high scores as the quality
// rate, the mean as the quality score, and a histogram of observed scores.
func reduceSingleVideos(counters map[singleVideoKey]*singleVideoCounter) []*model.PerformanceRecord {
	records := make([]*model.PerformanceRecord, 0, len(counters))
	for key, counter := range counters {
		if counter.Count == 0 {
			continue
		}

		high := 0
		distribution := make(map[string]int)
		for i, n := range counter.Histogram {
			score := i + 1
			if n == 0 {
				continue
			}
			if score >= constant.SingleVideoHighScoreThreshold {
				high += n
			}
			distribution[strconv.Itoa(score)] = n
		}

		qualityRate := float64(high) / float64(counter.Count)
		qualityScore := float64(counter.Sum) / float64(counter.Count)

		records = append(records, &model.PerformanceRecord{
			Model:             key.ModelName,
			Dimension:         key.Dimension,
			ExperimentID:      key.ExperimentID,
			EvaluationType:    constant.EvaluationModeSingleVideo,
			NumEvaluations:    counter.Count,
			QualityRate:       &qualityRate,
			QualityScore:      &qualityScore,
			ScoreDistribution: distribution,
		})
	}
	return records
}
