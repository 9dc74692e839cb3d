package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model"
)

func comparisonEval(experimentId, modelA, modelB string, ratings map[string]any) *model.ComparisonEvaluation {
	return &model.ComparisonEvaluation{
		ExperimentID:    experimentId,
		ModelA:          modelA,
		ModelB:          modelB,
		DetailedRatings: ratings,
		Participant:     &model.Participant{ID: "panel-1", Status: constant.ParticipantStatusActive},
	}
}

func singleVideoEval(experimentId, modelName string, scores map[string]any) *model.SingleVideoEvaluation {
	return &model.SingleVideoEvaluation{
		ExperimentID:    experimentId,
		ModelName:       modelName,
		DimensionScores: scores,
		Participant:     &model.Participant{ID: "panel-1", Status: constant.ParticipantStatusActive},
	}
}

func recordFor(records []*model.PerformanceRecord, modelName, dimension string) *model.PerformanceRecord {
	for _, r := range records {
		if r.Model == modelName && r.Dimension == dimension {
			return r
		}
	}
	return nil
}

func TestComparisonTieSplit(t *testing.T) {
	evaluations := []*model.ComparisonEvaluation{
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "A_much_better"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "B_slightly_better"}),
	}

	records := reduceComparisons(aggregateComparisons(evaluations, []string{"e1"}))
	require.Len(t, records, 2)

	x := recordFor(records, "x", "overall_quality")
	y := recordFor(records, "y", "overall_quality")
	require.NotNil(t, x)
	require.NotNil(t, y)

	assert.Equal(t, 2, x.NumEvaluations)
	assert.InDelta(t, 0.5, *x.WinRate, 1e-9)
	assert.InDelta(t, 0.5, *y.WinRate, 1e-9)
}

func TestComparisonWinRatesSumToOne(t *testing.T) {
	evaluations := []*model.ComparisonEvaluation{
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "A_much_better"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "A"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "Equal"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "equal"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "B_Much_Better"}),
	}

	records := reduceComparisons(aggregateComparisons(evaluations, []string{"e1"}))
	x := recordFor(records, "x", "overall_quality")
	y := recordFor(records, "y", "overall_quality")
	require.NotNil(t, x)
	require.NotNil(t, y)

	assert.InDelta(t, 1.0, *x.WinRate+*y.WinRate, 1e-9)
}

func TestComparisonPerspectiveMirroring(t *testing.T) {
	evaluations := []*model.ComparisonEvaluation{
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "A_much_better"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "A_slightly_better"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "Equal"}),
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "B_slightly_better"}),
	}

	records := reduceComparisons(aggregateComparisons(evaluations, []string{"e1"}))
	x := recordFor(records, "x", "overall_quality")
	y := recordFor(records, "y", "overall_quality")
	require.NotNil(t, x)
	require.NotNil(t, y)

	assert.Equal(t, x.DetailedScores[constant.LabelAMuchBetter], y.DetailedScores[constant.LabelBMuchBetter])
	assert.Equal(t, x.DetailedScores[constant.LabelASlightlyBetter], y.DetailedScores[constant.LabelBSlightlyBetter])
	assert.Equal(t, x.DetailedScores[constant.LabelBSlightlyBetter], y.DetailedScores[constant.LabelASlightlyBetter])
	assert.Equal(t, x.DetailedScores[constant.LabelEqual], y.DetailedScores[constant.LabelEqual])
}

func TestComparisonSkipsUnknownLabels(t *testing.T) {
	evaluations := []*model.ComparisonEvaluation{
		comparisonEval("e1", "x", "y", map[string]any{
			"overall_quality": "A_much_better",
			"visual_quality":  "somewhat better", // unknown, skipped
			"controllability": 3,                 // not a string, skipped
		}),
	}

	counters := aggregateComparisons(evaluations, []string{"e1"})
	require.Len(t, counters, 1)
	counter := counters[comparisonKey{Dimension: "overall_quality", ExperimentID: "e1"}]
	require.NotNil(t, counter)
	assert.Equal(t, 1, counter.Total)
}

func TestComparisonMultiDimensionFanOut(t *testing.T) {
	evaluations := []*model.ComparisonEvaluation{
		comparisonEval("e1", "x", "y", map[string]any{
			"overall_quality": "A_much_better",
			"visual_quality":  "B",
		}),
	}

	counters := aggregateComparisons(evaluations, []string{"e1"})
	assert.Len(t, counters, 2)
}

func TestComparisonOutOfScopeExperiment(t *testing.T) {
	evaluations := []*model.ComparisonEvaluation{
		comparisonEval("e2", "x", "y", map[string]any{"overall_quality": "A_much_better"}),
	}

	records := reduceComparisons(aggregateComparisons(evaluations, []string{"e1"}))
	assert.Empty(t, records)
}

func TestSingleVideoQualityRates(t *testing.T) {
	evaluations := []*model.SingleVideoEvaluation{
		singleVideoEval("e1", "m", map[string]any{"visual_quality": 5}),
		singleVideoEval("e1", "m", map[string]any{"visual_quality": 4}),
		singleVideoEval("e1", "m", map[string]any{"visual_quality": 2}),
	}

	records := reduceSingleVideos(aggregateSingleVideos(evaluations, []string{"e1"}))
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "m", record.Model)
	assert.Equal(t, "visual_quality", record.Dimension)
	assert.Equal(t, 3, record.NumEvaluations)
	assert.InDelta(t, 2.0/3.0, *record.QualityRate, 1e-9)
	assert.InDelta(t, 11.0/3.0, *record.QualityScore, 1e-9)
	assert.Equal(t, map[string]int{"2": 1, "4": 1, "5": 1}, record.ScoreDistribution)
}

func TestSingleVideoRejectsInvalidScores(t *testing.T) {
	evaluations := []*model.SingleVideoEvaluation{
		singleVideoEval("e1", "m", map[string]any{"visual_quality": 0}),
		singleVideoEval("e1", "m", map[string]any{"visual_quality": 6}),
		singleVideoEval("e1", "m", map[string]any{"visual_quality": 3.5}),
		singleVideoEval("e1", "m", map[string]any{"visual_quality": "3"}),
		singleVideoEval("e1", "m", map[string]any{"visual_quality": 3}),
	}

	records := reduceSingleVideos(aggregateSingleVideos(evaluations, []string{"e1"}))
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].NumEvaluations)
	assert.InDelta(t, 3.0, *records[0].QualityScore, 1e-9)
}

func TestNoRecordsWithoutEvaluations(t *testing.T) {
	// an experiment with zero qualifying submissions contributes zero
	// records, never a record with a zero sample count
	comparisonRecords := reduceComparisons(aggregateComparisons(nil, []string{"e1"}))
	singleVideoRecords := reduceSingleVideos(aggregateSingleVideos(nil, []string{"e1"}))
	assert.Empty(t, comparisonRecords)
	assert.Empty(t, singleVideoRecords)

	evaluations := []*model.ComparisonEvaluation{
		comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "garbage"}),
	}
	records := reduceComparisons(aggregateComparisons(evaluations, []string{"e1"}))
	assert.Empty(t, records)
}

func participant(id string, status string, isAnonymous bool, demographics *model.ParticipantDemographics) *model.Participant {
	return &model.Participant{
		ID:           id,
		Status:       status,
		IsAnonymous:  isAnonymous,
		Demographics: demographics,
	}
}

func TestFilterParticipantsDemographicGate(t *testing.T) {
	seventeen := participant("p17", constant.ParticipantStatusActive, false, &model.ParticipantDemographics{Age: null.IntFrom(17)})
	eighteen := participant("p18", constant.ParticipantStatusActive, false, &model.ParticipantDemographics{Age: null.IntFrom(18)})

	query := &model.PerformanceQueryContext{AgeMin: null.IntFrom(18)}
	ids := filterParticipants([]*model.Participant{seventeen, eighteen}, query)
	assert.Equal(t, []string{"p18"}, ids)

	query = &model.PerformanceQueryContext{AgeMin: null.IntFrom(17)}
	ids = filterParticipants([]*model.Participant{seventeen, eighteen}, query)
	assert.Equal(t, []string{"p17", "p18"}, ids)
}

func TestFilterParticipantsAnonymityGate(t *testing.T) {
	anonymous := participant(constant.AnonymousParticipantPrefix+"abc", constant.ParticipantStatusActive, true, nil)
	named := participant("panel-1", constant.ParticipantStatusActive, false, nil)

	query := &model.PerformanceQueryContext{}
	assert.Equal(t, []string{"panel-1"}, filterParticipants([]*model.Participant{anonymous, named}, query))

	query = &model.PerformanceQueryContext{IncludeAnonymous: true}
	assert.Equal(t, []string{constant.AnonymousParticipantPrefix + "abc", "panel-1"},
		filterParticipants([]*model.Participant{anonymous, named}, query))
}

func TestFilterParticipantsReturnedStatus(t *testing.T) {
	returned := participant("p1", constant.ParticipantStatusReturned, false, nil)
	assert.Empty(t, filterParticipants([]*model.Participant{returned}, &model.PerformanceQueryContext{}))

	// only returned submissions are discarded; other non-active statuses stay
	approved := participant("p2", constant.ParticipantStatusApproved, false, nil)
	timedOut := participant("p3", constant.ParticipantStatusTimedOut, false, nil)
	assert.Len(t, filterParticipants([]*model.Participant{approved, timedOut}, &model.PerformanceQueryContext{}), 2)
}

func TestFilterParticipantsMissingDemographics(t *testing.T) {
	noDemographics := participant("p1", constant.ParticipantStatusActive, false, nil)

	// kept when no demographic filter is active
	assert.Len(t, filterParticipants([]*model.Participant{noDemographics}, &model.PerformanceQueryContext{}), 1)

	// excluded under any active demographic filter
	assert.Empty(t, filterParticipants([]*model.Participant{noDemographics},
		&model.PerformanceQueryContext{Sex: null.StringFrom("female")}))
	assert.Empty(t, filterParticipants([]*model.Participant{noDemographics},
		&model.PerformanceQueryContext{AgeMin: null.IntFrom(18)}))

	// "all" is the wildcard, not an active filter
	assert.Len(t, filterParticipants([]*model.Participant{noDemographics},
		&model.PerformanceQueryContext{Sex: null.StringFrom("all")}), 1)
}

func TestFilterComparisonEvaluationsPerRow(t *testing.T) {
	young := comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "A"})
	young.Participant = participant("p17", constant.ParticipantStatusActive, false, &model.ParticipantDemographics{Age: null.IntFrom(17)})
	adult := comparisonEval("e1", "x", "y", map[string]any{"overall_quality": "B"})
	adult.Participant = participant("p30", constant.ParticipantStatusActive, false, &model.ParticipantDemographics{Age: null.IntFrom(30)})

	query := &model.PerformanceQueryContext{AgeMin: null.IntFrom(18)}
	filtered := filterComparisonEvaluations([]*model.ComparisonEvaluation{young, adult}, query)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p30", filtered[0].Participant.ID)
}
