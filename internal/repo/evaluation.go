package repo

import (
	"context"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/model"
)

// Evaluation reads completed submissions joined with their task and the
// submitting participant, which is the shape the performance aggregation
// consumes.
type Evaluation struct {
	db *bun.DB
}

func NewEvaluation(db *bun.DB) *Evaluation {
	return &Evaluation{db: db}
}

type comparisonEvalRow struct {
	SubmissionID    string         `bun:"submission_id"`
	ExperimentID    string         `bun:"experiment_id"`
	ModelA          string         `bun:"model_a"`
	ModelB          string         `bun:"model_b"`
	DetailedRatings map[string]any `bun:"detailed_ratings,type:jsonb"`

	ParticipantID     string      `bun:"participant_id"`
	ParticipantStatus string      `bun:"participant_status"`
	IsAnonymous       bool        `bun:"is_anonymous"`
	HasDemographics   bool        `bun:"has_demographics"`
	Age               null.Int    `bun:"age"`
	Sex               null.String `bun:"sex"`
	Country           null.String `bun:"country_of_residence"`
}

type singleVideoEvalRow struct {
	SubmissionID    string         `bun:"submission_id"`
	ExperimentID    string         `bun:"experiment_id"`
	ModelName       string         `bun:"model_name"`
	DimensionScores map[string]any `bun:"dimension_scores,type:jsonb"`

	ParticipantID     string      `bun:"participant_id"`
	ParticipantStatus string      `bun:"participant_status"`
	IsAnonymous       bool        `bun:"is_anonymous"`
	HasDemographics   bool        `bun:"has_demographics"`
	Age               null.Int    `bun:"age"`
	Sex               null.String `bun:"sex"`
	Country           null.String `bun:"country_of_residence"`
}

func (r *Evaluation) comparisonBase() *bun.SelectQuery {
	return r.db.NewSelect().
		TableExpr("comparison_submissions AS cs").
		ColumnExpr("cs.id AS submission_id").
		ColumnExpr("ct.experiment_id AS experiment_id").
		ColumnExpr("ct.model_a AS model_a").
		ColumnExpr("ct.model_b AS model_b").
		ColumnExpr("cs.detailed_ratings AS detailed_ratings").
		ColumnExpr("p.id AS participant_id").
		ColumnExpr("p.status AS participant_status").
		ColumnExpr("p.is_anonymous AS is_anonymous").
		ColumnExpr("pd.participant_id IS NOT NULL AS has_demographics").
		ColumnExpr("pd.age AS age").
		ColumnExpr("pd.sex AS sex").
		ColumnExpr("pd.country_of_residence AS country_of_residence").
		Join("JOIN comparison_tasks AS ct ON ct.id = cs.task_id").
		Join("JOIN participants AS p ON p.id = cs.participant_id").
		Join("LEFT JOIN participant_demographics AS pd ON pd.participant_id = p.id").
		Where("cs.status = ?", constant.SubmissionStatusCompleted)
}

func (r *Evaluation) singleVideoBase() *bun.SelectQuery {
	return r.db.NewSelect().
		TableExpr("single_video_submissions AS ss").
		ColumnExpr("ss.id AS submission_id").
		ColumnExpr("st.experiment_id AS experiment_id").
		ColumnExpr("st.model_name AS model_name").
		ColumnExpr("ss.dimension_scores AS dimension_scores").
		ColumnExpr("p.id AS participant_id").
		ColumnExpr("p.status AS participant_status").
		ColumnExpr("p.is_anonymous AS is_anonymous").
		ColumnExpr("pd.participant_id IS NOT NULL AS has_demographics").
		ColumnExpr("pd.age AS age").
		ColumnExpr("pd.sex AS sex").
		ColumnExpr("pd.country_of_residence AS country_of_residence").
		Join("JOIN single_video_tasks AS st ON st.id = ss.task_id").
		Join("JOIN participants AS p ON p.id = ss.participant_id").
		Join("LEFT JOIN participant_demographics AS pd ON pd.participant_id = p.id").
		Where("ss.status = ?", constant.SubmissionStatusCompleted)
}

func (r *Evaluation) GetComparisonsByParticipantIds(ctx context.Context, participantIds []string) ([]*model.ComparisonEvaluation, error) {
	if len(participantIds) == 0 {
		return []*model.ComparisonEvaluation{}, nil
	}
	var rows []comparisonEvalRow
	err := r.comparisonBase().
		Where("cs.participant_id IN (?)", bun.In(participantIds)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return hydrateComparisons(rows), nil
}

func (r *Evaluation) GetComparisonsByExperimentIds(ctx context.Context, experimentIds []string) ([]*model.ComparisonEvaluation, error) {
	if len(experimentIds) == 0 {
		return []*model.ComparisonEvaluation{}, nil
	}
	var rows []comparisonEvalRow
	err := r.comparisonBase().
		Where("ct.experiment_id IN (?)", bun.In(experimentIds)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return hydrateComparisons(rows), nil
}

func (r *Evaluation) GetSingleVideosByParticipantIds(ctx context.Context, participantIds []string) ([]*model.SingleVideoEvaluation, error) {
	if len(participantIds) == 0 {
		return []*model.SingleVideoEvaluation{}, nil
	}
	var rows []singleVideoEvalRow
	err := r.singleVideoBase().
		Where("ss.participant_id IN (?)", bun.In(participantIds)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return hydrateSingleVideos(rows), nil
}

func (r *Evaluation) GetSingleVideosByExperimentIds(ctx context.Context, experimentIds []string) ([]*model.SingleVideoEvaluation, error) {
	if len(experimentIds) == 0 {
		return []*model.SingleVideoEvaluation{}, nil
	}
	var rows []singleVideoEvalRow
	err := r.singleVideoBase().
		Where("st.experiment_id IN (?)", bun.In(experimentIds)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return hydrateSingleVideos(rows), nil
}

func hydrateComparisons(rows []comparisonEvalRow) []*model.ComparisonEvaluation {
	evaluations := make([]*model.ComparisonEvaluation, 0, len(rows))
	for _, row := range rows {
		evaluations = append(evaluations, &model.ComparisonEvaluation{
			SubmissionID:    row.SubmissionID,
			ExperimentID:    row.ExperimentID,
			ModelA:          row.ModelA,
			ModelB:          row.ModelB,
			DetailedRatings: row.DetailedRatings,
			Participant:     hydrateParticipant(row.ParticipantID, row.ParticipantStatus, row.IsAnonymous, row.HasDemographics, row.Age, row.Sex, row.Country),
		})
	}
	return evaluations
}

func hydrateSingleVideos(rows []singleVideoEvalRow) []*model.SingleVideoEvaluation {
	evaluations := make([]*model.SingleVideoEvaluation, 0, len(rows))
	for _, row := range rows {
		evaluations = append(evaluations, &model.SingleVideoEvaluation{
			SubmissionID:    row.SubmissionID,
			ExperimentID:    row.ExperimentID,
			ModelName:       row.ModelName,
			DimensionScores: row.DimensionScores,
			Participant:     hydrateParticipant(row.ParticipantID, row.ParticipantStatus, row.IsAnonymous, row.HasDemographics, row.Age, row.Sex, row.Country),
		})
	}
	return evaluations
}

func hydrateParticipant(id, status string, isAnonymous, hasDemographics bool, age null.Int, sex, country null.String) *model.Participant {
	p := &model.Participant{
		ID:          id,
		Status:      status,
		IsAnonymous: isAnonymous,
	}
	if hasDemographics {
		p.Demographics = &model.ParticipantDemographics{
			ParticipantID:      id,
			Age:                age,
			Sex:                sex,
			CountryOfResidence: country,
		}
	}
	return p
}
