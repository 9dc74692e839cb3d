package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/owl-eval/backend/internal/model"
)

type Submission struct {
	db *bun.DB
}

func NewSubmission(db *bun.DB) *Submission {
	return &Submission{db: db}
}

// SaveComparisonSubmission upserts by (task, participant) so that a draft can
// be saved repeatedly and finally promoted to completed. A completed
// submission is never demoted back to draft.
func (r *Submission) SaveComparisonSubmission(ctx context.Context, submission *model.ComparisonSubmission) error {
	submission.LastSavedAt.SetValid(time.Now())
	_, err := r.db.NewInsert().
		Model(submission).
		On("CONFLICT (task_id, participant_id) DO UPDATE").
		Set("chosen_model = EXCLUDED.chosen_model").
		Set("detailed_ratings = EXCLUDED.detailed_ratings").
		Set("completion_time_seconds = EXCLUDED.completion_time_seconds").
		Set("last_saved_at = EXCLUDED.last_saved_at").
		Set("status = CASE WHEN comparison_submissions.status = 'completed' THEN 'completed' ELSE EXCLUDED.status END").
		Exec(ctx)
	return err
}

func (r *Submission) SaveSingleVideoSubmission(ctx context.Context, submission *model.SingleVideoSubmission) error {
	submission.LastSavedAt.SetValid(time.Now())
	_, err := r.db.NewInsert().
		Model(submission).
		On("CONFLICT (task_id, participant_id) DO UPDATE").
		Set("dimension_scores = EXCLUDED.dimension_scores").
		Set("completion_time_seconds = EXCLUDED.completion_time_seconds").
		Set("last_saved_at = EXCLUDED.last_saved_at").
		Set("status = CASE WHEN single_video_submissions.status = 'completed' THEN 'completed' ELSE EXCLUDED.status END").
		Exec(ctx)
	return err
}
