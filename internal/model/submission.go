package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// ComparisonSubmission is one participant's answer to one comparison task.
// DetailedRatings maps dimension name to an outcome label; the payload is kept
// as-is and only canonicalized at aggregation time.
type ComparisonSubmission struct {
	bun.BaseModel `bun:"comparison_submissions,alias:cs" swaggerignore:"true"`

	ID                    string         `bun:",pk" json:"id"`
	TaskID                string         `bun:"task_id" json:"taskId"`
	ParticipantID         string         `bun:"participant_id" json:"participantId"`
	ChosenModel           null.String    `bun:"chosen_model" json:"chosenModel,omitempty" swaggertype:"string"`
	DetailedRatings       map[string]any `bun:"detailed_ratings,type:jsonb" json:"detailedRatings"`
	Status                string         `bun:"status" json:"status"`
	CompletionTimeSeconds null.Float     `bun:"completion_time_seconds" json:"completionTimeSeconds,omitempty" swaggertype:"number"`
	LastSavedAt           null.Time      `bun:"last_saved_at" json:"lastSavedAt,omitempty" swaggertype:"string"`
	CreatedAt             time.Time      `bun:"created_at" json:"createdAt"`
}

// SingleVideoSubmission carries per-dimension 1-5 scores in DimensionScores.
type SingleVideoSubmission struct {
	bun.BaseModel `bun:"single_video_submissions,alias:ss" swaggerignore:"true"`

	ID                    string         `bun:",pk" json:"id"`
	TaskID                string         `bun:"task_id" json:"taskId"`
	ParticipantID         string         `bun:"participant_id" json:"participantId"`
	DimensionScores       map[string]any `bun:"dimension_scores,type:jsonb" json:"dimensionScores"`
	Status                string         `bun:"status" json:"status"`
	CompletionTimeSeconds null.Float     `bun:"completion_time_seconds" json:"completionTimeSeconds,omitempty" swaggertype:"number"`
	LastSavedAt           null.Time      `bun:"last_saved_at" json:"lastSavedAt,omitempty" swaggertype:"string"`
	CreatedAt             time.Time      `bun:"created_at" json:"createdAt"`
}
