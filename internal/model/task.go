package model

import (
	"time"

	"github.com/uptrace/bun"
)

// ComparisonTask is one A/B pair to be evaluated. Which model produced which
// side is stored on the task so the submission only needs to carry labels.
type ComparisonTask struct {
	bun.BaseModel `bun:"comparison_tasks,alias:ct" swaggerignore:"true"`

	ID           string    `bun:",pk" json:"id"`
	ExperimentID string    `bun:"experiment_id" json:"experimentId"`
	ScenarioID   string    `bun:"scenario_id" json:"scenarioId"`
	ModelA       string    `bun:"model_a" json:"modelA"`
	ModelB       string    `bun:"model_b" json:"modelB"`
	VideoAPath   string    `bun:"video_a_path" json:"videoAPath"`
	VideoBPath   string    `bun:"video_b_path" json:"videoBPath"`
	CreatedAt    time.Time `bun:"created_at" json:"createdAt"`
}

type SingleVideoTask struct {
	bun.BaseModel `bun:"single_video_tasks,alias:st" swaggerignore:"true"`

	ID           string    `bun:",pk" json:"id"`
	ExperimentID string    `bun:"experiment_id" json:"experimentId"`
	ScenarioID   string    `bun:"scenario_id" json:"scenarioId"`
	ModelName    string    `bun:"model_name" json:"modelName"`
	VideoPath    string    `bun:"video_path" json:"videoPath"`
	CreatedAt    time.Time `bun:"created_at" json:"createdAt"`
}
