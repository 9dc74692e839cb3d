package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Video struct {
	bun.BaseModel `bun:"videos,alias:v" swaggerignore:"true"`

	ID              string      `bun:",pk" json:"id"`
	Path            string      `bun:"path" json:"path"`
	ModelName       string      `bun:"model_name" json:"modelName"`
	ScenarioID      string      `bun:"scenario_id" json:"scenarioId"`
	DurationSeconds null.Float  `bun:"duration_seconds" json:"durationSeconds,omitempty" swaggertype:"number"`
	Resolution      null.String `bun:"resolution" json:"resolution,omitempty" swaggertype:"string"`
	UploadedAt      time.Time   `bun:"uploaded_at" json:"uploadedAt"`
}
