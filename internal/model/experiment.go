package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Experiment struct {
	bun.BaseModel `bun:"experiments,alias:e" swaggerignore:"true"`

	ID             string      `bun:",pk" json:"id"`
	Slug           string      `bun:"slug" json:"slug"`
	Name           string      `bun:"name" json:"name"`
	Description    null.String `bun:"description" json:"description,omitempty" swaggertype:"string"`
	GroupLabel     null.String `bun:"group_label" json:"group,omitempty" swaggertype:"string"`
	EvaluationMode string      `bun:"evaluation_mode" json:"evaluationMode"`
	Status         string      `bun:"status" json:"status"`
	Archived       bool        `bun:"archived" json:"archived"`
	CreatedAt      time.Time   `bun:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bun:"updated_at" json:"updatedAt"`
}
