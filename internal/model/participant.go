package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Participant struct {
	bun.BaseModel `bun:"participants,alias:p" swaggerignore:"true"`

	ID           string    `bun:",pk" json:"id"`
	ExperimentID string    `bun:"experiment_id" json:"experimentId"`
	Status       string    `bun:"status" json:"status"`
	IsAnonymous  bool      `bun:"is_anonymous" json:"isAnonymous"`
	CreatedAt    time.Time `bun:"created_at" json:"createdAt"`

	Demographics *ParticipantDemographics `bun:"rel:has-one,join:id=participant_id" json:"demographics,omitempty"`
}

// ParticipantDemographics is the panel-provided demographic snapshot taken at
// session creation. A participant without a row here has unknown demographics.
type ParticipantDemographics struct {
	bun.BaseModel `bun:"participant_demographics,alias:pd" swaggerignore:"true"`

	ParticipantID      string      `bun:",pk" json:"-"`
	Age                null.Int    `bun:"age" json:"age,omitempty" swaggertype:"integer"`
	Sex                null.String `bun:"sex" json:"sex,omitempty" swaggertype:"string"`
	CountryOfResidence null.String `bun:"country_of_residence" json:"countryOfResidence,omitempty" swaggertype:"string"`
}
