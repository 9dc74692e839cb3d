package types

import "gopkg.in/guregu/null.v3"

type PurgeCacheRequest struct {
	Name string      `json:"name" validate:"required" example:"performanceRecords#query"`
	Key  null.String `json:"key" swaggertype:"string"`
}
