package types

// PerformanceRequest carries the query parameters of a performance report
// request. Demographic fields default to "all" which disables the filter.
type PerformanceRequest struct {
	ExperimentID    string `query:"experimentId" validate:"omitempty,printascii,max=64" json:"experimentId"`
	ExperimentGroup string `query:"experimentGroup" validate:"omitempty,max=128" json:"experimentGroup"`

	AgeMin  *int   `query:"ageMin" validate:"omitempty,gte=0,lte=150" json:"ageMin,omitempty"`
	AgeMax  *int   `query:"ageMax" validate:"omitempty,gte=0,lte=150" json:"ageMax,omitempty"`
	Sex     string `query:"sex" validate:"omitempty,max=32" json:"sex" example:"all"`
	Country string `query:"country" validate:"omitempty,max=64" json:"country" example:"all"`

	IncludeAnonymous bool `query:"includeAnonymous" json:"includeAnonymous"`
	IncludeArchived  bool `query:"includeArchived" json:"includeArchived"`
}
