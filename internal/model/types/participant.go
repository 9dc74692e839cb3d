package types

type ParticipantCreateRequest struct {
	ExperimentID string `json:"experimentId" validate:"required,printascii,max=64"`

	// PanelParticipantID is the identity supplied by the recruiting panel.
	// When absent an anonymous session ID is minted instead.
	PanelParticipantID string `json:"panelParticipantId,omitempty" validate:"omitempty,printascii,max=64"`

	Age                *int   `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Sex                string `json:"sex,omitempty" validate:"omitempty,max=32"`
	CountryOfResidence string `json:"countryOfResidence,omitempty" validate:"omitempty,max=64"`
}
