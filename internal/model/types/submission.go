package types

// submission request structs

type ComparisonSubmissionRequest struct {
	TaskID      string `json:"taskId" validate:"required,printascii,max=64"`
	ChosenModel string `json:"chosenModel,omitempty" validate:"omitempty,max=128"`

	// DetailedRatings maps dimension name to an outcome label. Labels are
	// stored verbatim and canonicalized at aggregation time.
	DetailedRatings map[string]any `json:"detailedRatings" validate:"required"`

	CompletionTimeSeconds float64 `json:"completionTimeSeconds,omitempty" validate:"omitempty,gte=0"`
	Draft                 bool    `json:"draft,omitempty"`
}

type SingleVideoSubmissionRequest struct {
	TaskID string `json:"taskId" validate:"required,printascii,max=64"`

	// DimensionScores maps dimension name to a 1-5 score.
	DimensionScores map[string]any `json:"dimensionScores" validate:"required"`

	CompletionTimeSeconds float64 `json:"completionTimeSeconds,omitempty" validate:"omitempty,gte=0"`
	Draft                 bool    `json:"draft,omitempty"`
}

// SubmissionTask is the queue message produced by the submission endpoints and
// consumed by the submission worker.
type SubmissionTask struct {
	TaskID        string `json:"taskId"`
	ParticipantID string `json:"participantId"`
	RequestID     string `json:"requestId"`
	Mode          string `json:"mode"`
	IP            string `json:"ip"`

	Comparison  *ComparisonSubmissionRequest  `json:"comparison,omitempty"`
	SingleVideo *SingleVideoSubmissionRequest `json:"singleVideo,omitempty"`

	CreatedAt int64 `json:"createdAt"`
}
