package model

// ComparisonEvaluation is a completed comparison submission joined with its
// task and the submitting participant, which is everything the aggregation
// needs in one row.
type ComparisonEvaluation struct {
	SubmissionID    string
	ExperimentID    string
	ModelA          string
	ModelB          string
	DetailedRatings map[string]any
	Participant     *Participant
}

type SingleVideoEvaluation struct {
	SubmissionID    string
	ExperimentID    string
	ModelName       string
	DimensionScores map[string]any
	Participant     *Participant
}
