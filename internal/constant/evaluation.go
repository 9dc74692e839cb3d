package constant

const (
	EvaluationModeComparison  = "comparison"
	EvaluationModeSingleVideo = "single_video"

	SubmissionStatusDraft     = "draft"
	SubmissionStatusCompleted = "completed"

	ParticipantStatusActive   = "active"
	ParticipantStatusApproved = "approved"
	ParticipantStatusReturned = "returned"
	ParticipantStatusTimedOut = "timed_out"

	// FilterAll is the wildcard value for demographic filter fields.
	FilterAll = "all"

	SingleVideoScoreMin = 1
	SingleVideoScoreMax = 5

	// SingleVideoHighScoreThreshold is the lowest score counted towards the quality rate.
	SingleVideoHighScoreThreshold = 4
)

// Canonical comparison outcome labels. Legacy spellings are translated in
// util.CanonicalComparisonLabel; everywhere else only these five exist.
const (
	LabelAMuchBetter     = "A_much_better"
	LabelASlightlyBetter = "A_slightly_better"
	LabelEqual           = "Equal"
	LabelBSlightlyBetter = "B_slightly_better"
	LabelBMuchBetter     = "B_much_better"
)

var ComparisonLabels = []string{
	LabelAMuchBetter,
	LabelASlightlyBetter,
	LabelEqual,
	LabelBSlightlyBetter,
	LabelBMuchBetter,
}

var EvaluationModes = []string{
	EvaluationModeComparison,
	EvaluationModeSingleVideo,
}
