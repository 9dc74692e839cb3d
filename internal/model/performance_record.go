package model

// PerformanceRecord is one row of the performance report: one model on one
// dimension within one experiment. Comparison experiments fill WinRate and
// DetailedScores; single-video experiments fill QualityRate, QualityScore and
// ScoreDistribution. A record is only emitted when NumEvaluations > 0.
type PerformanceRecord struct {
	Model          string `json:"model"`
	Dimension      string `json:"dimension"`
	ExperimentID   string `json:"experimentId"`
	EvaluationType string `json:"evaluationType"`
	NumEvaluations int    `json:"num_evaluations"`

	WinRate        *float64       `json:"win_rate,omitempty"`
	DetailedScores map[string]int `json:"detailed_scores,omitempty"`

	QualityRate       *float64       `json:"quality_rate,omitempty"`
	QualityScore      *float64       `json:"quality_score,omitempty"`
	ScoreDistribution map[string]int `json:"score_distribution,omitempty"`
}
