package util

import (
	"encoding/json"

	"github.com/owl-eval/backend/internal/constant"
)

// comparisonLabelAliases is the translation table from every label spelling
// ever emitted by an evaluation client to its canonical form. New variants get
// a row here, not string comparisons elsewhere.
// The map must not be modified.
var comparisonLabelAliases = map[string]string{
	constant.LabelAMuchBetter:     constant.LabelAMuchBetter,
	"A_Much_Better":               constant.LabelAMuchBetter,
	constant.LabelASlightlyBetter: constant.LabelASlightlyBetter,
	"A_Slightly_Better":           constant.LabelASlightlyBetter,
	"A":                           constant.LabelASlightlyBetter,
	constant.LabelEqual:           constant.LabelEqual,
	"equal":                       constant.LabelEqual,
	constant.LabelBSlightlyBetter: constant.LabelBSlightlyBetter,
	"B_Slightly_Better":           constant.LabelBSlightlyBetter,
	"B":                           constant.LabelBSlightlyBetter,
	constant.LabelBMuchBetter:     constant.LabelBMuchBetter,
	"B_Much_Better":               constant.LabelBMuchBetter,
}

// CanonicalComparisonLabel maps a raw rating payload value to its canonical
// outcome label. The second return value reports whether the value was
// recognized; unrecognized values are skipped by the caller, never an error.
func CanonicalComparisonLabel(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	canonical, ok := comparisonLabelAliases[s]
	return canonical, ok
}

// SingleVideoScore extracts a whole-number score in [1,5] from a raw rating
// payload value. Fractional values, out-of-range values and non-numeric types
// (including numeric strings) are rejected.
func SingleVideoScore(raw any) (int, bool) {
	var f float64
	switch v := raw.(type) {
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	score := int(f)
	if float64(score) != f {
		return 0, false
	}
	if score < constant.SingleVideoScoreMin || score > constant.SingleVideoScoreMax {
		return 0, false
	}
	return score, true
}
