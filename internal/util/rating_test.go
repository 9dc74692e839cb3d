package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/owl-eval/backend/internal/constant"
)

func TestCanonicalComparisonLabel(t *testing.T) {
	cases := map[string]string{
		"A_much_better":     constant.LabelAMuchBetter,
		"A_Much_Better":     constant.LabelAMuchBetter,
		"A_slightly_better": constant.LabelASlightlyBetter,
		"A_Slightly_Better": constant.LabelASlightlyBetter,
		"A":                 constant.LabelASlightlyBetter,
		"Equal":             constant.LabelEqual,
		"equal":             constant.LabelEqual,
		"B_slightly_better": constant.LabelBSlightlyBetter,
		"B_Slightly_Better": constant.LabelBSlightlyBetter,
		"B":                 constant.LabelBSlightlyBetter,
		"B_much_better":     constant.LabelBMuchBetter,
		"B_Much_Better":     constant.LabelBMuchBetter,
	}
	for raw, expect := range cases {
		got, ok := CanonicalComparisonLabel(raw)
		assert.True(t, ok, "label %q should be recognized", raw)
		assert.Equal(t, expect, got)
	}

	// canonicalizing an already canonical label yields itself
	for _, label := range constant.ComparisonLabels {
		got, ok := CanonicalComparisonLabel(label)
		assert.True(t, ok)
		assert.Equal(t, label, got)
	}
}

func TestCanonicalComparisonLabelRejects(t *testing.T) {
	for _, raw := range []any{"", "a_much_better", "C", "much better", 1, 3.0, nil, true, []string{"A"}} {
		_, ok := CanonicalComparisonLabel(raw)
		assert.False(t, ok, "value %v should not be recognized", raw)
	}
}

func TestSingleVideoScore(t *testing.T) {
	for raw, expect := range map[any]int{
		1:               1,
		5:               5,
		int64(3):        3,
		4.0:             4,
		json.Number("2"): 2,
	} {
		got, ok := SingleVideoScore(raw)
		assert.True(t, ok, "value %v should be accepted", raw)
		assert.Equal(t, expect, got)
	}
}

func TestSingleVideoScoreRejects(t *testing.T) {
	for _, raw := range []any{0, 6, 3.5, "3", -1, json.Number("3.5"), json.Number("x"), nil, true} {
		_, ok := SingleVideoScore(raw)
		assert.False(t, ok, "value %v should be rejected", raw)
	}
}
