package model

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"

	"github.com/owl-eval/backend/internal/constant"
)

// PerformanceQueryContext captures one performance report request after
// parsing: which experiments to cover and which participants to count.
type PerformanceQueryContext struct {
	// SelectedExperimentID narrows the report to a single experiment. When
	// invalid, it takes precedence over ExperimentGroup and yields an empty
	// report rather than an error.
	SelectedExperimentID null.String
	ExperimentGroup      null.String

	AgeMin  null.Int
	AgeMax  null.Int
	Sex     null.String
	Country null.String

	IncludeAnonymous bool
	IncludeArchived  bool
}

// Key serializes the query context into a cache key segment.
func (q *PerformanceQueryContext) Key() string {
	segments := []string{
		q.SelectedExperimentID.ValueOrZero(),
		q.ExperimentGroup.ValueOrZero(),
		formatNullInt(q.AgeMin),
		formatNullInt(q.AgeMax),
		strings.ToLower(q.Sex.ValueOrZero()),
		strings.ToLower(q.Country.ValueOrZero()),
		strconv.FormatBool(q.IncludeAnonymous),
		strconv.FormatBool(q.IncludeArchived),
	}
	return strings.Join(segments, constant.CacheSep)
}

func formatNullInt(i null.Int) string {
	if !i.Valid {
		return ""
	}
	return strconv.FormatInt(i.Int64, 10)
}

func (q *PerformanceQueryContext) HasDemographicFilters() bool {
	return q.AgeMin.Valid || q.AgeMax.Valid ||
		isSelective(q.Sex) || isSelective(q.Country)
}

// MatchParticipant reports whether a participant passes the anonymity gate and
// the demographic filters of this query.
func (q *PerformanceQueryContext) MatchParticipant(p *Participant) bool {
	if p == nil {
		return false
	}
	if p.Status == constant.ParticipantStatusReturned {
		return false
	}
	if !q.IncludeAnonymous && (p.IsAnonymous || strings.HasPrefix(p.ID, constant.AnonymousParticipantPrefix)) {
		return false
	}
	return q.MatchDemographics(p.Demographics)
}

// MatchDemographics applies the demographic filters alone. A participant with
// no demographics on file passes only when no demographic filter is active;
// under an active filter, a missing field counts as a non-match.
func (q *PerformanceQueryContext) MatchDemographics(d *ParticipantDemographics) bool {
	if !q.HasDemographicFilters() {
		return true
	}
	if d == nil {
		return false
	}
	if q.AgeMin.Valid && (!d.Age.Valid || d.Age.Int64 < q.AgeMin.Int64) {
		return false
	}
	if q.AgeMax.Valid && (!d.Age.Valid || d.Age.Int64 > q.AgeMax.Int64) {
		return false
	}
	if isSelective(q.Sex) {
		if !d.Sex.Valid || !strings.EqualFold(d.Sex.String, q.Sex.String) {
			return false
		}
	}
	if isSelective(q.Country) {
		if !d.CountryOfResidence.Valid || !strings.EqualFold(d.CountryOfResidence.String, q.Country.String) {
			return false
		}
	}
	return true
}

func isSelective(s null.String) bool {
	return s.Valid && s.String != "" && !strings.EqualFold(s.String, constant.FilterAll)
}
