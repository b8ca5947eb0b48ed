package model

import "time"

// ResultMethod is how the final verdict was reached.
type ResultMethod string

const (
	MethodNormal   ResultMethod = "normal"
	MethodRainRule ResultMethod = "rain_rule"
	MethodTie      ResultMethod = "tie"
	MethodNoResult ResultMethod = "no_result"
)

// Valid reports whether the method is a known variant.
func (m ResultMethod) Valid() bool {
	switch m {
	case MethodNormal, MethodRainRule, MethodTie, MethodNoResult:
		return true
	}
	return false
}

// MarginUnit qualifies the margin number in a result.
type MarginUnit string

const (
	MarginRuns    MarginUnit = "runs"
	MarginWickets MarginUnit = "wickets"
)

// MatchResult is the final verdict. Winner is empty for ties and no-results.
// Note carries the scorer's reason on abandonments; the summary itself stays
// canonical so clients can match on it.
type MatchResult struct {
	Winner      string       `json:"winner,omitempty"`
	Method      ResultMethod `json:"method"`
	Margin      int          `json:"margin,omitempty"`
	MarginUnit  MarginUnit   `json:"margin_unit,omitempty"`
	Summary     string       `json:"summary"`
	Note        string       `json:"note,omitempty"`
	CompletedAt time.Time    `json:"completed_at"`
}
