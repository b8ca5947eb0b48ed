package engine

import (
	"fmt"
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/dls"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// TargetBreakdown is the rain-rule arithmetic behind a revised target.
type TargetBreakdown struct {
	ResourcesTeam1   float64 `json:"resources_team1"`
	ResourcesTeam2   float64 `json:"resources_team2"`
	FirstInningsRuns int     `json:"first_innings_runs"`
	Target           int     `json:"target"`
}

// ParBreakdown is the live rain-rule position of the chase.
type ParBreakdown struct {
	ResourcesTeam1     float64 `json:"resources_team1"`
	ResourcesUsedTeam2 float64 `json:"resources_used_team2"`
	FirstInningsRuns   int     `json:"first_innings_runs"`
	Par                int     `json:"par"`
	AheadBy            int     `json:"ahead_by"`
}

// Resolve runs after every successful mutation. It decides whether the
// current innings is finished and, when it is, freezes the first-innings
// summary and target at the break or produces the final MatchResult at the
// end of the chase. tbl may be nil when the rain rule is disabled.
func Resolve(m *model.Match, tbl dls.Table, now time.Time) ([]Event, error) {
	if m.Status != model.StatusLive {
		return nil, nil
	}
	card := m.CurrentCard()
	if card == nil {
		return nil, nil
	}

	allOut := card.Wickets >= m.PlayersPerSide()-1
	oversDone := false
	if m.Format == model.FormatLimitedOvers {
		oversDone = card.LegalBalls() >= m.EffectiveOversLimit(card.Number)*6
	}
	targetReached := card.Number == 2 && m.Target != nil && card.Runs >= *m.Target

	if !allOut && !oversDone && !targetReached {
		return nil, nil
	}

	card.Closed = true
	m.AwaitingNewBatter = false
	m.AwaitingNewOver = false
	m.StrikerID = 0
	m.NonStrikerID = 0
	m.BowlerID = 0
	m.LastOverBowlerID = 0

	events := []Event{event(EventInningsEnded, card.Number)}

	if card.Number == 1 {
		m.FirstInnings = &model.FirstInningsSummary{
			Runs:           card.Runs,
			Wickets:        card.Wickets,
			OversCompleted: card.OversCompleted,
			BallsThisOver:  card.BallsThisOver,
		}
		m.Status = model.StatusInningsBreak
		m.CurrentInnings = 2

		target := card.Runs + 1
		if m.RainRuleEnabled && m.Format == model.FormatLimitedOvers {
			breakdown, err := RevisedTargetBreakdown(m, tbl)
			if err != nil {
				return nil, err
			}
			target = breakdown.Target
		}
		m.Target = &target
		return events, nil
	}

	result, err := chaseVerdict(m, card, targetReached, now)
	if err != nil {
		return nil, err
	}
	m.Result = &result
	m.Status = model.StatusCompleted
	events = append(events, event(EventMatchCompleted, card.Number))
	return events, nil
}

// chaseVerdict settles a finished second innings against the stored target.
func chaseVerdict(m *model.Match, card *model.InningsCard, targetReached bool, now time.Time) (model.MatchResult, error) {
	if m.Target == nil || m.FirstInnings == nil {
		return model.MatchResult{}, invariantf("second innings ended without a frozen target")
	}
	target := *m.Target
	rain := m.RainRuleEnabled && m.Shortened
	method := model.MethodNormal
	suffix := ""
	if rain {
		method = model.MethodRainRule
		suffix = " (DLS method)"
	}

	if targetReached {
		margin := m.PlayersPerSide() - 1 - card.Wickets
		return model.MatchResult{
			Winner:      card.BattingTeam,
			Method:      method,
			Margin:      margin,
			MarginUnit:  model.MarginWickets,
			Summary:     fmt.Sprintf("%s won by %d wickets%s", card.BattingTeam, margin, suffix),
			CompletedAt: now,
		}, nil
	}

	if card.Runs == target-1 {
		return model.MatchResult{
			Method:      model.MethodTie,
			Summary:     "Match tied" + suffix,
			CompletedAt: now,
		}, nil
	}

	margin := target - 1 - card.Runs
	return model.MatchResult{
		Winner:      card.BowlingTeam,
		Method:      method,
		Margin:      margin,
		MarginUnit:  model.MarginRuns,
		Summary:     fmt.Sprintf("%s won by %d runs%s", card.BowlingTeam, margin, suffix),
		CompletedAt: now,
	}, nil
}

// RevisedTargetBreakdown computes what the chasing side must score, from the
// resources each side had across the match as currently known.
func RevisedTargetBreakdown(m *model.Match, tbl dls.Table) (TargetBreakdown, error) {
	if !m.RainRuleEnabled {
		return TargetBreakdown{}, conflictf("the rain rule is not enabled for this match")
	}
	if m.FirstInnings == nil {
		return TargetBreakdown{}, conflictf("first innings is not complete")
	}
	if tbl == nil {
		return TargetBreakdown{}, invariantf("rain rule enabled but no resource table available")
	}

	allOut := m.PlayersPerSide() - 1
	r1, err := dls.ConsumedResources(tbl, m.Deliveries, m.Interruptions, 1, m.OversLimit, allOut)
	if err != nil {
		return TargetBreakdown{}, err
	}
	r2, err := dls.TotalResources(tbl, m.Deliveries, m.Interruptions, 2, m.OversLimit)
	if err != nil {
		return TargetBreakdown{}, err
	}
	target, err := dls.RevisedTarget(m.FirstInnings.Runs, r1, r2)
	if err != nil {
		return TargetBreakdown{}, err
	}
	return TargetBreakdown{
		ResourcesTeam1:   r1,
		ResourcesTeam2:   r2,
		FirstInningsRuns: m.FirstInnings.Runs,
		Target:           target,
	}, nil
}

// ParNow computes the score the chasing side should be level with right now.
func ParNow(m *model.Match, tbl dls.Table) (ParBreakdown, error) {
	if !m.RainRuleEnabled {
		return ParBreakdown{}, conflictf("the rain rule is not enabled for this match")
	}
	if m.FirstInnings == nil {
		return ParBreakdown{}, conflictf("first innings is not complete")
	}
	card := m.Card(2)
	if card == nil {
		return ParBreakdown{}, conflictf("second innings has not started")
	}
	if tbl == nil {
		return ParBreakdown{}, invariantf("rain rule enabled but no resource table available")
	}

	allOut := m.PlayersPerSide() - 1
	r1, err := dls.ConsumedResources(tbl, m.Deliveries, m.Interruptions, 1, m.OversLimit, allOut)
	if err != nil {
		return ParBreakdown{}, err
	}
	used2, err := dls.ConsumedResources(tbl, m.Deliveries, m.Interruptions, 2, m.OversLimit, allOut)
	if err != nil {
		return ParBreakdown{}, err
	}
	par, err := dls.ParScore(m.FirstInnings.Runs, r1, used2)
	if err != nil {
		return ParBreakdown{}, err
	}
	return ParBreakdown{
		ResourcesTeam1:     r1,
		ResourcesUsedTeam2: used2,
		FirstInningsRuns:   m.FirstInnings.Runs,
		Par:                par,
		AheadBy:            card.Runs - par,
	}, nil
}

// Abandon ends the match permanently. A chase that has passed the format's
// minimum-overs threshold is settled against the current par score; anything
// earlier is a no-result.
func Abandon(m *model.Match, tbl dls.Table, note string, now time.Time) ([]Event, error) {
	if m.Status.Finished() {
		return nil, conflictf("match is already %s", m.Status)
	}

	card := m.Card(2)
	decidable := m.Status == model.StatusLive &&
		m.CurrentInnings == 2 &&
		m.RainRuleEnabled &&
		m.Format == model.FormatLimitedOvers &&
		m.FirstInnings != nil &&
		card != nil &&
		card.LegalBalls() >= minimumOversForResult(m.OversLimit)*6

	if !decidable {
		m.Result = &model.MatchResult{
			Method:      model.MethodNoResult,
			Summary:     "No result",
			Note:        note,
			CompletedAt: now,
		}
		m.Status = model.StatusAbandoned
		m.AwaitingNewBatter = false
		m.AwaitingNewOver = false
		return []Event{event(EventMatchAbandoned, m.CurrentInnings)}, nil
	}

	breakdown, err := ParNow(m, tbl)
	if err != nil {
		return nil, err
	}

	var result model.MatchResult
	switch {
	case breakdown.AheadBy > 0:
		result = model.MatchResult{
			Winner:      card.BattingTeam,
			Method:      model.MethodRainRule,
			Margin:      breakdown.AheadBy,
			MarginUnit:  model.MarginRuns,
			Summary:     fmt.Sprintf("%s won by %d runs (DLS method)", card.BattingTeam, breakdown.AheadBy),
			CompletedAt: now,
		}
	case breakdown.AheadBy == 0:
		result = model.MatchResult{
			Method:      model.MethodTie,
			Summary:     "Match tied (DLS method)",
			CompletedAt: now,
		}
	default:
		result = model.MatchResult{
			Winner:      card.BowlingTeam,
			Method:      model.MethodRainRule,
			Margin:      -breakdown.AheadBy,
			MarginUnit:  model.MarginRuns,
			Summary:     fmt.Sprintf("%s won by %d runs (DLS method)", card.BowlingTeam, -breakdown.AheadBy),
			CompletedAt: now,
		}
	}

	result.Note = note
	card.Closed = true
	m.Result = &result
	m.Status = model.StatusCompleted
	m.AwaitingNewBatter = false
	m.AwaitingNewOver = false
	m.StrikerID = 0
	m.NonStrikerID = 0
	m.BowlerID = 0
	return []Event{event(EventMatchCompleted, m.CurrentInnings)}, nil
}

// OverrideResult replaces the verdict on a finished match. The logs stay
// untouched; this is the one administrative edit the lifecycle allows.
func OverrideResult(m *model.Match, res model.MatchResult, now time.Time) ([]Event, error) {
	if !m.Status.Finished() {
		return nil, conflictf("result can only be overridden once the match is over")
	}
	if !res.Method.Valid() {
		return nil, validationf("unknown result method %q", res.Method)
	}
	if res.Winner != "" {
		if _, ok := m.TeamByName(res.Winner); !ok {
			return nil, validationf("winner %q is not playing this match", res.Winner)
		}
	}
	if res.Margin < 0 {
		return nil, validationf("margin cannot be negative")
	}
	if res.Summary == "" {
		return nil, validationf("a result summary is required")
	}
	if res.CompletedAt.IsZero() {
		res.CompletedAt = now
	}
	m.Result = &res
	return []Event{event(EventResultOverridden, m.CurrentInnings)}, nil
}

// minimumOversForResult is the fewest overs the chasing side must face for a
// rain-rule verdict: twenty in a full one-day innings, five in the short
// formats.
func minimumOversForResult(oversLimit int) int {
	if oversLimit >= 40 {
		return 20
	}
	return 5
}
