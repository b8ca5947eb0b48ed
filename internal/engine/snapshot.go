package engine

import (
	"fmt"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/dls"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// InningsSnapshot is the scoreboard line for one innings.
type InningsSnapshot struct {
	Number      int    `json:"number"`
	BattingTeam string `json:"batting_team"`
	Runs        int    `json:"runs"`
	Wickets     int    `json:"wickets"`
	Overs       string `json:"overs"`
	Closed      bool   `json:"closed"`
}

// Snapshot is the read-only projection served on the snapshot endpoint and
// pushed to live subscribers. It copies everything it carries, so holding one
// across later mutations is safe.
type Snapshot struct {
	MatchID           int64              `json:"match_id"`
	Status            model.MatchStatus  `json:"status"`
	TeamA             string             `json:"team_a"`
	TeamB             string             `json:"team_b"`
	CurrentInnings    int                `json:"current_innings"`
	OversLimit        int                `json:"overs_limit,omitempty"`
	Shortened         bool               `json:"shortened,omitempty"`
	AwaitingNewBatter bool               `json:"awaiting_new_batter"`
	AwaitingNewOver   bool               `json:"awaiting_new_over"`
	StrikerID         int64              `json:"striker_id,omitempty"`
	NonStrikerID      int64              `json:"non_striker_id,omitempty"`
	BowlerID          int64              `json:"bowler_id,omitempty"`
	Innings           []InningsSnapshot  `json:"innings"`
	Target            *int               `json:"target,omitempty"`
	RequiredRunRate   *float64           `json:"required_run_rate,omitempty"`
	Par               *int               `json:"par,omitempty"`
	AheadBy           *int               `json:"ahead_by,omitempty"`
	Result            *model.MatchResult `json:"result,omitempty"`
}

// BuildSnapshot projects the aggregate for external consumers. tbl may be
// nil; par and ahead-by are omitted whenever the rain-rule numbers cannot be
// computed.
func BuildSnapshot(m *model.Match, tbl dls.Table) Snapshot {
	snap := Snapshot{
		MatchID:           m.ID,
		Status:            m.Status,
		TeamA:             m.TeamA.Name,
		TeamB:             m.TeamB.Name,
		CurrentInnings:    m.CurrentInnings,
		Shortened:         m.Shortened,
		AwaitingNewBatter: m.AwaitingNewBatter,
		AwaitingNewOver:   m.AwaitingNewOver,
		StrikerID:         m.StrikerID,
		NonStrikerID:      m.NonStrikerID,
		BowlerID:          m.BowlerID,
	}
	if m.Format == model.FormatLimitedOvers {
		snap.OversLimit = m.EffectiveOversLimit(m.CurrentInnings)
	}
	for i := range m.Innings {
		card := &m.Innings[i]
		snap.Innings = append(snap.Innings, InningsSnapshot{
			Number:      card.Number,
			BattingTeam: card.BattingTeam,
			Runs:        card.Runs,
			Wickets:     card.Wickets,
			Overs:       oversString(card.OversCompleted, card.BallsThisOver),
			Closed:      card.Closed,
		})
	}
	if m.Target != nil {
		target := *m.Target
		snap.Target = &target
	}
	if m.Result != nil {
		result := *m.Result
		snap.Result = &result
	}

	chasing := m.Status == model.StatusLive && m.CurrentInnings == 2 && m.Target != nil
	if chasing && m.Format == model.FormatLimitedOvers {
		if card := m.Card(2); card != nil {
			ballsLeft := m.EffectiveOversLimit(2)*6 - card.LegalBalls()
			if ballsLeft > 0 {
				rrr := float64(*m.Target-card.Runs) * 6 / float64(ballsLeft)
				if rrr < 0 {
					rrr = 0
				}
				snap.RequiredRunRate = &rrr
			}
		}
	}
	if chasing && m.RainRuleEnabled && m.FirstInnings != nil && tbl != nil {
		if breakdown, err := ParNow(m, tbl); err == nil {
			par := breakdown.Par
			ahead := breakdown.AheadBy
			snap.Par = &par
			snap.AheadBy = &ahead
		}
	}
	return snap
}

// oversString renders overs in the conventional "completed.balls" form.
func oversString(completed, balls int) string {
	return fmt.Sprintf("%d.%d", completed, balls)
}
