package engine

import (
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// RegisterNewBatter fills the crease slot a wicket vacated. Conflict when no
// selection is pending; validation when the player is not an eligible member
// of the batting side.
func RegisterNewBatter(m *model.Match, playerID int64, now time.Time) ([]Event, error) {
	if err := requireLive(m); err != nil {
		return nil, err
	}
	if !m.AwaitingNewBatter {
		return nil, conflictf("no batter selection is pending")
	}
	if playerID <= 0 {
		return nil, validationf("batter id must be positive")
	}

	batting, ok := m.TeamByName(m.BattingTeamName(m.CurrentInnings))
	if !ok {
		return nil, invariantf("batting side unknown for innings %d", m.CurrentInnings)
	}
	if !batting.HasPlayer(playerID) {
		return nil, validationf("batter %d does not belong to %s", playerID, batting.Name)
	}
	if playerID == m.StrikerID || playerID == m.NonStrikerID {
		return nil, validationf("batter %d is already at the crease", playerID)
	}
	card := m.CurrentCard()
	if card == nil {
		return nil, invariantf("live match %d has no innings card", m.ID)
	}
	for _, line := range card.Batting {
		if line.PlayerID == playerID && line.Out {
			return nil, validationf("batter %d is already out", playerID)
		}
	}

	if m.StrikerID == 0 {
		m.StrikerID = playerID
	} else {
		m.NonStrikerID = playerID
	}
	card.BattingFor(playerID, batting.PlayerName(playerID))
	m.AwaitingNewBatter = false

	return []Event{event(EventBatterRegistered, m.CurrentInnings)}, nil
}

// RegisterNewOver installs the bowler for the next over. The same bowler may
// not bowl consecutive overs; the one-time mid-over-change allowance lifts
// that once per innings and is consumed by use.
func RegisterNewOver(m *model.Match, bowlerID int64, now time.Time) ([]Event, error) {
	if err := requireLive(m); err != nil {
		return nil, err
	}
	if !m.AwaitingNewOver {
		return nil, conflictf("no over selection is pending")
	}
	if bowlerID <= 0 {
		return nil, validationf("bowler id must be positive")
	}

	bowling, ok := m.TeamByName(m.BowlingTeamName(m.CurrentInnings))
	if !ok {
		return nil, invariantf("bowling side unknown for innings %d", m.CurrentInnings)
	}
	if !bowling.HasPlayer(bowlerID) {
		return nil, validationf("bowler %d does not belong to %s", bowlerID, bowling.Name)
	}

	if bowlerID == m.LastOverBowlerID {
		if m.MidOverChangeUsed {
			return nil, conflictf("bowler %d bowled the previous over", bowlerID)
		}
		m.MidOverChangeUsed = true
	}

	m.BowlerID = bowlerID
	m.AwaitingNewOver = false

	return []Event{event(EventOverStarted, m.CurrentInnings)}, nil
}

// StartInningsInput names the openers and the opening bowler.
type StartInningsInput struct {
	StrikerID    int64 `json:"striker_id"`
	NonStrikerID int64 `json:"non_striker_id"`
	BowlerID     int64 `json:"bowler_id"`
}

// StartInnings opens the first innings of a scheduled match or the second
// after the break, installing openers and the opening bowler.
func StartInnings(m *model.Match, in StartInningsInput, now time.Time) ([]Event, error) {
	switch m.Status {
	case model.StatusScheduled, model.StatusInningsBreak:
	default:
		return nil, conflictf("cannot start an innings while the match is %s", m.Status)
	}
	if len(m.Innings) >= m.CurrentInnings {
		return nil, invariantf("innings %d already has a card", m.CurrentInnings)
	}

	batting, ok := m.TeamByName(m.BattingTeamName(m.CurrentInnings))
	if !ok {
		return nil, invariantf("batting side unknown for innings %d", m.CurrentInnings)
	}
	bowling, _ := m.TeamByName(m.BowlingTeamName(m.CurrentInnings))

	if in.StrikerID <= 0 || in.NonStrikerID <= 0 || in.BowlerID <= 0 {
		return nil, validationf("striker, non-striker and bowler are required")
	}
	if in.StrikerID == in.NonStrikerID {
		return nil, validationf("openers must be two different batters")
	}
	if !batting.HasPlayer(in.StrikerID) || !batting.HasPlayer(in.NonStrikerID) {
		return nil, validationf("openers must belong to %s", batting.Name)
	}
	if !bowling.HasPlayer(in.BowlerID) {
		return nil, validationf("bowler %d does not belong to %s", in.BowlerID, bowling.Name)
	}

	card := model.InningsCard{
		Number:            m.CurrentInnings,
		BattingTeam:       batting.Name,
		BowlingTeam:       bowling.Name,
		OversLimitAtStart: m.EffectiveOversLimit(m.CurrentInnings),
	}
	card.BattingFor(in.StrikerID, batting.PlayerName(in.StrikerID))
	card.BattingFor(in.NonStrikerID, batting.PlayerName(in.NonStrikerID))
	m.Innings = append(m.Innings, card)

	m.StrikerID = in.StrikerID
	m.NonStrikerID = in.NonStrikerID
	m.BowlerID = in.BowlerID
	m.LastOverBowlerID = 0
	m.MidOverChangeUsed = false
	m.AwaitingNewBatter = false
	m.AwaitingNewOver = false
	m.Status = model.StatusLive

	return []Event{event(EventInningsStarted, m.CurrentInnings)}, nil
}
