package engine

import (
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// RebuildCards recomputes every scorecard from the delivery log. The log is
// the source of truth; the running cards kept on the aggregate are an
// optimization and must always agree with a full replay. Batters who are at
// the crease in the open innings but have not faced a ball yet are seeded
// from the live striker and non-striker ids, since they cannot appear in the
// log.
func RebuildCards(m *model.Match) error {
	for i := range m.Innings {
		card := &m.Innings[i]
		batting, ok := m.TeamByName(card.BattingTeam)
		if !ok {
			return invariantf("innings %d bats for unknown team %q", card.Number, card.BattingTeam)
		}
		bowling, ok := m.TeamByName(card.BowlingTeam)
		if !ok {
			return invariantf("innings %d bowls for unknown team %q", card.Number, card.BowlingTeam)
		}

		rebuilt := model.InningsCard{
			Number:            card.Number,
			BattingTeam:       card.BattingTeam,
			BowlingTeam:       card.BowlingTeam,
			OversLimitAtStart: card.OversLimitAtStart,
			Closed:            card.Closed,
		}
		for idx := range m.Deliveries {
			if m.Deliveries[idx].Innings != card.Number {
				continue
			}
			applyToCard(&rebuilt, batting, bowling, m.Deliveries, idx)
		}
		if !rebuilt.Closed && card.Number == m.CurrentInnings {
			if m.StrikerID != 0 {
				rebuilt.BattingFor(m.StrikerID, batting.PlayerName(m.StrikerID))
			}
			if m.NonStrikerID != 0 {
				rebuilt.BattingFor(m.NonStrikerID, batting.PlayerName(m.NonStrikerID))
			}
		}
		m.Innings[i] = rebuilt
	}
	return nil
}
