package engine_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/dls"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

var baseTime = time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)

func table(t *testing.T, overs int) dls.Table {
	t.Helper()
	tbl, err := dls.NewStandardTable(overs)
	if err != nil {
		t.Fatalf("NewStandardTable(%d): %v", overs, err)
	}
	return tbl
}

func squad(name string, firstID int64) model.Team {
	t := model.Team{Name: name}
	for i := int64(0); i < 11; i++ {
		t.Players = append(t.Players, model.Player{ID: firstID + i, Name: fmt.Sprintf("%s %d", name, i+1)})
	}
	return t
}

// testMatch is a scheduled 11-a-side limited-overs fixture. Harbour View
// (ids 1..11) won the toss and bats; Spanish Town (ids 21..31) bowls first.
func testMatch(overs int, rain bool) *model.Match {
	return &model.Match{
		ID:              1,
		Version:         1,
		Format:          model.FormatLimitedOvers,
		OversLimit:      overs,
		RainRuleEnabled: rain,
		TossWinner:      "Harbour View",
		TossDecision:    model.DecisionBat,
		TeamA:           squad("Harbour View", 1),
		TeamB:           squad("Spanish Town", 21),
		Status:          model.StatusScheduled,
		CurrentInnings:  1,
	}
}

// startInnings opens the current innings with the side's first two batters
// and the fielding side's first bowler.
func startInnings(t *testing.T, m *model.Match) {
	t.Helper()
	batting, _ := m.TeamByName(m.BattingTeamName(m.CurrentInnings))
	bowling, _ := m.TeamByName(m.BowlingTeamName(m.CurrentInnings))
	in := engine.StartInningsInput{
		StrikerID:    batting.Players[0].ID,
		NonStrikerID: batting.Players[1].ID,
		BowlerID:     bowling.Players[0].ID,
	}
	if _, err := engine.StartInnings(m, in, baseTime); err != nil {
		t.Fatalf("StartInnings: %v", err)
	}
}

// nextBowler alternates between the fielding side's first two bowlers so the
// consecutive-over rule never trips in scripted play.
func nextBowler(m *model.Match) int64 {
	bowling, _ := m.TeamByName(m.BowlingTeamName(m.CurrentInnings))
	a, b := bowling.Players[0].ID, bowling.Players[1].ID
	if m.LastOverBowlerID == a {
		return b
	}
	return a
}

// oneBall drives the loop the service runs per command: register the next
// bowler if an over just ended, bowl one plain delivery, resolve.
func oneBall(t *testing.T, m *model.Match, tbl dls.Table, runs int) {
	t.Helper()
	if m.AwaitingNewOver {
		if _, err := engine.RegisterNewOver(m, nextBowler(m), baseTime); err != nil {
			t.Fatalf("RegisterNewOver: %v", err)
		}
	}
	cmd := engine.DeliveryCommand{
		StrikerID:    m.StrikerID,
		NonStrikerID: m.NonStrikerID,
		BowlerID:     m.BowlerID,
		RunsOffBat:   runs,
		Extra:        model.ExtraNone,
	}
	if _, err := engine.ApplyDelivery(m, cmd, baseTime); err != nil {
		t.Fatalf("ApplyDelivery: %v", err)
	}
	if _, err := engine.Resolve(m, tbl, baseTime); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}

// playOvers bowls whole overs of identical singles-free deliveries. Each ball
// scores runsPerBall off the bat.
func playOvers(t *testing.T, m *model.Match, tbl dls.Table, overs, runsPerBall int) {
	t.Helper()
	for i := 0; i < overs*6; i++ {
		oneBall(t, m, tbl, runsPerBall)
	}
}

// currentCard fails the test rather than returning nil.
func currentCard(t *testing.T, m *model.Match) *model.InningsCard {
	t.Helper()
	card := m.CurrentCard()
	if card == nil {
		t.Fatalf("no current innings card (innings %d of %d)", m.CurrentInnings, len(m.Innings))
	}
	return card
}
