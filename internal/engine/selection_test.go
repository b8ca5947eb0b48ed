package engine_test

import (
	"errors"
	"testing"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

func TestStartInnings_OpensTheFirstInnings(t *testing.T) {
	m := testMatch(20, false)
	startInnings(t, m)

	if m.Status != model.StatusLive {
		t.Fatalf("status = %s, want live", m.Status)
	}
	if m.StrikerID != 1 || m.NonStrikerID != 2 || m.BowlerID != 21 {
		t.Fatalf("crease wrong: striker=%d non-striker=%d bowler=%d", m.StrikerID, m.NonStrikerID, m.BowlerID)
	}
	if len(m.Innings) != 1 {
		t.Fatalf("innings cards = %d, want 1", len(m.Innings))
	}
	card := currentCard(t, m)
	if card.Number != 1 || card.BattingTeam != "Harbour View" || card.BowlingTeam != "Spanish Town" {
		t.Fatalf("card header wrong: %+v", card)
	}
	if card.OversLimitAtStart != 20 {
		t.Fatalf("OversLimitAtStart = %d, want 20", card.OversLimitAtStart)
	}
	if len(card.Batting) != 2 {
		t.Fatalf("openers must be on the card, got %d lines", len(card.Batting))
	}
}

func TestStartInnings_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   engine.StartInningsInput
	}{
		{"missing ids", engine.StartInningsInput{StrikerID: 1, NonStrikerID: 2}},
		{"same opener twice", engine.StartInningsInput{StrikerID: 1, NonStrikerID: 1, BowlerID: 21}},
		{"opener from the fielding side", engine.StartInningsInput{StrikerID: 1, NonStrikerID: 22, BowlerID: 21}},
		{"bowler from the batting side", engine.StartInningsInput{StrikerID: 1, NonStrikerID: 2, BowlerID: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := testMatch(20, false)
			if _, err := engine.StartInnings(m, tc.in, baseTime); !errors.Is(err, engine.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if m.Status != model.StatusScheduled || len(m.Innings) != 0 {
				t.Fatalf("rejected start must leave the match untouched")
			}
		})
	}
}

func TestStartInnings_WhileLiveConflicts(t *testing.T) {
	m := testMatch(20, false)
	startInnings(t, m)

	in := engine.StartInningsInput{StrikerID: 3, NonStrikerID: 4, BowlerID: 22}
	if _, err := engine.StartInnings(m, in, baseTime); !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegisterNewOver_ConsecutiveOverBan(t *testing.T) {
	m := testMatch(20, false)
	startInnings(t, m)

	bowlOver := func() {
		t.Helper()
		for i := 0; i < 6; i++ {
			if _, err := engine.ApplyDelivery(m, plainBall(m, 0), baseTime); err != nil {
				t.Fatalf("ball %d: %v", i+1, err)
			}
		}
	}

	bowlOver()
	// The allowance lets the same bowler continue once per innings.
	if _, err := engine.RegisterNewOver(m, 21, baseTime); err != nil {
		t.Fatalf("first repeat should consume the allowance: %v", err)
	}
	if !m.MidOverChangeUsed {
		t.Fatalf("the allowance must be marked used")
	}

	bowlOver()
	if _, err := engine.RegisterNewOver(m, 21, baseTime); !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("second repeat must conflict, got %v", err)
	}
	if _, err := engine.RegisterNewOver(m, 22, baseTime); err != nil {
		t.Fatalf("a fresh bowler is always fine: %v", err)
	}
	if m.BowlerID != 22 || m.AwaitingNewOver {
		t.Fatalf("bowler not installed: bowler=%d awaiting=%v", m.BowlerID, m.AwaitingNewOver)
	}
}

func TestRegisterNewOver_Validation(t *testing.T) {
	m := testMatch(20, false)
	startInnings(t, m)

	// Nothing pending yet.
	if _, err := engine.RegisterNewOver(m, 22, baseTime); !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("expected ErrConflict with no over pending, got %v", err)
	}

	for i := 0; i < 6; i++ {
		if _, err := engine.ApplyDelivery(m, plainBall(m, 0), baseTime); err != nil {
			t.Fatalf("ball %d: %v", i+1, err)
		}
	}

	if _, err := engine.RegisterNewOver(m, 0, baseTime); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("zero id must fail validation, got %v", err)
	}
	if _, err := engine.RegisterNewOver(m, 5, baseTime); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("a batter cannot bowl, got %v", err)
	}
}

func TestRegisterNewBatter_FillsTheVacantEnd(t *testing.T) {
	m := testMatch(20, false)
	startInnings(t, m)

	// Nothing pending on a fresh innings.
	if _, err := engine.RegisterNewBatter(m, 3, baseTime); !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("expected ErrConflict with no batter pending, got %v", err)
	}

	cmd := plainBall(m, 0)
	cmd.Wicket = true
	cmd.Dismissal = model.DismissalBowled
	cmd.DismissedID = m.StrikerID
	if _, err := engine.ApplyDelivery(m, cmd, baseTime); err != nil {
		t.Fatalf("wicket ball: %v", err)
	}

	cases := []struct {
		name string
		id   int64
	}{
		{"zero id", 0},
		{"fielder cannot bat", 23},
		{"already at the crease", 2},
		{"already out", 1},
	}
	for _, tc := range cases {
		if _, err := engine.RegisterNewBatter(m, tc.id, baseTime); !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}

	if _, err := engine.RegisterNewBatter(m, 3, baseTime); err != nil {
		t.Fatalf("RegisterNewBatter: %v", err)
	}
	if m.StrikerID != 3 || m.AwaitingNewBatter {
		t.Fatalf("replacement must take the vacant striker end: striker=%d awaiting=%v", m.StrikerID, m.AwaitingNewBatter)
	}

	card := currentCard(t, m)
	found := false
	for _, line := range card.Batting {
		if line.PlayerID == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("the new batter must appear on the card")
	}
}

func TestRegisterNewBatter_RequiresLiveMatch(t *testing.T) {
	m := testMatch(20, false)
	if _, err := engine.RegisterNewBatter(m, 3, baseTime); !errors.Is(err, engine.ErrConflict) {
		t.Fatalf("expected ErrConflict on a scheduled match, got %v", err)
	}
}
