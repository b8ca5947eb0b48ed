package engine_test

import (
	"testing"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

func TestBuildSnapshot_ScheduledMatch(t *testing.T) {
	m := testMatch(20, false)
	snap := engine.BuildSnapshot(m, nil)

	if snap.MatchID != 1 || snap.Status != model.StatusScheduled {
		t.Fatalf("header wrong: %+v", snap)
	}
	if snap.TeamA != "Harbour View" || snap.TeamB != "Spanish Town" {
		t.Fatalf("teams wrong: %s vs %s", snap.TeamA, snap.TeamB)
	}
	if snap.OversLimit != 20 {
		t.Fatalf("overs limit = %d, want 20", snap.OversLimit)
	}
	if len(snap.Innings) != 0 || snap.Target != nil || snap.RequiredRunRate != nil {
		t.Fatalf("nothing to project yet: %+v", snap)
	}
}

func TestBuildSnapshot_LiveChase(t *testing.T) {
	m := testMatch(2, false)
	tbl := table(t, 2)
	startInnings(t, m)
	playOvers(t, m, tbl, 2, 1) // 12, target 13

	startInnings(t, m)
	oneBall(t, m, tbl, 1)
	oneBall(t, m, tbl, 1)
	oneBall(t, m, tbl, 1)

	snap := engine.BuildSnapshot(m, nil)
	if snap.CurrentInnings != 2 || snap.Status != model.StatusLive {
		t.Fatalf("header wrong: %+v", snap)
	}
	if len(snap.Innings) != 2 {
		t.Fatalf("innings lines = %d, want 2", len(snap.Innings))
	}
	if !snap.Innings[0].Closed || snap.Innings[0].Overs != "2.0" || snap.Innings[0].Runs != 12 {
		t.Fatalf("first innings line wrong: %+v", snap.Innings[0])
	}
	if snap.Innings[1].Overs != "0.3" || snap.Innings[1].Runs != 3 {
		t.Fatalf("chase line wrong: %+v", snap.Innings[1])
	}
	if snap.Target == nil || *snap.Target != 13 {
		t.Fatalf("target = %v, want 13", snap.Target)
	}
	if snap.RequiredRunRate == nil {
		t.Fatalf("a live chase has a required rate")
	}
	want := float64(13-3) * 6 / float64(9)
	if *snap.RequiredRunRate != want {
		t.Fatalf("rrr = %v, want %v", *snap.RequiredRunRate, want)
	}
	if snap.Par != nil || snap.AheadBy != nil {
		t.Fatalf("no rain-rule numbers without the rain rule")
	}
}

func TestBuildSnapshot_RainNumbers(t *testing.T) {
	m := testMatch(20, true)
	tbl := table(t, 20)
	startInnings(t, m)
	playOvers(t, m, tbl, 20, 1)
	startInnings(t, m)
	playOvers(t, m, tbl, 5, 1)

	snap := engine.BuildSnapshot(m, tbl)
	if snap.Par == nil || snap.AheadBy == nil {
		t.Fatalf("rain-rule chase must project par and ahead-by")
	}
	if got := currentCard(t, m).Runs - *snap.Par; *snap.AheadBy != got {
		t.Fatalf("ahead-by = %d, want %d", *snap.AheadBy, got)
	}

	// Without a table the scoreboard simply omits the numbers.
	bare := engine.BuildSnapshot(m, nil)
	if bare.Par != nil || bare.AheadBy != nil {
		t.Fatalf("par must be omitted when no table is available")
	}
}

func TestBuildSnapshot_CopiesDoNotAlias(t *testing.T) {
	m := testMatch(2, false)
	tbl := table(t, 2)
	startInnings(t, m)
	playOvers(t, m, tbl, 2, 1)

	snap := engine.BuildSnapshot(m, nil)
	*snap.Target = 999
	if *m.Target != 13 {
		t.Fatalf("snapshot target must be a copy, match now chases %d", *m.Target)
	}

	startInnings(t, m)
	playOvers(t, m, tbl, 2, 0)
	final := engine.BuildSnapshot(m, nil)
	final.Result.Summary = "scribbled over"
	if m.Result.Summary == "scribbled over" {
		t.Fatalf("snapshot result must be a copy")
	}
}
