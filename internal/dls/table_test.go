package dls_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/dls"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// The published 50-overs-remaining column the fitted curve must reproduce.
var anchors = []float64{100.0, 93.4, 85.1, 74.9, 62.7, 49.0, 34.7, 22.0, 11.9, 4.7}

func TestStandardTable_FiftyOverAnchors(t *testing.T) {
	tbl, err := dls.NewStandardTable(50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for w, want := range anchors {
		got, err := tbl.ResourcePercentage(50, w)
		if err != nil {
			t.Fatalf("P(50,%d): unexpected error: %v", w, err)
		}
		if math.Abs(got-want) > 0.05 {
			t.Fatalf("P(50,%d) = %.3f, want %.1f", w, got, want)
		}
	}
}

func TestStandardTable_FullInningsIsHundred(t *testing.T) {
	for _, overs := range []int{50, 20, 10, 1} {
		tbl, err := dls.NewStandardTable(overs)
		if err != nil {
			t.Fatalf("NewStandardTable(%d): %v", overs, err)
		}
		got, err := tbl.ResourcePercentage(float64(overs), 0)
		if err != nil {
			t.Fatalf("P(%d,0): %v", overs, err)
		}
		if math.Abs(got-100) > 1e-9 {
			t.Fatalf("a fresh %d-over innings should be 100%%, got %.6f", overs, got)
		}
		if tbl.MaxOvers() != overs {
			t.Fatalf("MaxOvers() = %d, want %d", tbl.MaxOvers(), overs)
		}
	}
}

func TestStandardTable_MonotonicInWickets(t *testing.T) {
	tbl, err := dls.NewStandardTable(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prev := math.Inf(1)
	for w := 0; w <= 9; w++ {
		got, err := tbl.ResourcePercentage(10, w)
		if err != nil {
			t.Fatalf("P(10,%d): %v", w, err)
		}
		if got >= prev {
			t.Fatalf("losing a wicket must cost resources: P(10,%d) = %.3f >= %.3f", w, got, prev)
		}
		prev = got
	}
}

func TestStandardTable_MonotonicInOvers(t *testing.T) {
	tbl, err := dls.NewStandardTable(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prev := -1.0
	for u := 1; u <= 20; u++ {
		got, err := tbl.ResourcePercentage(float64(u), 3)
		if err != nil {
			t.Fatalf("P(%d,3): %v", u, err)
		}
		if got <= prev {
			t.Fatalf("more overs left must mean more resources: P(%d,3) = %.3f <= %.3f", u, got, prev)
		}
		prev = got
	}
}

func TestStandardTable_NoOversNoResources(t *testing.T) {
	tbl, err := dls.NewStandardTable(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range []int{0, 5, 9} {
		got, err := tbl.ResourcePercentage(0, w)
		if err != nil {
			t.Fatalf("P(0,%d): %v", w, err)
		}
		if got != 0 {
			t.Fatalf("P(0,%d) = %.3f, want 0", w, got)
		}
	}
}

func TestStandardTable_DomainErrors(t *testing.T) {
	tbl, err := dls.NewStandardTable(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		name    string
		overs   float64
		wickets int
	}{
		{"negative overs", -1, 0},
		{"overs beyond innings", 21, 0},
		{"ten wickets", 10, 10},
		{"negative wickets", 10, -1},
		{"NaN overs", math.NaN(), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tbl.ResourcePercentage(tc.overs, tc.wickets); !errors.Is(err, dls.ErrBadResources) {
				t.Fatalf("expected ErrBadResources, got %v", err)
			}
		})
	}
}

func TestNewStandardTable_RejectsImpossibleLengths(t *testing.T) {
	for _, overs := range []int{0, -3, 51} {
		if _, err := dls.NewStandardTable(overs); !errors.Is(err, dls.ErrNoTable) {
			t.Fatalf("NewStandardTable(%d): expected ErrNoTable, got %v", overs, err)
		}
	}
}

func TestTableForFormat(t *testing.T) {
	if _, err := dls.TableForFormat(model.FormatMultiDay, 0); !errors.Is(err, dls.ErrNoTable) {
		t.Fatalf("multi-day matches have no resource table, got %v", err)
	}
	tbl, err := dls.TableForFormat(model.FormatLimitedOvers, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.MaxOvers() != 20 {
		t.Fatalf("MaxOvers() = %d, want 20", tbl.MaxOvers())
	}
}
