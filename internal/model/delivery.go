package model

import "time"

// ExtraKind tags runs not credited to the striker's bat.
type ExtraKind string

const (
	ExtraNone    ExtraKind = "none"
	ExtraWide    ExtraKind = "wide"
	ExtraNoBall  ExtraKind = "no_ball"
	ExtraBye     ExtraKind = "bye"
	ExtraLegBye  ExtraKind = "leg_bye"
	ExtraPenalty ExtraKind = "penalty"
)

// Valid reports whether the extra kind is a known variant.
func (e ExtraKind) Valid() bool {
	switch e {
	case ExtraNone, ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye, ExtraPenalty:
		return true
	}
	return false
}

// Legal reports whether a delivery with this extra counts toward the over.
// Wides and no-balls must be re-bowled; everything else is a legal ball.
func (e ExtraKind) Legal() bool {
	return e != ExtraWide && e != ExtraNoBall
}

// DismissalKind is the manner a batter is out.
type DismissalKind string

const (
	DismissalBowled  DismissalKind = "bowled"
	DismissalCaught  DismissalKind = "caught"
	DismissalLBW     DismissalKind = "lbw"
	DismissalRunOut  DismissalKind = "run_out"
	DismissalStumped DismissalKind = "stumped"
	DismissalOther   DismissalKind = "other"
)

// Valid reports whether the dismissal kind is a known variant.
func (d DismissalKind) Valid() bool {
	switch d {
	case DismissalBowled, DismissalCaught, DismissalLBW, DismissalRunOut, DismissalStumped, DismissalOther:
		return true
	}
	return false
}

// CreditsBowler reports whether the wicket counts in the bowler's analysis.
// Run-outs and the catch-all "other" do not.
func (d DismissalKind) CreditsBowler() bool {
	switch d {
	case DismissalBowled, DismissalCaught, DismissalLBW, DismissalStumped:
		return true
	}
	return false
}

// Delivery is one ball and its full outcome. Entries are immutable once
// appended; Over and Ball are assigned by the engine, not the caller.
type Delivery struct {
	Innings int `json:"innings"`
	Over    int `json:"over"` // 1-based over in progress
	Ball    int `json:"ball"` // 1-based legal-ball slot within the over

	StrikerID    int64 `json:"striker_id"`
	NonStrikerID int64 `json:"non_striker_id"`
	BowlerID     int64 `json:"bowler_id"`

	RunsOffBat int       `json:"runs_off_bat"`
	Extra      ExtraKind `json:"extra"`
	ExtraRuns  int       `json:"extra_runs,omitempty"`

	Wicket      bool          `json:"wicket,omitempty"`
	Dismissal   DismissalKind `json:"dismissal,omitempty"`
	DismissedID int64         `json:"dismissed_id,omitempty"`
	FielderID   int64         `json:"fielder_id,omitempty"`

	At time.Time `json:"at"`
}

// TotalRuns is everything the batting side scored off this ball.
func (d Delivery) TotalRuns() int {
	return d.RunsOffBat + d.ExtraRuns
}

// PairRuns is the runs physically taken (or struck) by the batting pair,
// the count that drives strike rotation. The mandatory one-run penalty on a
// wide or no-ball is awarded, not run, so it is excluded; byes and leg-byes
// are run by the pair even though the striker is not credited.
func (d Delivery) PairRuns() int {
	switch d.Extra {
	case ExtraNone:
		return d.RunsOffBat
	case ExtraBye, ExtraLegBye:
		return d.ExtraRuns
	case ExtraWide:
		if d.ExtraRuns > 1 {
			return d.ExtraRuns - 1
		}
		return 0
	case ExtraNoBall:
		extra := 0
		if d.ExtraRuns > 1 {
			extra = d.ExtraRuns - 1
		}
		return d.RunsOffBat + extra
	default: // penalty runs are awarded to the total only
		return 0
	}
}
