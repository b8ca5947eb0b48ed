// Package dls implements the rain-rule resource model: the resource table
// and the target/par arithmetic built on top of it.
//
// The table is the Standard Edition two-factor exponential model
// Z(u,w) = F(w) * (1 - exp(-b*u/F(w))), with the per-wicket scale factors
// F(w) fitted at construction so the 50-overs-remaining column reproduces the
// published standard table. This is a documented policy choice: the table
// sits behind the Table interface and a different edition can be swapped in
// without touching the engine.
package dls

import (
	"errors"
	"fmt"
	"math"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

var (
	// ErrNoTable means the requested format has no resource table.
	ErrNoTable = errors.New("no resource table for format")
	// ErrBadResources means resource math was asked about an impossible
	// state; callers must treat it as corrupted input, never as zero.
	ErrBadResources = errors.New("resource input out of domain")
)

// Table yields the percentage of batting resources remaining for a
// (overs-remaining, wickets-lost) pair. Implementations are immutable and
// safe for concurrent use.
type Table interface {
	ResourcePercentage(oversRemaining float64, wicketsLost int) (float64, error)
	MaxOvers() int
}

// Published 50-overs-remaining column of the standard edition table,
// by wickets lost. The fitted model reproduces these exactly.
var standardAnchors = [10]float64{100.0, 93.4, 85.1, 74.9, 62.7, 49.0, 34.7, 22.0, 11.9, 4.7}

// Per-over decay constant of the standard edition curve.
const decayRate = 0.035

const anchorOvers = 50.0

// StandardTable is the fitted standard-edition table rescaled so that a
// fresh innings of the format's full length is exactly 100%.
type StandardTable struct {
	maxOvers int
	scale    [10]float64 // F(w)
	baseline float64     // Z(maxOvers, 0), the 100% mark
}

// NewStandardTable builds the table for a limited-overs format of up to 50
// overs per innings. Shorter formats share the curve shape and renormalize.
func NewStandardTable(maxOvers int) (*StandardTable, error) {
	if maxOvers < 1 || maxOvers > 50 {
		return nil, fmt.Errorf("%w: %d overs per innings", ErrNoTable, maxOvers)
	}
	t := &StandardTable{maxOvers: maxOvers}
	t.scale[0] = 1.0
	full := zCurve(anchorOvers, 1.0)
	for w := 1; w < 10; w++ {
		t.scale[w] = fitScale(standardAnchors[w] / standardAnchors[0] * full)
	}
	t.baseline = zCurve(float64(maxOvers), 1.0)
	return t, nil
}

// MaxOvers is the innings length this table was normalized for.
func (t *StandardTable) MaxOvers() int { return t.maxOvers }

// ResourcePercentage implements Table. Overs remaining may be fractional
// (remaining balls divided by six); wickets lost must be 0..9.
func (t *StandardTable) ResourcePercentage(oversRemaining float64, wicketsLost int) (float64, error) {
	if wicketsLost < 0 || wicketsLost > 9 {
		return 0, fmt.Errorf("%w: wickets lost %d", ErrBadResources, wicketsLost)
	}
	if oversRemaining < 0 || math.IsNaN(oversRemaining) {
		return 0, fmt.Errorf("%w: overs remaining %.2f", ErrBadResources, oversRemaining)
	}
	if oversRemaining > float64(t.maxOvers)+1e-9 {
		return 0, fmt.Errorf("%w: overs remaining %.2f exceeds innings length %d", ErrBadResources, oversRemaining, t.maxOvers)
	}
	if oversRemaining == 0 {
		return 0, nil
	}
	return zCurve(oversRemaining, t.scale[wicketsLost]) / t.baseline * 100, nil
}

// zCurve is the unnormalized resource function for scale factor f.
func zCurve(overs, f float64) float64 {
	return f * (1 - math.Exp(-decayRate*overs/f))
}

// fitScale inverts zCurve at the anchor point by bisection. The curve is
// strictly increasing in f, so the root is unique on (0, 1].
func fitScale(target float64) float64 {
	lo, hi := 1e-9, 1.0
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if zCurve(anchorOvers, mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// TableForFormat selects the table for a match format, failing for formats
// the rain rule does not cover.
func TableForFormat(format model.MatchFormat, oversLimit int) (Table, error) {
	if format != model.FormatLimitedOvers {
		return nil, fmt.Errorf("%w: %s", ErrNoTable, format)
	}
	return NewStandardTable(oversLimit)
}
