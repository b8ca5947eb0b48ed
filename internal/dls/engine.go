package dls

import (
	"fmt"
	"math"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// TotalResources walks an innings chronologically and returns the percentage
// of batting resources available to that side, given the overs reductions
// recorded so far. The walk partitions the innings at every overs-reduction
// boundary and charges each one P(before) - P(after) under the then-current
// limit and the wickets down at that point. Stoppages that did not change the
// overs limit cost nothing and telescope away, so only reduction entries are
// boundaries. Once the innings has run its course the side has consumed
// everything available, so this is also its final resources-used figure.
func TotalResources(t Table, deliveries []model.Delivery, interruptions []model.Interruption, innings int, scheduledOvers int) (float64, error) {
	base, err := t.ResourcePercentage(float64(scheduledOvers), 0)
	if err != nil {
		return 0, err
	}
	lost, _, err := reductionLosses(t, deliveries, interruptions, innings, scheduledOvers)
	if err != nil {
		return 0, err
	}
	return clampPct(base - lost), nil
}

// ConsumedResources returns the percentage of resources the side has used up
// to the current end of its delivery log: total available minus whatever
// remains at the crease right now. allOutWickets is roster size minus one;
// at that many wickets nothing remains regardless of overs left.
func ConsumedResources(t Table, deliveries []model.Delivery, interruptions []model.Interruption, innings, scheduledOvers, allOutWickets int) (float64, error) {
	total, err := TotalResources(t, deliveries, interruptions, innings, scheduledOvers)
	if err != nil {
		return 0, err
	}
	_, limit, err := reductionLosses(t, deliveries, interruptions, innings, scheduledOvers)
	if err != nil {
		return 0, err
	}

	balls, wickets := inningsProgress(deliveries, innings, len(deliveries))
	var remaining float64
	if wickets < allOutWickets {
		overs := oversLeft(limit, balls)
		if overs > 0 {
			remaining, err = t.ResourcePercentage(overs, capWickets(wickets))
			if err != nil {
				return 0, err
			}
		}
	}
	return clampPct(total - remaining), nil
}

// RevisedTarget computes the chase target from the first-innings score and
// the two sides' resources. Rounding is a ceiling, toward the chasing side's
// disadvantage, and the extra run to win is added afterwards. A non-positive
// first-innings resource figure is corrupted input, never a valid scenario.
func RevisedTarget(firstInningsRuns int, resTeam1, resTeam2 float64) (int, error) {
	if err := checkResources(resTeam1, resTeam2); err != nil {
		return 0, err
	}
	if resTeam2 >= resTeam1 {
		return firstInningsRuns + 1, nil
	}
	return int(math.Ceil(float64(firstInningsRuns)*resTeam2/resTeam1)) + 1, nil
}

// ParScore is the score the chasing side should have reached by now to be
// level, given the resources it has consumed so far. Floor rounding: being
// at par is not being ahead.
func ParScore(firstInningsRuns int, resTeam1, resTeam2Used float64) (int, error) {
	if err := checkResources(resTeam1, resTeam2Used); err != nil {
		return 0, err
	}
	return int(math.Floor(float64(firstInningsRuns) * resTeam2Used / resTeam1)), nil
}

func checkResources(r1, r2 float64) error {
	if r1 <= 0 || math.IsNaN(r1) {
		return fmt.Errorf("%w: first-innings resources %.2f", ErrBadResources, r1)
	}
	if r2 < 0 || math.IsNaN(r2) {
		return fmt.Errorf("%w: second-innings resources %.2f", ErrBadResources, r2)
	}
	return nil
}

// reductionLosses sums the resource cost of every overs reduction recorded
// against the innings and returns the overs limit left in force afterwards.
func reductionLosses(t Table, deliveries []model.Delivery, interruptions []model.Interruption, innings, scheduledOvers int) (float64, int, error) {
	limit := scheduledOvers
	var lost float64
	for _, iv := range interruptions {
		if iv.Kind != model.InterruptionOversReduction || iv.Innings != innings || iv.NewOversLimit <= 0 {
			continue
		}
		balls, wickets := inningsProgress(deliveries, innings, iv.AtDeliveryIndex)
		before, err := t.ResourcePercentage(oversLeft(limit, balls), capWickets(wickets))
		if err != nil {
			return 0, 0, err
		}
		after, err := t.ResourcePercentage(oversLeft(iv.NewOversLimit, balls), capWickets(wickets))
		if err != nil {
			return 0, 0, err
		}
		lost += before - after
		limit = iv.NewOversLimit
	}
	return lost, limit, nil
}

// inningsProgress counts legal balls and wickets for one innings across a
// prefix of the match-wide delivery log.
func inningsProgress(deliveries []model.Delivery, innings, upto int) (balls, wickets int) {
	if upto > len(deliveries) {
		upto = len(deliveries)
	}
	for _, d := range deliveries[:upto] {
		if d.Innings != innings {
			continue
		}
		if d.Extra.Legal() {
			balls++
		}
		if d.Wicket {
			wickets++
		}
	}
	return balls, wickets
}

func oversLeft(limitOvers, ballsBowled int) float64 {
	left := float64(limitOvers*6-ballsBowled) / 6
	if left < 0 {
		return 0
	}
	return left
}

// capWickets clamps to the table's 0..9 axis; beyond nine down the caller is
// all out and never consults the table.
func capWickets(w int) int {
	if w > 9 {
		return 9
	}
	return w
}

func clampPct(v float64) float64 {
	if v < 0 && v > -1e-9 {
		return 0
	}
	return v
}
