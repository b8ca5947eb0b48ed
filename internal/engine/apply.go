package engine

import (
	"math"
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// DeliveryCommand is one proposed ball. The three ids must echo the players
// the aggregate currently has at the crease; a mismatch means the caller is
// scoring against stale state.
type DeliveryCommand struct {
	StrikerID    int64 `json:"striker_id"`
	NonStrikerID int64 `json:"non_striker_id"`
	BowlerID     int64 `json:"bowler_id"`

	RunsOffBat int             `json:"runs_off_bat"`
	Extra      model.ExtraKind `json:"extra"`
	ExtraRuns  int             `json:"extra_runs"`

	Wicket      bool                `json:"wicket"`
	Dismissal   model.DismissalKind `json:"dismissal"`
	DismissedID int64               `json:"dismissed_id"`
	FielderID   int64               `json:"fielder_id"`
}

// ApplyDelivery validates the command against the current state, appends the
// delivery to the log and folds it into the running card. It does not decide
// whether the innings or match is over; run Resolve afterwards.
func ApplyDelivery(m *model.Match, cmd DeliveryCommand, now time.Time) ([]Event, error) {
	if err := requireLive(m); err != nil {
		return nil, err
	}
	if m.AwaitingNewBatter {
		return nil, conflictf("waiting for a new batter; register one before the next ball")
	}
	if m.AwaitingNewOver {
		return nil, conflictf("waiting for a new over; register the next bowler first")
	}
	if err := validateDelivery(m, cmd); err != nil {
		return nil, err
	}

	card := m.CurrentCard()
	if card == nil {
		return nil, invariantf("live match %d has no innings card", m.ID)
	}

	d := model.Delivery{
		Innings:      m.CurrentInnings,
		Over:         card.OversCompleted + 1,
		Ball:         card.BallsThisOver + 1,
		StrikerID:    m.StrikerID,
		NonStrikerID: m.NonStrikerID,
		BowlerID:     m.BowlerID,
		RunsOffBat:   cmd.RunsOffBat,
		Extra:        cmd.Extra,
		ExtraRuns:    cmd.ExtraRuns,
		Wicket:       cmd.Wicket,
		Dismissal:    cmd.Dismissal,
		DismissedID:  cmd.DismissedID,
		FielderID:    cmd.FielderID,
		At:           now,
	}
	m.Deliveries = append(m.Deliveries, d)

	log := inningsLog(m, m.CurrentInnings)
	batting, _ := m.TeamByName(card.BattingTeam)
	bowling, _ := m.TeamByName(card.BowlingTeam)
	overCompleted := applyToCard(card, batting, bowling, log, len(log)-1)

	events := []Event{event(EventDeliveryApplied, d.Innings)}

	if d.Wicket {
		m.AwaitingNewBatter = true
		if d.DismissedID == m.StrikerID {
			m.StrikerID = 0
		} else {
			m.NonStrikerID = 0
		}
		events = append(events, event(EventWicketFell, d.Innings))
	}

	// Strike rotates when the pair's run count is odd XOR the over just
	// ended; a wicket suppresses the parity half but not the over swap.
	parity := d.PairRuns()%2 == 1 && !d.Wicket
	if parity != overCompleted {
		m.StrikerID, m.NonStrikerID = m.NonStrikerID, m.StrikerID
	}

	if overCompleted {
		m.LastOverBowlerID = d.BowlerID
		m.AwaitingNewOver = true
		events = append(events, event(EventOverCompleted, d.Innings))
	}

	return events, nil
}

func requireLive(m *model.Match) error {
	switch m.Status {
	case model.StatusLive:
		return nil
	case model.StatusScheduled:
		return conflictf("match has not started; start the first innings")
	case model.StatusInningsBreak:
		return conflictf("between innings; start the next innings first")
	default:
		return conflictf("match is already %s", m.Status)
	}
}

func validateDelivery(m *model.Match, cmd DeliveryCommand) error {
	if !cmd.Extra.Valid() {
		return validationf("unknown extra kind %q", cmd.Extra)
	}
	if cmd.RunsOffBat < 0 || cmd.RunsOffBat > 6 {
		return validationf("runs off bat must be 0..6, got %d", cmd.RunsOffBat)
	}
	switch cmd.Extra {
	case model.ExtraNone:
		if cmd.ExtraRuns != 0 {
			return validationf("extra runs require an extra kind")
		}
	case model.ExtraWide:
		if cmd.RunsOffBat != 0 {
			return validationf("a wide cannot carry runs off the bat")
		}
		if cmd.ExtraRuns < 1 {
			return validationf("a wide is worth at least one run")
		}
	case model.ExtraNoBall:
		if cmd.ExtraRuns < 1 {
			return validationf("a no-ball is worth at least one run")
		}
	case model.ExtraBye, model.ExtraLegBye:
		if cmd.RunsOffBat != 0 {
			return validationf("byes cannot carry runs off the bat")
		}
		if cmd.ExtraRuns < 1 {
			return validationf("byes require at least one run")
		}
	case model.ExtraPenalty:
		if cmd.RunsOffBat != 0 || cmd.ExtraRuns != 5 {
			return validationf("a penalty awards exactly five extras")
		}
		if cmd.Wicket {
			return validationf("a penalty award cannot take a wicket")
		}
	}

	if cmd.StrikerID != m.StrikerID {
		return validationf("striker %d is not on strike", cmd.StrikerID)
	}
	if cmd.NonStrikerID != m.NonStrikerID {
		return validationf("non-striker %d is not at the crease", cmd.NonStrikerID)
	}
	if cmd.BowlerID != m.BowlerID {
		return validationf("bowler %d is not bowling this over", cmd.BowlerID)
	}

	batting, ok := m.TeamByName(m.BattingTeamName(m.CurrentInnings))
	if !ok {
		return invariantf("batting side unknown for innings %d", m.CurrentInnings)
	}
	bowling, _ := m.TeamByName(m.BowlingTeamName(m.CurrentInnings))
	if !batting.HasPlayer(cmd.StrikerID) || !batting.HasPlayer(cmd.NonStrikerID) {
		return validationf("batters must belong to %s", batting.Name)
	}
	if !bowling.HasPlayer(cmd.BowlerID) {
		return validationf("bowler %d does not belong to %s", cmd.BowlerID, bowling.Name)
	}

	return validateWicket(m, cmd, bowling)
}

func validateWicket(m *model.Match, cmd DeliveryCommand, bowling model.Team) error {
	if !cmd.Wicket {
		if cmd.Dismissal != "" || cmd.DismissedID != 0 || cmd.FielderID != 0 {
			return validationf("dismissal details provided without a wicket")
		}
		return nil
	}
	if !cmd.Dismissal.Valid() {
		return validationf("unknown dismissal kind %q", cmd.Dismissal)
	}
	if cmd.DismissedID == 0 {
		return validationf("a wicket needs the dismissed batter")
	}

	switch cmd.Dismissal {
	case model.DismissalRunOut, model.DismissalOther:
		if cmd.DismissedID != m.StrikerID && cmd.DismissedID != m.NonStrikerID {
			return validationf("dismissed batter %d is not at the crease", cmd.DismissedID)
		}
	default:
		if cmd.DismissedID != m.StrikerID {
			return validationf("%s can only dismiss the striker", cmd.Dismissal)
		}
	}

	switch cmd.Extra {
	case model.ExtraWide:
		switch cmd.Dismissal {
		case model.DismissalStumped, model.DismissalRunOut, model.DismissalOther:
		default:
			return validationf("%s is impossible off a wide", cmd.Dismissal)
		}
	case model.ExtraNoBall:
		switch cmd.Dismissal {
		case model.DismissalRunOut, model.DismissalOther:
		default:
			return validationf("%s is impossible off a no-ball", cmd.Dismissal)
		}
	}

	switch cmd.Dismissal {
	case model.DismissalCaught, model.DismissalStumped:
		if cmd.FielderID == 0 {
			return validationf("%s needs a fielder", cmd.Dismissal)
		}
	}
	if cmd.FielderID != 0 && !bowling.HasPlayer(cmd.FielderID) {
		return validationf("fielder %d does not belong to %s", cmd.FielderID, bowling.Name)
	}
	return nil
}

// applyToCard folds log[idx] into the running card. It is the single place
// scoring arithmetic lives: the incremental path and the full rebuild both
// call it, which is what makes the two provably agree. Returns whether the
// ball completed an over.
func applyToCard(card *model.InningsCard, batting, bowling model.Team, log []model.Delivery, idx int) bool {
	d := log[idx]

	// Seed both crease lines before taking a pointer into the slice: the
	// second append could reallocate the backing array under the first.
	card.BattingFor(d.StrikerID, batting.PlayerName(d.StrikerID))
	card.BattingFor(d.NonStrikerID, batting.PlayerName(d.NonStrikerID))
	striker := card.BattingFor(d.StrikerID, "")
	bowler := card.BowlingFor(d.BowlerID, bowling.PlayerName(d.BowlerID))

	card.Runs += d.TotalRuns()

	switch d.Extra {
	case model.ExtraWide:
		card.Extras.Wides += d.ExtraRuns
	case model.ExtraNoBall:
		card.Extras.NoBalls += d.ExtraRuns
	case model.ExtraBye:
		card.Extras.Byes += d.ExtraRuns
	case model.ExtraLegBye:
		card.Extras.LegByes += d.ExtraRuns
	case model.ExtraPenalty:
		card.Extras.Penalties += d.ExtraRuns
	}
	card.Extras.Total += d.ExtraRuns

	if d.Extra != model.ExtraWide {
		striker.BallsFaced++
	}
	if d.Extra == model.ExtraNone || d.Extra == model.ExtraNoBall {
		striker.Runs += d.RunsOffBat
		switch d.RunsOffBat {
		case 4:
			striker.Fours++
		case 6:
			striker.Sixes++
		}
	}

	// The bowler is charged for bat runs plus wides and no-balls; byes,
	// leg-byes and penalties go against the fielding side, not the analysis.
	if d.Extra == model.ExtraNone || d.Extra == model.ExtraNoBall {
		bowler.RunsConceded += d.RunsOffBat
	}
	if d.Extra == model.ExtraWide || d.Extra == model.ExtraNoBall {
		bowler.RunsConceded += d.ExtraRuns
	}

	if d.Wicket {
		card.Wickets++
		out := card.BattingFor(d.DismissedID, batting.PlayerName(d.DismissedID))
		out.Out = true
		out.Dismissal = d.Dismissal
		out.FielderID = d.FielderID
		if d.Dismissal.CreditsBowler() {
			out.BowlerID = d.BowlerID
			bowler.Wickets++
		}
		card.FallOfWickets = append(card.FallOfWickets, model.FallOfWicket{
			Wicket:    card.Wickets,
			Runs:      card.Runs,
			Over:      d.Over,
			Ball:      d.Ball,
			BatterID:  d.DismissedID,
			Dismissal: d.Dismissal,
		})
	}

	overCompleted := false
	if d.Extra.Legal() {
		bowler.BallsBowled++
		card.BallsThisOver++
		if card.BallsThisOver == 6 {
			card.OversCompleted++
			card.BallsThisOver = 0
			overCompleted = true
			if overRunsAgainstBowler(log, d.Innings, d.Over) == 0 {
				bowler.Maidens++
			}
		}
	}

	striker.StrikeRate = rate(striker.Runs, striker.BallsFaced, 100)
	bowler.Economy = rate(bowler.RunsConceded, bowler.BallsBowled, 6)
	return overCompleted
}

// rate renders runs per perBalls deliveries to the conventional two decimals.
func rate(runs, balls, perBalls int) float64 {
	if balls == 0 {
		return 0
	}
	return math.Round(float64(runs*perBalls*100)/float64(balls)) / 100
}

// overRunsAgainstBowler totals the runs charged to the bowler across one over.
func overRunsAgainstBowler(log []model.Delivery, innings, over int) int {
	total := 0
	for _, d := range log {
		if d.Innings != innings || d.Over != over {
			continue
		}
		switch d.Extra {
		case model.ExtraNone:
			total += d.RunsOffBat
		case model.ExtraNoBall:
			total += d.RunsOffBat + d.ExtraRuns
		case model.ExtraWide:
			total += d.ExtraRuns
		}
	}
	return total
}

func inningsLog(m *model.Match, innings int) []model.Delivery {
	out := make([]model.Delivery, 0, len(m.Deliveries))
	for _, d := range m.Deliveries {
		if d.Innings == innings {
			out = append(out, d)
		}
	}
	return out
}
