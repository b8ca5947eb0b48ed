// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior; the scoring
// rules that mutate these shapes live in internal/engine.
package model

import "time"

// MatchFormat distinguishes the supported match formats.
type MatchFormat string

const (
	FormatLimitedOvers MatchFormat = "limited_overs"
	FormatMultiDay     MatchFormat = "multi_day"
	FormatCustom       MatchFormat = "custom"
)

// Valid reports whether the format is one of the known variants.
func (f MatchFormat) Valid() bool {
	switch f {
	case FormatLimitedOvers, FormatMultiDay, FormatCustom:
		return true
	}
	return false
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusScheduled    MatchStatus = "scheduled"
	StatusLive         MatchStatus = "live"
	StatusInningsBreak MatchStatus = "innings_break"
	StatusCompleted    MatchStatus = "completed"
	StatusAbandoned    MatchStatus = "abandoned"
)

// Finished reports whether the match can no longer be scored.
func (s MatchStatus) Finished() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// TossDecision is what the toss winner elected to do.
type TossDecision string

const (
	DecisionBat  TossDecision = "bat"
	DecisionBowl TossDecision = "bowl"
)

// Player is a rostered participant. IDs are supplied by the caller at match
// creation and must be unique across both rosters.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Team is a named, ordered roster. Batting order follows roster order for
// display purposes only; the scorer decides who actually comes in.
type Team struct {
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// HasPlayer reports whether the roster contains the given player id.
func (t Team) HasPlayer(id int64) bool {
	for _, p := range t.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// PlayerName resolves a roster id to a display name, empty when unknown.
func (t Team) PlayerName(id int64) string {
	for _, p := range t.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

// FirstInningsSummary is frozen at the first innings break. The resolver and
// the rain-rule engine read the chase target from it, never from live totals.
type FirstInningsSummary struct {
	Runs           int `json:"runs"`
	Wickets        int `json:"wickets"`
	OversCompleted int `json:"overs_completed"`
	BallsThisOver  int `json:"balls_this_over"`
}

// Match is the aggregate root. The delivery and interruption logs are the
// source of truth: every derived field (cards, totals, extras, fall of
// wickets) must be reproducible from them alone.
type Match struct {
	ID      int64 `json:"id"`
	Version int64 `json:"version"`

	Format          MatchFormat `json:"format"`
	OversLimit      int         `json:"overs_limit,omitempty"`
	DaysLimit       int         `json:"days_limit,omitempty"`
	OversPerDay     int         `json:"overs_per_day,omitempty"`
	RainRuleEnabled bool        `json:"rain_rule_enabled"`

	TossWinner   string       `json:"toss_winner"`
	TossDecision TossDecision `json:"toss_decision"`

	TeamA Team `json:"team_a"`
	TeamB Team `json:"team_b"`

	Status         MatchStatus `json:"status"`
	CurrentInnings int         `json:"current_innings"`

	StrikerID        int64 `json:"striker_id,omitempty"`
	NonStrikerID     int64 `json:"non_striker_id,omitempty"`
	BowlerID         int64 `json:"bowler_id,omitempty"`
	LastOverBowlerID int64 `json:"last_over_bowler_id,omitempty"`

	// MidOverChangeUsed is the one-time allowance that lets the same bowler
	// continue after a mid-over replacement. Reset at each innings start.
	MidOverChangeUsed bool `json:"mid_over_change_used"`

	AwaitingNewOver   bool `json:"awaiting_new_over"`
	AwaitingNewBatter bool `json:"awaiting_new_batter"`

	// Shortened flips to true on the first overs reduction and never back;
	// the resolver uses it to pick the rain-rule path in a chase.
	Shortened bool `json:"shortened"`

	Deliveries    []Delivery     `json:"deliveries"`
	Innings       []InningsCard  `json:"innings"`
	Interruptions []Interruption `json:"interruptions"`

	FirstInnings *FirstInningsSummary `json:"first_innings,omitempty"`
	Target       *int                 `json:"target,omitempty"`
	Result       *MatchResult         `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayersPerSide is the roster size; wickets in an innings top out one below it.
func (m *Match) PlayersPerSide() int {
	return len(m.TeamA.Players)
}

// BattingFirst returns the team batting in the first innings per the toss.
func (m *Match) BattingFirst() string {
	if m.TossDecision == DecisionBat {
		return m.TossWinner
	}
	if m.TossWinner == m.TeamA.Name {
		return m.TeamB.Name
	}
	return m.TeamA.Name
}

// BattingTeamName returns the side batting in the given innings (1 or 2).
func (m *Match) BattingTeamName(innings int) string {
	first := m.BattingFirst()
	if innings == 1 {
		return first
	}
	if first == m.TeamA.Name {
		return m.TeamB.Name
	}
	return m.TeamA.Name
}

// BowlingTeamName returns the fielding side for the given innings.
func (m *Match) BowlingTeamName(innings int) string {
	batting := m.BattingTeamName(innings)
	if batting == m.TeamA.Name {
		return m.TeamB.Name
	}
	return m.TeamA.Name
}

// TeamByName finds a roster by its name; ok is false when neither side matches.
func (m *Match) TeamByName(name string) (Team, bool) {
	switch name {
	case m.TeamA.Name:
		return m.TeamA, true
	case m.TeamB.Name:
		return m.TeamB, true
	}
	return Team{}, false
}

// CurrentCard returns the card of the innings in progress, nil before the
// first innings starts.
func (m *Match) CurrentCard() *InningsCard {
	if m.CurrentInnings < 1 || m.CurrentInnings > len(m.Innings) {
		return nil
	}
	return &m.Innings[m.CurrentInnings-1]
}

// Card returns the card for a specific innings number, nil when not started.
func (m *Match) Card(innings int) *InningsCard {
	if innings < 1 || innings > len(m.Innings) {
		return nil
	}
	return &m.Innings[innings-1]
}

// EffectiveOversLimit is the overs ceiling for an innings after any
// reductions: the scheduled limit overridden by the latest overs-reduction
// entry recorded against that innings. Each innings starts from the
// scheduled limit; a shortened first innings does not implicitly shorten
// the second, that takes its own reduction entry.
func (m *Match) EffectiveOversLimit(innings int) int {
	limit := m.OversLimit
	for _, iv := range m.Interruptions {
		if iv.Kind == InterruptionOversReduction && iv.Innings == innings && iv.NewOversLimit > 0 {
			limit = iv.NewOversLimit
		}
	}
	return limit
}

// OpenInterruption returns the active (not yet stopped) interruption of the
// given kind, if any. At most one per kind may be open at a time.
func (m *Match) OpenInterruption(kind InterruptionKind) *Interruption {
	for i := range m.Interruptions {
		iv := &m.Interruptions[i]
		if iv.Kind == kind && iv.EndedAt == nil {
			return iv
		}
	}
	return nil
}

// MatchSummary is the listing projection; full aggregates stay out of list
// responses on purpose.
type MatchSummary struct {
	ID         int64       `json:"id"`
	TeamA      string      `json:"team_a"`
	TeamB      string      `json:"team_b"`
	Format     MatchFormat `json:"format"`
	OversLimit int         `json:"overs_limit,omitempty"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Summarize projects the aggregate into its listing row.
func (m *Match) Summarize() MatchSummary {
	return MatchSummary{
		ID:         m.ID,
		TeamA:      m.TeamA.Name,
		TeamB:      m.TeamB.Name,
		Format:     m.Format,
		OversLimit: m.OversLimit,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
