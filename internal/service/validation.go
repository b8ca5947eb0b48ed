package service

import (
	"fmt"
	"strings"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// validateCreateMatch aggregates every problem with the toss-time payload so
// the scorer can fix the whole form in one round trip.
func validateCreateMatch(in CreateMatchInput) []FieldError {
	var ferrs []FieldError

	if !in.Format.Valid() {
		ferrs = append(ferrs, FieldError{Field: "format", Message: "must be limited_overs, multi_day or custom"})
	}
	if in.Format == model.FormatLimitedOvers {
		if in.OversLimit < 1 || in.OversLimit > 50 {
			ferrs = append(ferrs, FieldError{Field: "overs_limit", Message: "must be between 1 and 50"})
		}
	}
	if in.Format == model.FormatMultiDay && in.DaysLimit < 1 {
		ferrs = append(ferrs, FieldError{Field: "days_limit", Message: "must be at least 1"})
	}
	if in.RainRuleEnabled && in.Format != model.FormatLimitedOvers {
		ferrs = append(ferrs, FieldError{Field: "rain_rule_enabled", Message: "only available for limited_overs matches"})
	}

	ferrs = append(ferrs, validateRoster("team_a", in.TeamA)...)
	ferrs = append(ferrs, validateRoster("team_b", in.TeamB)...)
	if in.TeamA.Name != "" && in.TeamA.Name == in.TeamB.Name {
		ferrs = append(ferrs, FieldError{Field: "team_b.name", Message: "must differ from team_a.name"})
	}
	if len(in.TeamA.Players) != len(in.TeamB.Players) {
		ferrs = append(ferrs, FieldError{Field: "team_b.players", Message: "both sides must field the same number of players"})
	}
	if dup := duplicatePlayerID(in.TeamA, in.TeamB); dup != 0 {
		ferrs = append(ferrs, FieldError{Field: "players", Message: fmt.Sprintf("player id %d appears more than once", dup)})
	}

	if in.TossWinner != in.TeamA.Name && in.TossWinner != in.TeamB.Name {
		ferrs = append(ferrs, FieldError{Field: "toss_winner", Message: "must be one of the two team names"})
	}
	if in.TossDecision != model.DecisionBat && in.TossDecision != model.DecisionBowl {
		ferrs = append(ferrs, FieldError{Field: "toss_decision", Message: "must be bat or bowl"})
	}
	return ferrs
}

func validateRoster(field string, t model.Team) []FieldError {
	var ferrs []FieldError
	if t.Name == "" {
		ferrs = append(ferrs, FieldError{Field: field + ".name", Message: "must not be empty"})
	} else if ln := len([]rune(t.Name)); ln < 2 || ln > 50 {
		ferrs = append(ferrs, FieldError{Field: field + ".name", Message: "length must be between 2 and 50"})
	}
	if n := len(t.Players); n < 2 || n > 11 {
		ferrs = append(ferrs, FieldError{Field: field + ".players", Message: "must have between 2 and 11 players"})
	}
	for i, p := range t.Players {
		if p.ID <= 0 {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("%s.players[%d].id", field, i), Message: "must be > 0"})
		}
		if strings.TrimSpace(p.Name) == "" {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("%s.players[%d].name", field, i), Message: "must not be empty"})
		}
	}
	return ferrs
}

// duplicatePlayerID returns the first player id seen twice across both
// rosters, or zero. Ids are global so the delivery log is unambiguous.
func duplicatePlayerID(a, b model.Team) int64 {
	seen := make(map[int64]bool, len(a.Players)+len(b.Players))
	for _, t := range []model.Team{a, b} {
		for _, p := range t.Players {
			if p.ID <= 0 {
				continue
			}
			if seen[p.ID] {
				return p.ID
			}
			seen[p.ID] = true
		}
	}
	return 0
}
