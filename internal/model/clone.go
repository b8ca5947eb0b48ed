package model

// Clone deep-copies the aggregate. Mutations always run on a clone so a
// rejected command or a failed persist leaves the loaded state untouched.
func (m *Match) Clone() *Match {
	if m == nil {
		return nil
	}
	out := *m

	out.TeamA.Players = append([]Player(nil), m.TeamA.Players...)
	out.TeamB.Players = append([]Player(nil), m.TeamB.Players...)
	out.Deliveries = append([]Delivery(nil), m.Deliveries...)

	out.Innings = make([]InningsCard, len(m.Innings))
	for i, card := range m.Innings {
		cc := card
		cc.Batting = append([]BattingLine(nil), card.Batting...)
		cc.Bowling = append([]BowlingLine(nil), card.Bowling...)
		cc.FallOfWickets = append([]FallOfWicket(nil), card.FallOfWickets...)
		out.Innings[i] = cc
	}

	out.Interruptions = make([]Interruption, len(m.Interruptions))
	for i, iv := range m.Interruptions {
		ic := iv
		if iv.EndedAt != nil {
			t := *iv.EndedAt
			ic.EndedAt = &t
		}
		out.Interruptions[i] = ic
	}

	if m.FirstInnings != nil {
		fi := *m.FirstInnings
		out.FirstInnings = &fi
	}
	if m.Target != nil {
		t := *m.Target
		out.Target = &t
	}
	if m.Result != nil {
		r := *m.Result
		out.Result = &r
	}
	return &out
}
