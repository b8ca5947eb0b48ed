package model

// BattingLine is one batter's row on the card, in order of appearance.
type BattingLine struct {
	PlayerID   int64   `json:"player_id"`
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	BallsFaced int     `json:"balls_faced"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"` // runs per hundred balls, two decimals

	Out       bool          `json:"out"`
	Dismissal DismissalKind `json:"dismissal,omitempty"`
	BowlerID  int64         `json:"bowler_id,omitempty"`
	FielderID int64         `json:"fielder_id,omitempty"`
}

// BowlingLine is one bowler's analysis, in order of first over bowled.
type BowlingLine struct {
	PlayerID     int64   `json:"player_id"`
	Name         string  `json:"name"`
	BallsBowled  int     `json:"balls_bowled"` // legal balls only
	Maidens      int     `json:"maidens"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"` // runs per over, two decimals
}

// Extras is the breakdown of runs not off the bat.
type Extras struct {
	Wides     int `json:"wides"`
	NoBalls   int `json:"no_balls"`
	Byes      int `json:"byes"`
	LegByes   int `json:"leg_byes"`
	Penalties int `json:"penalties"`
	Total     int `json:"total"`
}

// FallOfWicket records the score and position at which a wicket fell.
type FallOfWicket struct {
	Wicket    int           `json:"wicket"` // 1-based ordinal
	Runs      int           `json:"runs"`
	Over      int           `json:"over"`
	Ball      int           `json:"ball"`
	BatterID  int64         `json:"batter_id"`
	Dismissal DismissalKind `json:"dismissal"`
}

// InningsCard carries an innings' running totals alongside its projections.
// All of it is derivable from the delivery log; the incremental copies exist
// so reads stay O(1) and are cross-checked against a rebuild in tests.
type InningsCard struct {
	Number      int    `json:"number"`
	BattingTeam string `json:"batting_team"`
	BowlingTeam string `json:"bowling_team"`

	// OversLimitAtStart is the ceiling in force when the innings began;
	// later reductions live in the interruption log.
	OversLimitAtStart int `json:"overs_limit_at_start,omitempty"`

	Runs           int `json:"runs"`
	Wickets        int `json:"wickets"`
	OversCompleted int `json:"overs_completed"`
	BallsThisOver  int `json:"balls_this_over"`

	Batting       []BattingLine  `json:"batting"`
	Bowling       []BowlingLine  `json:"bowling"`
	Extras        Extras         `json:"extras"`
	FallOfWickets []FallOfWicket `json:"fall_of_wickets"`

	Closed bool `json:"closed"`
}

// LegalBalls is the total number of legal deliveries bowled in the innings.
func (c *InningsCard) LegalBalls() int {
	return c.OversCompleted*6 + c.BallsThisOver
}

// BattingFor returns the batting line for a player, creating it on first
// appearance so order-of-appearance is preserved.
func (c *InningsCard) BattingFor(id int64, name string) *BattingLine {
	for i := range c.Batting {
		if c.Batting[i].PlayerID == id {
			return &c.Batting[i]
		}
	}
	c.Batting = append(c.Batting, BattingLine{PlayerID: id, Name: name})
	return &c.Batting[len(c.Batting)-1]
}

// BowlingFor returns the bowling line for a player, creating it on demand.
func (c *InningsCard) BowlingFor(id int64, name string) *BowlingLine {
	for i := range c.Bowling {
		if c.Bowling[i].PlayerID == id {
			return &c.Bowling[i]
		}
	}
	c.Bowling = append(c.Bowling, BowlingLine{PlayerID: id, Name: name})
	return &c.Bowling[len(c.Bowling)-1]
}
