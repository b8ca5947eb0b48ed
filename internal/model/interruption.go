package model

import "time"

// InterruptionKind classifies a stoppage in play.
type InterruptionKind string

const (
	InterruptionWeather        InterruptionKind = "weather"
	InterruptionLight          InterruptionKind = "light"
	InterruptionInjury         InterruptionKind = "injury"
	InterruptionOther          InterruptionKind = "other"
	InterruptionOversReduction InterruptionKind = "overs_reduction"
)

// Valid reports whether the kind is a known variant.
func (k InterruptionKind) Valid() bool {
	switch k {
	case InterruptionWeather, InterruptionLight, InterruptionInjury, InterruptionOther, InterruptionOversReduction:
		return true
	}
	return false
}

// Interruption is one entry in the stoppage log. Overs reductions are
// recorded closed (they are instantaneous rulings, not open stoppages) and
// carry the new ceiling plus the delivery-log index at which it took effect
// so the resource engine can partition the innings correctly.
type Interruption struct {
	ID        int64            `json:"id"`
	Kind      InterruptionKind `json:"kind"`
	Innings   int              `json:"innings"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   *time.Time       `json:"ended_at,omitempty"`
	Note      string           `json:"note,omitempty"`

	NewOversLimit   int `json:"new_overs_limit,omitempty"`
	AtDeliveryIndex int `json:"at_delivery_index,omitempty"`
}
