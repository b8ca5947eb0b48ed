package engine

// EventType names a state change produced by a transition. The collaborator
// layer fans these out to live subscribers.
type EventType string

const (
	EventDeliveryApplied     EventType = "delivery.applied"
	EventWicketFell          EventType = "wicket.fell"
	EventOverCompleted       EventType = "over.completed"
	EventBatterRegistered    EventType = "batter.registered"
	EventOverStarted         EventType = "over.started"
	EventInningsStarted      EventType = "innings.started"
	EventInningsEnded        EventType = "innings.ended"
	EventInterruptionStarted EventType = "interruption.started"
	EventInterruptionStopped EventType = "interruption.stopped"
	EventOversReduced        EventType = "overs.reduced"
	EventMatchCompleted      EventType = "match.completed"
	EventMatchAbandoned      EventType = "match.abandoned"
	EventResultOverridden    EventType = "result.overridden"
)

// Event is one domain event emitted by a successful transition.
type Event struct {
	Type    EventType `json:"type"`
	Innings int       `json:"innings,omitempty"`
}

func event(t EventType, innings int) Event { return Event{Type: t, Innings: innings} }
