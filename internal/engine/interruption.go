package engine

import (
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/dls"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// StartInterruption opens a stoppage of the given kind. At most one
// interruption per kind may be open at a time.
func StartInterruption(m *model.Match, kind model.InterruptionKind, note string, now time.Time) ([]Event, error) {
	if !kind.Valid() || kind == model.InterruptionOversReduction {
		return nil, validationf("unknown interruption kind %q", kind)
	}
	if m.Status.Finished() {
		return nil, conflictf("match is already %s", m.Status)
	}
	if m.OpenInterruption(kind) != nil {
		return nil, conflictf("a %s interruption is already open", kind)
	}

	m.Interruptions = append(m.Interruptions, model.Interruption{
		ID:        int64(len(m.Interruptions) + 1),
		Kind:      kind,
		Innings:   m.CurrentInnings,
		StartedAt: now,
		Note:      note,
	})
	return []Event{event(EventInterruptionStarted, m.CurrentInnings)}, nil
}

// StopInterruption closes the open stoppage of the given kind.
func StopInterruption(m *model.Match, kind model.InterruptionKind, now time.Time) ([]Event, error) {
	if !kind.Valid() || kind == model.InterruptionOversReduction {
		return nil, validationf("unknown interruption kind %q", kind)
	}
	open := m.OpenInterruption(kind)
	if open == nil {
		return nil, conflictf("no open %s interruption to stop", kind)
	}
	ended := now
	open.EndedAt = &ended
	return []Event{event(EventInterruptionStopped, m.CurrentInnings)}, nil
}

// ReduceOversLimit records an administrative overs reduction for the innings
// in progress (or about to start). The entry is closed on arrival, it is a
// ruling rather than an open stoppage, and is tagged with the delivery-log
// index so the resource walk can partition the innings at this boundary.
// During a chase with the rain rule on, the stored target is revised
// immediately. tbl may be nil when the rain rule is disabled.
func ReduceOversLimit(m *model.Match, tbl dls.Table, newLimit int, note string, now time.Time) ([]Event, error) {
	if m.Format != model.FormatLimitedOvers {
		return nil, validationf("overs reductions apply to limited-overs matches only")
	}
	if m.Status.Finished() {
		return nil, conflictf("match is already %s", m.Status)
	}
	if newLimit < 1 {
		return nil, validationf("overs limit must be at least 1")
	}
	current := m.EffectiveOversLimit(m.CurrentInnings)
	if newLimit >= current {
		return nil, validationf("new limit %d does not reduce the current %d overs", newLimit, current)
	}

	bowled := 0
	if card := m.Card(m.CurrentInnings); card != nil {
		bowled = card.LegalBalls()
	}
	if newLimit*6 < bowled {
		return nil, conflictf("%d overs is below the %d balls already bowled", newLimit, bowled)
	}

	ended := now
	m.Interruptions = append(m.Interruptions, model.Interruption{
		ID:              int64(len(m.Interruptions) + 1),
		Kind:            model.InterruptionOversReduction,
		Innings:         m.CurrentInnings,
		StartedAt:       now,
		EndedAt:         &ended,
		Note:            note,
		NewOversLimit:   newLimit,
		AtDeliveryIndex: len(m.Deliveries),
	})
	m.Shortened = true

	events := []Event{event(EventOversReduced, m.CurrentInnings)}

	// A reduction in the chase moves the goalposts right away.
	if m.RainRuleEnabled && m.CurrentInnings == 2 && m.FirstInnings != nil {
		if tbl == nil {
			return nil, invariantf("rain rule enabled but no resource table available")
		}
		breakdown, err := RevisedTargetBreakdown(m, tbl)
		if err != nil {
			return nil, err
		}
		m.Target = &breakdown.Target
	}

	return events, nil
}
