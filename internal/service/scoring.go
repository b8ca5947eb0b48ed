package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/dls"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
)

// scoringService turns transport commands into engine transitions: take the
// match's writer lock, load the aggregate, run the pure transition on a
// clone, let the resolver settle innings and match state, persist with a
// version check, then broadcast the fresh snapshot. A rejected command never
// reaches storage.
type scoringService struct {
	repo   repository.MatchRepository
	tables *tableCache
	locks  *matchLocks
	bcast  Broadcaster
	log    zerolog.Logger
}

func NewScoringService(repo repository.MatchRepository, bcast Broadcaster, logger zerolog.Logger) ScoringService {
	l := logger.With().Str("module", "service").Str("component", "scoring").Logger()
	if bcast == nil {
		bcast = NopBroadcaster{}
	}
	return &scoringService{
		repo:   repo,
		tables: newTableCache(),
		locks:  newMatchLocks(),
		bcast:  bcast,
		log:    l,
	}
}

// mutation is one engine transition applied to a working copy.
type mutation func(m *model.Match, tbl dls.Table, now time.Time) ([]engine.Event, error)

func (s *scoringService) mutate(ctx context.Context, matchID int64, command string, op mutation) (engine.Snapshot, error) {
	if matchID <= 0 {
		return engine.Snapshot{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	unlock := s.locks.lock(matchID)
	defer unlock()

	stored, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	tbl, err := s.tables.forMatch(&stored)
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", matchID).Msg("resource table unavailable")
		return engine.Snapshot{}, err
	}

	now := time.Now().UTC()
	work := stored.Clone()
	events, err := op(work, tbl, now)
	if err != nil {
		return engine.Snapshot{}, err
	}
	resolved, err := engine.Resolve(work, tbl, now)
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", matchID).Str("command", command).Msg("resolver failed")
		return engine.Snapshot{}, err
	}
	events = append(events, resolved...)

	updated, err := s.repo.Update(ctx, *work, stored.Version)
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", matchID).Str("command", command).Msg("persist failed")
		return engine.Snapshot{}, err
	}

	snap := engine.BuildSnapshot(&updated, tbl)
	s.bcast.Publish(matchID, snap, events)

	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, string(e.Type))
	}
	s.log.Info().
		Int64("match_id", matchID).
		Str("command", command).
		Strs("events", names).
		Int64("version", updated.Version).
		Msg("command applied")
	return snap, nil
}

func (s *scoringService) StartInnings(ctx context.Context, matchID int64, in engine.StartInningsInput) (engine.Snapshot, error) {
	return s.mutate(ctx, matchID, "start_innings", func(m *model.Match, _ dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.StartInnings(m, in, now)
	})
}

func (s *scoringService) ApplyDelivery(ctx context.Context, matchID int64, cmd engine.DeliveryCommand) (engine.Snapshot, error) {
	return s.mutate(ctx, matchID, "apply_delivery", func(m *model.Match, _ dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.ApplyDelivery(m, cmd, now)
	})
}

func (s *scoringService) RegisterNewBatter(ctx context.Context, matchID, batterID int64) (engine.Snapshot, error) {
	return s.mutate(ctx, matchID, "register_new_batter", func(m *model.Match, _ dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.RegisterNewBatter(m, batterID, now)
	})
}

func (s *scoringService) RegisterNewOver(ctx context.Context, matchID, bowlerID int64) (engine.Snapshot, error) {
	return s.mutate(ctx, matchID, "register_new_over", func(m *model.Match, _ dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.RegisterNewOver(m, bowlerID, now)
	})
}

func (s *scoringService) StartInterruption(ctx context.Context, matchID int64, kind model.InterruptionKind, note string) (engine.Snapshot, error) {
	note = strings.TrimSpace(note)
	return s.mutate(ctx, matchID, "start_interruption", func(m *model.Match, _ dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.StartInterruption(m, kind, note, now)
	})
}

func (s *scoringService) StopInterruption(ctx context.Context, matchID int64, kind model.InterruptionKind) (engine.Snapshot, error) {
	return s.mutate(ctx, matchID, "stop_interruption", func(m *model.Match, _ dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.StopInterruption(m, kind, now)
	})
}

func (s *scoringService) ReduceOversLimit(ctx context.Context, matchID int64, newLimit int, note string) (engine.Snapshot, error) {
	note = strings.TrimSpace(note)
	return s.mutate(ctx, matchID, "reduce_overs_limit", func(m *model.Match, tbl dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.ReduceOversLimit(m, tbl, newLimit, note, now)
	})
}

func (s *scoringService) AbandonMatch(ctx context.Context, matchID int64, note string) (engine.Snapshot, error) {
	note = strings.TrimSpace(note)
	return s.mutate(ctx, matchID, "abandon_match", func(m *model.Match, tbl dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.Abandon(m, tbl, note, now)
	})
}

func (s *scoringService) OverrideResult(ctx context.Context, matchID int64, res model.MatchResult) (engine.Snapshot, error) {
	return s.mutate(ctx, matchID, "override_result", func(m *model.Match, _ dls.Table, now time.Time) ([]engine.Event, error) {
		return engine.OverrideResult(m, res, now)
	})
}

func (s *scoringService) ComputeRevisedTarget(ctx context.Context, matchID int64) (engine.TargetBreakdown, error) {
	if matchID <= 0 {
		return engine.TargetBreakdown{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	m, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return engine.TargetBreakdown{}, err
	}
	tbl, err := s.tables.forMatch(&m)
	if err != nil {
		return engine.TargetBreakdown{}, err
	}
	return engine.RevisedTargetBreakdown(&m, tbl)
}

func (s *scoringService) ComputeParNow(ctx context.Context, matchID int64) (engine.ParBreakdown, error) {
	if matchID <= 0 {
		return engine.ParBreakdown{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	m, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return engine.ParBreakdown{}, err
	}
	tbl, err := s.tables.forMatch(&m)
	if err != nil {
		return engine.ParBreakdown{}, err
	}
	return engine.ParNow(&m, tbl)
}

var _ ScoringService = (*scoringService)(nil)
