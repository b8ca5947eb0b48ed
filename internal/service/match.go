package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
)

// matchService holds match lifecycle logic: validation + orchestration, no transport / SQL details.
type matchService struct {
	repo   repository.MatchRepository
	tables *tableCache
	log    zerolog.Logger
}

func NewMatchService(repo repository.MatchRepository, logger zerolog.Logger) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	return &matchService{repo: repo, tables: newTableCache(), log: l}
}

func (s *matchService) CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error) {
	start := time.Now()

	in.TeamA.Name = strings.TrimSpace(in.TeamA.Name)
	in.TeamB.Name = strings.TrimSpace(in.TeamB.Name)
	in.TossWinner = strings.TrimSpace(in.TossWinner)

	ferrs := validateCreateMatch(in)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("match validation failed")
		return model.Match{}, err
	}

	m := model.Match{
		Format:          in.Format,
		OversLimit:      in.OversLimit,
		DaysLimit:       in.DaysLimit,
		OversPerDay:     in.OversPerDay,
		RainRuleEnabled: in.RainRuleEnabled,
		TossWinner:      in.TossWinner,
		TossDecision:    in.TossDecision,
		TeamA:           in.TeamA,
		TeamB:           in.TeamB,
		Status:          model.StatusScheduled,
		CurrentInnings:  1,
	}

	out, err := s.repo.Create(ctx, m)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("team_a", in.TeamA.Name).Str("team_b", in.TeamB.Name).Msg("create match failed")
		return model.Match{}, err
	}
	s.log.Info().
		Dur("took", time.Since(start)).
		Int64("match_id", out.ID).
		Str("format", string(out.Format)).
		Bool("rain_rule", out.RainRuleEnabled).
		Msg("match created")
	return out, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	if id <= 0 {
		return model.Match{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *matchService) GetSnapshot(ctx context.Context, id int64) (engine.Snapshot, error) {
	if id <= 0 {
		return engine.Snapshot{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return engine.Snapshot{}, err
	}
	tbl, err := s.tables.forMatch(&m)
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", id).Msg("resource table unavailable")
		return engine.Snapshot{}, err
	}
	return engine.BuildSnapshot(&m, tbl), nil
}

func (s *matchService) ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchSummary], error) {
	p := page.Normalize()
	res, err := s.repo.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list matches failed")
		return repository.PageResult[model.MatchSummary]{}, err
	}
	return res, nil
}

var _ MatchService = (*matchService)(nil)
