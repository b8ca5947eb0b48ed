// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError is the exported form for callers outside the package,
// mainly handlers rejecting malformed path and query parameters.
func NewInvalidInputError(fe []FieldError) error { return newInvalidInput(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CreateMatchInput is everything a scorer submits at toss time.
type CreateMatchInput struct {
	Format          model.MatchFormat  `json:"format"`
	OversLimit      int                `json:"overs_limit"`
	DaysLimit       int                `json:"days_limit"`
	OversPerDay     int                `json:"overs_per_day"`
	RainRuleEnabled bool               `json:"rain_rule_enabled"`
	TossWinner      string             `json:"toss_winner"`
	TossDecision    model.TossDecision `json:"toss_decision"`
	TeamA           model.Team         `json:"team_a"`
	TeamB           model.Team         `json:"team_b"`
}

// MatchService defines match lifecycle and read-side use cases.
type MatchService interface {
	CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error)
	GetMatch(ctx context.Context, id int64) (model.Match, error)
	GetSnapshot(ctx context.Context, id int64) (engine.Snapshot, error)
	ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchSummary], error)
}

// ScoringService defines every command that mutates a match in play, plus the
// rain-rule read models. Implementations must serialize commands per match.
type ScoringService interface {
	StartInnings(ctx context.Context, matchID int64, in engine.StartInningsInput) (engine.Snapshot, error)
	ApplyDelivery(ctx context.Context, matchID int64, cmd engine.DeliveryCommand) (engine.Snapshot, error)
	RegisterNewBatter(ctx context.Context, matchID, batterID int64) (engine.Snapshot, error)
	RegisterNewOver(ctx context.Context, matchID, bowlerID int64) (engine.Snapshot, error)
	StartInterruption(ctx context.Context, matchID int64, kind model.InterruptionKind, note string) (engine.Snapshot, error)
	StopInterruption(ctx context.Context, matchID int64, kind model.InterruptionKind) (engine.Snapshot, error)
	ReduceOversLimit(ctx context.Context, matchID int64, newLimit int, note string) (engine.Snapshot, error)
	AbandonMatch(ctx context.Context, matchID int64, note string) (engine.Snapshot, error)
	OverrideResult(ctx context.Context, matchID int64, res model.MatchResult) (engine.Snapshot, error)
	ComputeRevisedTarget(ctx context.Context, matchID int64) (engine.TargetBreakdown, error)
	ComputeParNow(ctx context.Context, matchID int64) (engine.ParBreakdown, error)
}

// Broadcaster pushes a fresh snapshot to live subscribers after a mutation.
// The hub implements it; tests drop in a no-op.
type Broadcaster interface {
	Publish(matchID int64, snap engine.Snapshot, events []engine.Event)
}

// NopBroadcaster discards everything.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(int64, engine.Snapshot, []engine.Event) {}
