package repository

import (
	"context"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// MatchRepository declares persistence operations for match aggregates.
// The aggregate is stored whole: the delivery and interruption logs are the
// source of truth and must come back exactly as they were written.
type MatchRepository interface {
	Create(ctx context.Context, m model.Match) (model.Match, error)
	GetByID(ctx context.Context, id int64) (model.Match, error)
	// Update persists the aggregate only when expectedVersion still matches
	// the stored row, bumping the version by one. A mismatch returns
	// ErrConflict so the caller can reload and replay the command.
	Update(ctx context.Context, m model.Match, expectedVersion int64) (model.Match, error)
	List(ctx context.Context, p Page) (PageResult[model.MatchSummary], error)
	Exists(ctx context.Context, id int64) (bool, error)
}
