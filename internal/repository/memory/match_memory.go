// Package memory holds the in-memory MatchRepository used by tests and local
// development. It honors the exact contract of the Postgres store, version
// semantics included, so the two are interchangeable behind the interface.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
)

type matchRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*model.Match
}

// NewMatchRepository returns an empty in-memory store.
func NewMatchRepository() repository.MatchRepository {
	return &matchRepository{nextID: 1, rows: make(map[int64]*model.Match)}
}

func (r *matchRepository) Create(_ context.Context, m model.Match) (model.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	m.ID = r.nextID
	r.nextID++
	m.Version = 1
	m.CreatedAt = now
	m.UpdatedAt = now
	r.rows[m.ID] = m.Clone()
	return m, nil
}

func (r *matchRepository) GetByID(_ context.Context, id int64) (model.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	return *row.Clone(), nil
}

func (r *matchRepository) Update(_ context.Context, m model.Match, expectedVersion int64) (model.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[m.ID]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	if row.Version != expectedVersion {
		return model.Match{}, repository.ErrConflict
	}
	m.Version = expectedVersion + 1
	m.CreatedAt = row.CreatedAt
	m.UpdatedAt = time.Now().UTC()
	r.rows[m.ID] = m.Clone()
	return m, nil
}

func (r *matchRepository) List(_ context.Context, p repository.Page) (repository.PageResult[model.MatchSummary], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p = p.Normalize()

	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	// Newest first, same order the SQL store returns.
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	res := repository.PageResult[model.MatchSummary]{Total: len(ids)}
	for i := p.Offset; i < len(ids) && len(res.Items) < p.Limit; i++ {
		res.Items = append(res.Items, r.rows[ids[i]].Summarize())
	}
	return res, nil
}

func (r *matchRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rows[id]
	return ok, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
