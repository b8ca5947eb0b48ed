package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
)

type matchRepository struct{ pool *pgxpool.Pool }

// NewMatchRepository returns a Postgres-backed match store. The aggregate is
// kept as one JSONB document; id, version and status live in their own
// columns so listing and the optimistic version check never touch the body.
func NewMatchRepository(pool *pgxpool.Pool) repository.MatchRepository {
	return &matchRepository{pool: pool}
}

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	m.Version = 1
	body, err := json.Marshal(m)
	if err != nil {
		return model.Match{}, fmt.Errorf("marshal match aggregate: %w", err)
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO matches (version, team_a, team_b, format, overs_limit, status, aggregate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		m.Version, m.TeamA.Name, m.TeamB.Name, m.Format, m.OversLimit, m.Status, body,
	)
	if err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return model.Match{}, repository.MapPgError(err)
	}
	return m, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, version, aggregate, created_at, updated_at FROM matches WHERE id = $1`, id,
	)
	var (
		out                  model.Match
		storedID, version    int64
		body                 []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&storedID, &version, &body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return model.Match{}, fmt.Errorf("unmarshal match %d: %w", storedID, err)
	}
	// The columns are authoritative for identity and concurrency control.
	out.ID = storedID
	out.Version = version
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func (r *matchRepository) Update(ctx context.Context, m model.Match, expectedVersion int64) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	m.Version = expectedVersion + 1
	body, err := json.Marshal(m)
	if err != nil {
		return model.Match{}, fmt.Errorf("marshal match aggregate: %w", err)
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE matches
		    SET version = version + 1, status = $3, aggregate = $4, updated_at = now()
		  WHERE id = $1 AND version = $2
		 RETURNING version, updated_at`,
		m.ID, expectedVersion, m.Status, body,
	)
	if err := row.Scan(&m.Version, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			exists, exErr := r.Exists(ctx, m.ID)
			if exErr != nil {
				return model.Match{}, exErr
			}
			if !exists {
				return model.Match{}, repository.ErrNotFound
			}
			return model.Match{}, repository.ErrConflict
		}
		return model.Match{}, repository.MapPgError(err)
	}
	return m, nil
}

func (r *matchRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.MatchSummary], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.MatchSummary]{}, err
	}
	p = p.Normalize()
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, team_a, team_b, format, overs_limit, status, created_at, updated_at,
		        COUNT(*) OVER() AS total
		 FROM matches
		 ORDER BY id DESC
		 LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.MatchSummary]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.MatchSummary]{Items: make([]model.MatchSummary, 0, p.Limit)}
	for rows.Next() {
		var s model.MatchSummary
		var total int
		if err := rows.Scan(&s.ID, &s.TeamA, &s.TeamB, &s.Format, &s.OversLimit, &s.Status, &s.CreatedAt, &s.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.MatchSummary]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, s)
		res.Total = total
	}
	return res, nil
}

// Exists performs a lightweight check so callers can tell a missing match
// from a version conflict.
func (r *matchRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM matches WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
