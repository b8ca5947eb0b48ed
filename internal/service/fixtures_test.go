package service_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
)

// fakeMatchRepo keeps aggregates in a map and mimics the optimistic version
// bump the Postgres repository does.
type fakeMatchRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*model.Match

	getErr    error
	updateErr error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, items: make(map[int64]*model.Match)}
}

func (f *fakeMatchRepo) Create(_ context.Context, m model.Match) (model.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.nextID
	f.nextID++
	m.Version = 1
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	f.items[m.ID] = m.Clone()
	return *m.Clone(), nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int64) (model.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return model.Match{}, f.getErr
	}
	stored, ok := f.items[id]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	return *stored.Clone(), nil
}

func (f *fakeMatchRepo) Update(_ context.Context, m model.Match, expectedVersion int64) (model.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return model.Match{}, f.updateErr
	}
	stored, ok := f.items[m.ID]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return model.Match{}, repository.ErrConflict
	}
	m.Version = expectedVersion + 1
	m.UpdatedAt = time.Now().UTC()
	f.items[m.ID] = m.Clone()
	return *m.Clone(), nil
}

func (f *fakeMatchRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.MatchSummary], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	res := repository.PageResult[model.MatchSummary]{Total: len(ids)}
	for i, id := range ids {
		if i < p.Offset {
			continue
		}
		if len(res.Items) == p.Limit {
			break
		}
		res.Items = append(res.Items, f.items[id].Summarize())
	}
	return res, nil
}

func (f *fakeMatchRepo) Exists(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeMatchRepo) version(id int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.items[id]; ok {
		return m.Version
	}
	return 0
}

var _ repository.MatchRepository = (*fakeMatchRepo)(nil)

// capturingBroadcaster records every publish so tests can assert on fan-out.
type capturingBroadcaster struct {
	mu       sync.Mutex
	matchIDs []int64
	snaps    []engine.Snapshot
	events   [][]engine.Event
}

func (b *capturingBroadcaster) Publish(matchID int64, snap engine.Snapshot, events []engine.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.matchIDs = append(b.matchIDs, matchID)
	b.snaps = append(b.snaps, snap)
	b.events = append(b.events, events)
}

func (b *capturingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.matchIDs)
}

func (b *capturingBroadcaster) last() (engine.Snapshot, []engine.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.snaps) == 0 {
		return engine.Snapshot{}, nil
	}
	return b.snaps[len(b.snaps)-1], b.events[len(b.events)-1]
}

func roster(name string, firstID int64) model.Team {
	t := model.Team{Name: name}
	for i := int64(0); i < 11; i++ {
		t.Players = append(t.Players, model.Player{ID: firstID + i, Name: fmt.Sprintf("%s %d", name, i+1)})
	}
	return t
}

// validCreateInput is a well-formed 20-over fixture; tests break individual
// fields from here.
func validCreateInput() service.CreateMatchInput {
	return service.CreateMatchInput{
		Format:       model.FormatLimitedOvers,
		OversLimit:   20,
		TossWinner:   "Harbour View",
		TossDecision: model.DecisionBat,
		TeamA:        roster("Harbour View", 1),
		TeamB:        roster("Spanish Town", 21),
	}
}
