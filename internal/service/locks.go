package service

import "sync"

// matchLocks serializes mutations per match id: the engine's transitions are
// pure and assume at most one in-flight command per match. Locks for distinct
// matches are independent, so unrelated games never queue behind each other.
type matchLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock blocks until the match's writer slot is free and returns the release.
func (l *matchLocks) lock(id int64) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
