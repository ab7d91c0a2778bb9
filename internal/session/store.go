package session

import (
	"context"
	"sync"
)

// Store persists session state keyed by the client's session token.
// Get returns (nil, nil) for an unknown or expired token.
type Store interface {
	Get(ctx context.Context, token string) (*State, error)
	Put(ctx context.Context, token string, state *State) error
	Delete(ctx context.Context, token string) error
}

// Manager wraps a Store with the per-session mutual-exclusion boundary the
// data model requires: at most one in-flight mutation per session.
type Manager struct {
	store Store

	mu    sync.Mutex
	locks map[string]*lockEntry
}

// lockEntry counts holders and waiters so the map entry can be dropped once
// the last one releases; expired tokens then leave nothing behind.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, locks: make(map[string]*lockEntry)}
}

// Lock serializes access to one session and returns the unlock func. The
// map holds entries only for tokens with an in-flight request.
func (m *Manager) Lock(token string) func() {
	m.mu.Lock()
	e, ok := m.locks[token]
	if !ok {
		e = &lockEntry{}
		m.locks[token] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, token)
		}
		m.mu.Unlock()
	}
}

// Load returns the session state for token, or a fresh empty state when the
// backend has nothing. Callers distinguish "new session" by the state's
// Has* accessors, not by nil.
func (m *Manager) Load(ctx context.Context, token string) (*State, error) {
	st, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = &State{}
	}
	return st, nil
}

func (m *Manager) Save(ctx context.Context, token string, st *State) error {
	return m.store.Put(ctx, token, st)
}

func (m *Manager) Clear(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}
