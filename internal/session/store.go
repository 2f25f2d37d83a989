package session

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a session id is unknown to the store.
var ErrNotFound = errors.New("session not found")

// Store is a lightweight in-memory session registry for hosts that do
// not bring their own persistence. Snapshots in, snapshots out: the
// stored contexts never escape by reference.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Context
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Context)}
}

// GetOrCreate returns a snapshot of the session, creating it when absent.
func (s *Store) GetOrCreate(id string) *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.sessions[id]
	if !ok {
		ctx = NewContext()
		s.sessions[id] = ctx
	}
	return ctx.Clone()
}

// Get returns a snapshot of the session.
func (s *Store) Get(id string) (*Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ctx.Clone(), nil
}

// Update applies fn to the stored session under the store lock,
// creating the session when absent. This is the single write path the
// host uses to advance conversation state.
func (s *Store) Update(id string, fn func(*Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.sessions[id]
	if !ok {
		ctx = NewContext()
		s.sessions[id] = ctx
	}
	fn(ctx)
}

// Delete removes a session. Deleting an absent id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// IDs returns all session ids in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
