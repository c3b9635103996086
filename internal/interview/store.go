package interview

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the in-memory session registry. Sessions live only for the
// process lifetime; there is no durable storage, and starting a new
// interview under the same id discards the previous transcript.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Put registers a session and returns its generated id.
func (s *Store) Put(session *Session) string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	return id
}

// Get returns the session for id, or false when unknown.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
