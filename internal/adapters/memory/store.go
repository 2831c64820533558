// Package memory provides an in-memory session store for ephemeral
// deployments and tests.
package memory

import (
	"context"
	"sync"

	"github.com/fernwald/espalier/pkg/domain"
	"github.com/fernwald/espalier/pkg/ports"
)

// Store implements ports.SessionStore with a mutex-guarded map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*ports.Session
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*ports.Session)}
}

// Save persists a copy of the session.
func (s *Store) Save(ctx context.Context, session *ports.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = clone(session)
	return nil
}

// Load retrieves a copy of the session.
func (s *Store) Load(ctx context.Context, id string) (*ports.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return clone(session), nil
}

// Delete removes the session. Missing sessions are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func clone(session *ports.Session) *ports.Session {
	out := *session
	out.Answers = make([]string, len(session.Answers))
	copy(out.Answers, session.Answers)
	return &out
}
