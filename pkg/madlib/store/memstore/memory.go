package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/madlib/pkg/madlib/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]store.Session
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string]store.Session)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSession inserts or replaces a session, keyed by ID.
func (s *Store) SaveSession(ctx context.Context, sess store.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == "" {
		return nil
	}
	s.sessions[sess.ID] = copySession(sess)
	return nil
}

// GetSession returns a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[id]; ok {
		return copySession(sess), true, nil
	}
	return store.Session{}, false, nil
}

// ListSessions returns the newest sessions first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	out := make([]store.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, copySession(sess))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copySession(s store.Session) store.Session {
	s.Blanks = append([]store.Blank(nil), s.Blanks...)
	return s
}
