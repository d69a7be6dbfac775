package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/graph"
)

// Session pairs one conversation's graph state with a lock so a turn is
// processed exclusively even when the client double-sends.
type Session struct {
	ID        string
	State     *graph.State
	CreatedAt time.Time
	LastSeen  time.Time

	mu sync.Mutex
}

// Lock takes the session's turn lock.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Store keeps sessions in memory and expires idle ones.
type Store struct {
	mu       sync.RWMutex
	byID     map[string]*Session
	ttl      time.Duration
	lastSwep time.Time
}

const defaultTTL = 2 * time.Hour

func NewStore() *Store {
	return &Store{
		byID: make(map[string]*Session),
		ttl:  defaultTTL,
	}
}

// Get returns the session for id, creating a fresh one when the id is empty
// or unknown. The second return reports whether the session already existed.
func (s *Store) Get(id, userID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	if id != "" {
		if sess, ok := s.byID[id]; ok {
			sess.LastSeen = time.Now()
			return sess, true
		}
	}
	sess := &Session{
		ID:        uuid.NewString(),
		State:     graph.NewState(userID),
		CreatedAt: time.Now(),
		LastSeen:  time.Now(),
	}
	s.byID[sess.ID] = sess
	return sess, false
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// sweepLocked drops sessions idle past the TTL. Runs at most once a minute.
func (s *Store) sweepLocked() {
	now := time.Now()
	if now.Sub(s.lastSwep) < time.Minute {
		return
	}
	s.lastSwep = now
	for id, sess := range s.byID {
		if now.Sub(sess.LastSeen) > s.ttl {
			delete(s.byID, id)
		}
	}
}
