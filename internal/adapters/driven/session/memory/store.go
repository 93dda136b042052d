// Package memory provides the in-process session store.
package memory

import (
	"sync"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// session holds one conversation's ordered turns behind its own lock, so
// appends on different sessions never contend.
type session struct {
	mu    sync.Mutex
	turns []domain.Turn
}

// SessionStore keeps per-session conversation history in memory.
// Sessions are created lazily on first reference; the store-level lock is
// held only for map access, never while reading or writing a session's
// turns. Nothing survives a process restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session

	// maxTurns bounds history as a sliding window; 0 means unbounded.
	maxTurns int

	created int // creation count, observable in tests
}

// NewSessionStore creates an empty store with unbounded history.
func NewSessionStore() *SessionStore {
	return NewSessionStoreWithLimit(0)
}

// NewSessionStoreWithLimit creates a store that keeps at most maxTurns
// turns per session, dropping the oldest first. The limit is rounded up to
// an even number so user/assistant pairs are never split.
func NewSessionStoreWithLimit(maxTurns int) *SessionStore {
	if maxTurns < 0 {
		maxTurns = 0
	}
	if maxTurns%2 == 1 {
		maxTurns++
	}
	return &SessionStore{
		sessions: make(map[string]*session),
		maxTurns: maxTurns,
	}
}

// getOrCreate resolves the session for id, creating it at most once per
// key for the process lifetime.
func (s *SessionStore) getOrCreate(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check: another goroutine may have created it meanwhile.
	if sess, ok = s.sessions[id]; ok {
		return sess
	}
	sess = &session{}
	s.sessions[id] = sess
	s.created++
	return sess
}

// History returns the session's turns in arrival order, creating the
// session if it does not exist yet. The result is a copy.
func (s *SessionStore) History(sessionID string) []domain.Turn {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]domain.Turn(nil), sess.turns...)
}

// AppendTurns appends turns atomically, creating the session if needed.
func (s *SessionStore) AppendTurns(sessionID string, turns ...domain.Turn) {
	if len(turns) == 0 {
		return
	}
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.turns = append(sess.turns, turns...)
	if s.maxTurns > 0 && len(sess.turns) > s.maxTurns {
		overflow := len(sess.turns) - s.maxTurns
		sess.turns = append(sess.turns[:0:0], sess.turns[overflow:]...)
	}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// createdCount reports how many sessions were ever created. Test hook for
// the single-creation guarantee.
func (s *SessionStore) createdCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.created
}
