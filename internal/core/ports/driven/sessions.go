package driven

import "github.com/q-sparc/sparc-chat/internal/core/domain"

// SessionStore holds ordered conversation history per opaque session key.
// Sessions are created lazily on first reference and live for the process
// lifetime; there is no cross-process persistence.
//
// Implementations must guarantee that concurrent first references to the
// same key resolve to a single session, that appends on one session are
// serialised, and that different sessions never block each other.
type SessionStore interface {
	// History returns the session's turns in arrival order. A never-seen
	// session is created empty and an empty slice returned. The returned
	// slice is a copy; callers may retain it.
	History(sessionID string) []domain.Turn

	// AppendTurns appends turns to the session atomically, creating the
	// session if needed. Passing both the user and assistant turn of an
	// exchange in one call keeps them adjacent under concurrency.
	AppendTurns(sessionID string, turns ...domain.Turn)

	// Len returns the number of live sessions.
	Len() int
}
