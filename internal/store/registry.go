// In-memory registry of live game sessions, keyed by owner and date.
// Holds the sessions players are actively typing into; durable state
// goes through the SQLite store as snapshots. Everything here is lost
// on restart and rebuilt from snapshots on demand.

package store

import (
	"sync"

	"quintle/internal/game"
)

// SessionRegistry is a concurrency-safe map of active sessions.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*game.Session)}
}

func sessionKey(ownerID, date string) string { return ownerID + "|" + date }

// Get returns the live session for an owner and date, if any.
func (r *SessionRegistry) Get(ownerID, date string) (*game.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionKey(ownerID, date)]
	return s, ok
}

// Put registers a session under an owner and date.
func (r *SessionRegistry) Put(ownerID, date string, s *game.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionKey(ownerID, date)] = s
}

// Delete drops a session from the registry.
func (r *SessionRegistry) Delete(ownerID, date string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionKey(ownerID, date))
}
