package session

import (
	"sync"
	"time"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/google/uuid"
)

// Registry holds live sessions in memory. Sessions never expire; they end on logout.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: map[uuid.UUID]*Session{},
		now:      time.Now,
	}
}

// Create starts a session for user. shop, when non-nil, is copied into the
// session as the shopkeeper's workspace.
func (r *Registry) Create(user catalog.User, shop *catalog.Shop) *Session {
	s := newSession(uuid.New(), user, shop, r.now().UTC())
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the live session with id.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete clears and forgets the session; it reports whether one existed.
func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Clear()
	}
	return ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
