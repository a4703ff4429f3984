package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// TurnRegistry tracks which chat sessions currently have a turn in flight.
// A session may have at most one pending turn: while the orchestrator waits
// on the remote assistant, further submissions for that session are
// rejected so messages can never interleave.
//
// Entries carry a TTL as a safety valve: if a turn is never released (e.g.
// a crashed goroutine) the lock expires instead of wedging the session
// forever. The TTL is well above the remote call timeout, so it never
// fires for a healthy turn.
type TurnRegistry struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewTurnRegistry() *TurnRegistry {
	c := cache.New(2*time.Minute, 5*time.Minute)
	return &TurnRegistry{
		cache: c,
	}
}

// TryAcquire marks a turn in flight for the session. It returns false when
// a turn is already pending, in which case the caller must reject the
// submission.
func (r *TurnRegistry) TryAcquire(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.cache.Get(sessionID); found {
		return false
	}
	r.cache.Set(sessionID, time.Now(), cache.DefaultExpiration)
	return true
}

// Release clears the in-flight marker once the turn resolves.
func (r *TurnRegistry) Release(sessionID string) {
	r.cache.Delete(sessionID)
}

// InFlight reports whether the session has a pending turn.
func (r *TurnRegistry) InFlight(sessionID string) bool {
	_, found := r.cache.Get(sessionID)
	return found
}
