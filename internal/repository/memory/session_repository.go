package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ai-assistant-be/pkg/session"
)

// SessionRepository keeps conversation state in process memory. Sessions idle
// for an hour are purged; the dialogue simply starts over in chat mode.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// GetOrCreate returns the state for sessionID, creating a fresh chat-mode
// session when none exists (or the previous one expired).
func (r *SessionRepository) GetOrCreate(sessionID string) *session.State {
	if x, found := r.cache.Get(sessionID); found {
		// Refresh the sliding expiration on every touch.
		state := x.(*session.State)
		r.cache.Set(sessionID, state, cache.DefaultExpiration)
		return state
	}

	state := session.New(sessionID)
	r.cache.Set(sessionID, state, cache.DefaultExpiration)
	return state
}

func (r *SessionRepository) Get(sessionID string) (*session.State, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*session.State), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
