package memory

import (
	"context"

	"course-copilot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. Sessions are reset,
// never deleted, so no cache expiry: a returning student should find their
// language and last course selection intact for as long as the process
// lives.
type SessionRepository struct {
	cache *cache.Cache
}

var _ store.SessionStore = &SessionRepository{}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	r.cache.Set(session.UserID, session, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, userID string) (*store.Session, bool, error) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true, nil
	}
	return nil, false, nil
}
