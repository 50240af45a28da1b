// Package redis holds the Redis-backed session store used when the
// assistant runs with more than one replica.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"course-copilot-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "copilot:session:"

type SessionRepository struct {
	client *redis.Client
}

var _ store.SessionStore = &SessionRepository{}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.UserID, err)
	}
	// No TTL: idle expiry is the dialog layer's decision, and the stored
	// language must outlive it.
	if err := r.client.Set(ctx, keyPrefix+session.UserID, data, 0).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", session.UserID, err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, userID string) (*store.Session, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load session %s: %w", userID, err)
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", userID, err)
	}
	return &session, true, nil
}
