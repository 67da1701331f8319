// File: services/booking/store.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fairway/models"
	"fairway/utils"
)

// SessionStore persists selection sessions between requests. The Redis
// implementation is the production one; tests swap in an in-memory fake.
type SessionStore interface {
	Fetch(ctx context.Context, sessionID string) (*models.SelectionSession, error)
	Save(ctx context.Context, session *models.SelectionSession, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions as JSON blobs under a prefixed key
// with a sliding TTL.
type RedisSessionStore struct{}

// NewRedisSessionStore constructs the production session store.
func NewRedisSessionStore() *RedisSessionStore {
	return &RedisSessionStore{}
}

func (RedisSessionStore) Fetch(ctx context.Context, sessionID string) (*models.SelectionSession, error) {
	cacheClient := utils.GetSessionCacheClient()
	data, err := cacheClient.Get(ctx, utils.SessionCachePrefix+sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("selection session not found or expired: %w", err)
	}
	var session models.SelectionSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse selection session: %w", err)
	}
	return &session, nil
}

func (RedisSessionStore) Save(ctx context.Context, session *models.SelectionSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal selection session: %w", err)
	}
	cacheClient := utils.GetSessionCacheClient()
	if err := cacheClient.Set(ctx, utils.SessionCachePrefix+session.SessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store selection session: %w", err)
	}
	return nil
}

func (RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	cacheClient := utils.GetSessionCacheClient()
	if err := cacheClient.Del(ctx, utils.SessionCachePrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to cancel selection session: %w", err)
	}
	return nil
}
