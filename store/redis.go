package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hireloop/jobagent/domain"
)

const sessionKeyPrefix = "jobagent:session:"

// RedisMedium persists sessions as JSON values with a native TTL matching
// the idle timeout, so Redis itself evicts sessions the lazy expiry check
// would have deleted anyway.
type RedisMedium struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMedium creates a Redis-backed medium. ttl <= 0 selects the
// default idle timeout.
func NewRedisMedium(client *redis.Client, ttl time.Duration) *RedisMedium {
	if ttl <= 0 {
		ttl = DefaultIdleTimeout
	}
	return &RedisMedium{client: client, ttl: ttl}
}

func (m *RedisMedium) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Save writes the session and resets its TTL.
func (m *RedisMedium) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return m.client.Set(ctx, m.key(session.SessionID), data, m.ttl).Err()
}

// Load reads the session and refreshes its TTL.
func (m *RedisMedium) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := m.client.Get(ctx, m.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		log.Printf("WARN: corrupt session value for %s: %v", sessionID, err)
		return nil, nil
	}

	if err := m.client.Expire(ctx, m.key(sessionID), m.ttl).Err(); err != nil {
		log.Printf("WARN: failed to refresh TTL for %s: %v", sessionID, err)
	}
	return &session, nil
}

// Delete removes the session key.
func (m *RedisMedium) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := m.client.Del(ctx, m.key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List scans the session key space and loads each value.
func (m *RedisMedium) List(ctx context.Context) ([]*domain.Session, error) {
	var sessions []*domain.Session
	iter := m.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		val, err := m.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var session domain.Session
		if err := json.Unmarshal([]byte(val), &session); err != nil {
			log.Printf("WARN: corrupt session value at %s: %v", iter.Val(), err)
			continue
		}
		sessions = append(sessions, &session)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Close closes the Redis client.
func (m *RedisMedium) Close() error {
	return m.client.Close()
}
