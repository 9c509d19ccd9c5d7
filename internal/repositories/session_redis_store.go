package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pasar/internal/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "regsession:"

// RedisSessionStore is a redis implementation of SessionStore. Expiry is
// delegated to redis key TTLs, so an expired session and an unknown token
// are indistinguishable by construction.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new instance of RedisSessionStore.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
	}
}

// Put stores a registration session under the token for the given TTL.
func (s *RedisSessionStore) Put(ctx context.Context, token string, session models.RegistrationSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal registration session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store registration session: %w", err)
	}
	return nil
}

// Get retrieves the session for a token, or ErrSessionNotFound.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (*models.RegistrationSession, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load registration session: %w", err)
	}

	var session models.RegistrationSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registration session: %w", err)
	}
	return &session, nil
}

// Delete removes the session and reports whether this call removed it.
// Redis DEL returns the number of keys removed, which makes the consume
// race safe: of two concurrent deletes exactly one sees a count of 1.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) (bool, error) {
	removed, err := s.client.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete registration session: %w", err)
	}
	return removed > 0, nil
}
