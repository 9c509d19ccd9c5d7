package repositories

import (
	"context"
	"errors"
	"time"

	"pasar/internal/models"
)

// ErrSessionNotFound is returned for unknown, expired, and already-consumed
// registration tokens alike, so callers cannot tell the three apart.
var ErrSessionNotFound = errors.New("registration session not found")

// SessionStore holds transient registration sessions keyed by opaque token.
// Sessions disappear on their own after the TTL passed to Put; Delete is the
// consume operation and must report whether this caller was the one that
// removed the session, so that double-submission of a correct code cannot
// create two accounts.
type SessionStore interface {
	Put(ctx context.Context, token string, session models.RegistrationSession, ttl time.Duration) error
	Get(ctx context.Context, token string) (*models.RegistrationSession, error)
	Delete(ctx context.Context, token string) (bool, error)
}
