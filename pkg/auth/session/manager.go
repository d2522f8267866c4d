package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/redis"
)

// ErrSessionNotFound is returned when a token resolves to nothing, either
// because it never existed or because its TTL expired.
var ErrSessionNotFound = errors.New("session: not found")

const tokenBytes = 32

// Store is the slice of the redis client the manager needs.
type Store interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	SessionKey(token string) string
}

// Manager mints and resolves opaque session tokens backed by redis.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, cfg config.SessionConfig) *Manager {
	return &Manager{store: store, ttl: cfg.TTL}
}

// Create mints a fresh token for userID. A token collision (never observed in
// practice, but SetNX makes it impossible to clobber a live session) is
// retried once.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := newToken()
		if err != nil {
			return "", err
		}
		ok, err := m.store.SetNX(ctx, m.store.SessionKey(token), userID.String(), m.ttl)
		if err != nil {
			return "", fmt.Errorf("store session: %w", err)
		}
		if ok {
			return token, nil
		}
	}
	return "", errors.New("session: token collision")
}

// Resolve maps a token to its user id and slides the TTL forward.
func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	key := m.store.SessionKey(token)
	val, err := m.store.Get(ctx, key)
	if errors.Is(err, redis.ErrNotFound) {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("load session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}

	if err := m.store.Expire(ctx, key, m.ttl); err != nil {
		return uuid.Nil, fmt.Errorf("extend session: %w", err)
	}
	return userID, nil
}

// Revoke deletes the session. Revoking an unknown token is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.store.Del(ctx, m.store.SessionKey(token))
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
