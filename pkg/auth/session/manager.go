// Package session tracks refresh sessions in redis. Each access token's jti
// maps to the refresh token that can renew it; deleting the key revokes both.
package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/mlegrand/equilog-backend/pkg/config"
	redisclient "github.com/mlegrand/equilog-backend/pkg/redis"
)

const refreshTokenBytes = 32

// ErrInvalidRefreshToken covers every client-side refresh failure: unknown
// session, expired session, or a token that does not match.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// backend is the slice of the redis client the manager needs. Tests swap in
// a map-backed fake.
type backend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// AccessSessionChecker is the read-only view the auth middleware uses to
// confirm a jti still has a live session.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager creates, rotates and revokes refresh sessions.
type Manager struct {
	store backend
	ttl   time.Duration
}

// NewManager wires the manager to redis. The refresh TTL must exceed the
// access token TTL or refreshing would never be possible.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	refreshTTL := cfg.RefreshTokenTTL()
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if refreshTTL <= 0 {
		return nil, fmt.Errorf("refresh token ttl must be positive")
	}
	if refreshTTL <= accessTTL {
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", refreshTTL, accessTTL)
	}

	return &Manager{store: client, ttl: refreshTTL}, nil
}

// Generate mints a refresh token for accessID and stores it under the
// session key with the refresh TTL.
func (m *Manager) Generate(ctx context.Context, accessID string) (string, error) {
	if strings.TrimSpace(accessID) == "" {
		return "", fmt.Errorf("access id is required")
	}

	token, err := newRefreshSecret()
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, m.store.AccessSessionKey(accessID), token, m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Rotate checks the presented token against the stored one, then replaces
// the session with a fresh access id and refresh token. The new session is
// written before the old one is deleted so a crash between the two steps
// never strands the user without any session.
func (m *Manager) Rotate(ctx context.Context, oldAccessID, presented string) (string, string, error) {
	if strings.TrimSpace(oldAccessID) == "" || strings.TrimSpace(presented) == "" {
		return "", "", ErrInvalidRefreshToken
	}

	oldKey := m.store.AccessSessionKey(oldAccessID)
	stored, err := m.store.Get(ctx, oldKey)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		return "", "", ErrInvalidRefreshToken
	}

	nextAccessID := NewAccessID()
	nextToken, err := newRefreshSecret()
	if err != nil {
		return "", "", err
	}
	if err := m.store.Set(ctx, m.store.AccessSessionKey(nextAccessID), nextToken, m.ttl); err != nil {
		return "", "", err
	}
	if err := m.store.Del(ctx, oldKey); err != nil {
		return "", "", err
	}
	return nextAccessID, nextToken, nil
}

// Revoke drops the session for accessID. Revoking an already-gone session is
// not an error.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.store.AccessSessionKey(accessID))
}

// HasSession reports whether accessID still maps to a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	_, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if errors.Is(err, redislib.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewAccessID mints the identifier shared by the JWT jti and the redis
// session key.
func NewAccessID() string {
	return uuid.NewString()
}

func newRefreshSecret() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
