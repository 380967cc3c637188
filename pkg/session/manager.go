package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arontec/scm-backend/pkg/config"
	redisclient "github.com/arontec/scm-backend/pkg/redis"
	"github.com/google/uuid"
)

// ErrNotFound signals a missing or expired session.
var ErrNotFound = errors.New("session not found")

// Identity is the payload bound to a session cookie.
type Identity struct {
	UserID     int64 `json:"user_id"`
	IsAdmin    bool  `json:"is_admin"`
	IsApproved bool  `json:"is_approved"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// Manager owns cookie-session creation, lookup, and destruction in Redis.
type Manager struct {
	store sessionStore
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	Resolve(ctx context.Context, sessionID string) (*Identity, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: client, ttl: cfg.TTL}, nil
}

// Create stores a new session and returns its opaque id.
func (m *Manager) Create(ctx context.Context, identity Identity) (string, error) {
	if identity.UserID <= 0 {
		return "", fmt.Errorf("user id is required")
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	sessionID := uuid.NewString()
	if err := m.store.Set(ctx, m.store.SessionKey(sessionID), string(payload), m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sessionID, nil
}

// Resolve returns the identity bound to the session id.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (*Identity, error) {
	if sessionID == "" {
		return nil, ErrNotFound
	}
	raw, err := m.store.Get(ctx, m.store.SessionKey(sessionID))
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &identity, nil
}

// Refresh rewrites the identity for an existing session, keeping its id.
func (m *Manager) Refresh(ctx context.Context, sessionID string, identity Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return m.store.Set(ctx, m.store.SessionKey(sessionID), string(payload), m.ttl)
}

// Destroy removes the session.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Del(ctx, m.store.SessionKey(sessionID))
}
