package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gortyum/feriadigital/pkg/config"
	"github.com/Gortyum/feriadigital/pkg/enums"
	redisclient "github.com/Gortyum/feriadigital/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

// ErrNoSession signals an expired, flushed, or never-issued session.
var ErrNoSession = errors.New("no active session")

// Record holds the per-session state the handlers read. The JSON keys are the
// historical session-bag keys and are part of the contract.
type Record struct {
	UserID uuid.UUID      `json:"usuario_id"`
	Role   enums.UserRole `json:"usuario_rol"`
	Name   string         `json:"usuario_nombre"`
}

// FlashLevel tags one-shot messages shown after a redirect.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is a one-shot user-visible status message.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	RPush(ctx context.Context, key string, ttl time.Duration, values ...any) error
	DrainList(ctx context.Context, key string) ([]string, error)
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
	FlashKey(sessionID string) string
}

// Manager owns session records and their flash queues in Redis.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	cfg   config.SessionConfig
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: client, keyer: client, cfg: cfg}, nil
}

// Create stores a fresh session record and returns the signed token plus the
// session id it resolves to.
func (m *Manager) Create(ctx context.Context, rec Record) (string, string, error) {
	if rec.UserID == uuid.Nil {
		return "", "", fmt.Errorf("user id is required")
	}
	if !rec.Role.IsValid() {
		return "", "", fmt.Errorf("invalid role %q", rec.Role)
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return "", "", fmt.Errorf("marshal session record: %w", err)
	}

	sessionID := uuid.NewString()
	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), payload, m.cfg.TTL); err != nil {
		return "", "", fmt.Errorf("store session record: %w", err)
	}

	token, err := MintToken(m.cfg, time.Now(), sessionID, rec.UserID)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

// Lookup resolves a token to its live session record.
func (m *Manager) Lookup(ctx context.Context, token string) (*Record, string, error) {
	sessionID, err := ParseToken(m.cfg, token)
	if err != nil {
		return nil, "", ErrNoSession
	}

	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, "", ErrNoSession
		}
		return nil, "", err
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, "", fmt.Errorf("decode session record: %w", err)
	}
	return &rec, sessionID, nil
}

// Refresh rewrites the stored record, keeping the session id and TTL window.
func (m *Manager) Refresh(ctx context.Context, sessionID string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(sessionID), payload, m.cfg.TTL)
}

// Flush removes the session record and any pending flashes (logout everywhere
// for this session).
func (m *Manager) Flush(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID), m.keyer.FlashKey(sessionID))
}

// PushFlash queues a one-shot message for the session's next rendered page.
func (m *Manager) PushFlash(ctx context.Context, sessionID string, level FlashLevel, message string) error {
	if strings.TrimSpace(sessionID) == "" || message == "" {
		return nil
	}
	payload, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return m.store.RPush(ctx, m.keyer.FlashKey(sessionID), m.cfg.TTL, payload)
}

// PopFlashes drains the pending messages for the session, oldest first.
func (m *Manager) PopFlashes(ctx context.Context, sessionID string) ([]Flash, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil
	}
	raws, err := m.store.DrainList(ctx, m.keyer.FlashKey(sessionID))
	if err != nil {
		return nil, err
	}
	flashes := make([]Flash, 0, len(raws))
	for _, raw := range raws {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}
