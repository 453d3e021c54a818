package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Manager maps the session cookie onto a Store bound to that session's
// Redis key. Every request gets a freshly rehydrated store; nothing about
// an authorization decision is cached between requests.
type Manager struct {
	client     *redis.Client
	directory  Directory
	issuer     Issuer
	tokens     TokenSink
	logger     *slog.Logger
	cookieName string
	ttl        time.Duration
	secure     bool
}

// ManagerConfig collects Manager dependencies.
type ManagerConfig struct {
	Client     *redis.Client
	Directory  Directory
	Issuer     Issuer
	Tokens     TokenSink
	Logger     *slog.Logger
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// NewManager constructs a Manager.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		client:     cfg.Client,
		directory:  cfg.Directory,
		issuer:     cfg.Issuer,
		tokens:     cfg.Tokens,
		logger:     cfg.Logger,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}
}

// Load builds the request's session store. A missing cookie starts a new
// logged-out session; an existing one is rehydrated from Redis. Only a
// storage-backend failure is returned as an error.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Store, error) {
	sessionID := ""
	cookie, err := r.Cookie(m.cookieName)
	switch {
	case err == nil && cookie.Value != "":
		sessionID = cookie.Value
	case err != nil && !errors.Is(err, http.ErrNoCookie):
		return nil, err
	}
	fresh := sessionID == ""
	if fresh {
		sessionID = m.generateSessionID()
	}

	store := m.StoreFor(sessionID)
	if !fresh {
		if err := store.Rehydrate(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// StoreFor binds a store to the given session ID without rehydrating.
func (m *Manager) StoreFor(sessionID string) *Store {
	return NewStore(StoreConfig{
		SessionID:   sessionID,
		Directory:   m.directory,
		Persistence: NewRedisPersistence(m.client, sessionKey(sessionID), m.ttl),
		Issuer:      m.issuer,
		Tokens:      m.tokens,
		Logger:      m.logger,
	})
}

// WriteCookie refreshes the session cookie for the store's session.
func (m *Manager) WriteCookie(w http.ResponseWriter, store *Store) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    store.SessionID(),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(m.ttl),
	})
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// CookieName returns the cookie identifier used for sessions.
func (m *Manager) CookieName() string { return m.cookieName }

// TTL exposes the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) generateSessionID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func sessionKey(sessionID string) string {
	return "vantage:session:" + sessionID
}
