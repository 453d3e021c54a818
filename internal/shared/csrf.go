package shared

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CSRFHeader is the request header carrying the CSRF token.
const CSRFHeader = "X-CSRF-Token"

var (
	// ErrCSRFTokenMissing occurs when no CSRF token accompanies a request.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// CSRFManager issues and verifies CSRF tokens bound to a session. Tokens
// live in Redis next to the session record, never inside it, so the
// session payload stays exactly the persisted identity pair.
type CSRFManager struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewCSRFManager returns a CSRFManager using the provided secret key.
func NewCSRFManager(client *redis.Client, secret string, ttl time.Duration) *CSRFManager {
	return &CSRFManager{client: client, secret: []byte(secret), ttl: ttl}
}

// EnsureToken retrieves or generates a CSRF token for the session.
func (m *CSRFManager) EnsureToken(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("session missing")
	}
	token, err := m.client.Get(ctx, m.key(sessionID)).Result()
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	token = m.generateToken(sessionID)
	if err := m.client.Set(ctx, m.key(sessionID), token, m.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyToken compares the supplied token with the session token.
func (m *CSRFManager) VerifyToken(ctx context.Context, sessionID, token string) error {
	if token == "" {
		return ErrCSRFTokenMissing
	}
	expected, err := m.client.Get(ctx, m.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCSRFTokenMissing
		}
		return err
	}
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

func (m *CSRFManager) key(sessionID string) string {
	return "vantage:csrf:" + sessionID
}

func (m *CSRFManager) generateToken(sessionID string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(sessionID))
	_, _ = mac.Write([]byte{'|'})
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(time.Now().UnixNano()))
	_, _ = mac.Write(buf)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
