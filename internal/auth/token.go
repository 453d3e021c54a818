package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Issuer mints the opaque access-token artifact handed out at login. The
// session store writes and deletes the artifact but never interprets it.
type Issuer interface {
	Issue(user *User) (string, error)
}

// JWTIssuer signs HS256 tokens carrying the user id and role. No expiry
// claim is set; expiry and refresh belong to a Refresher implementation.
type JWTIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTIssuer constructs a JWTIssuer.
func NewJWTIssuer(secret, issuer string) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Issue signs a token for user.
func (i *JWTIssuer) Issue(user *User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iss":  i.issuer,
		"iat":  i.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Refresher is the extension point for token refresh and expiry. Nothing
// in this core implements real refresh semantics; integrations that do
// should call Store.SetUser with the re-hydrated user.
type Refresher interface {
	Refresh(ctx context.Context, store *Store) error
}

// NoopRefresher leaves the session untouched.
type NoopRefresher struct{}

// Refresh implements Refresher.
func (NoopRefresher) Refresh(ctx context.Context, store *Store) error { return nil }

// Vault is the ambient storage for issued token artifacts, keyed by
// session ID. Logout removes the entry.
type Vault struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVault constructs a Vault.
func NewVault(client *redis.Client, ttl time.Duration) *Vault {
	return &Vault{client: client, ttl: ttl}
}

// Put stores the artifact for a session.
func (v *Vault) Put(ctx context.Context, sessionID, token string) error {
	return v.client.Set(ctx, vaultKey(sessionID), token, v.ttl).Err()
}

// Delete removes the artifact for a session.
func (v *Vault) Delete(ctx context.Context, sessionID string) error {
	return v.client.Del(ctx, vaultKey(sessionID)).Err()
}

func vaultKey(sessionID string) string {
	return "vantage:token:" + sessionID
}
