package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-dsp/vantage/internal/rbac"
)

// Identity is the minimal profile an identity backend returns for valid
// credentials.
type Identity struct {
	ID        string
	Username  string
	Email     string
	Role      rbac.Role
	CreatedAt time.Time
}

// Directory resolves credentials to an identity. Implementations return
// ErrInvalidCredentials for unknown usernames and wrong passwords alike;
// a production deployment swaps the static table for a networked backend
// without touching the session store.
type Directory interface {
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
}

type directoryEntry struct {
	identity     Identity
	passwordHash []byte
}

// StaticDirectory is the in-memory identity backend seeded with the demo
// accounts. Passwords are bcrypt-hashed at construction.
type StaticDirectory struct {
	entries map[string]directoryEntry
}

type seedAccount struct {
	id       string
	username string
	email    string
	role     rbac.Role
	password string
}

var seedAccounts = []seedAccount{
	{id: "u-1001", username: "admin", email: "admin@vantage.test", role: rbac.RoleEmployeeAdmin, password: "admin"},
	{id: "u-1002", username: "traffic", email: "traffic@vantage.test", role: rbac.RoleEmployeeTraffic, password: "traffic123"},
	{id: "u-2001", username: "acme.admin", email: "admin@acme.test", role: rbac.RoleAdvertiserAdmin, password: "acme123"},
	{id: "u-2002", username: "acme.traffic", email: "traffic@acme.test", role: rbac.RoleAdvertiserTraffic, password: "acme123"},
}

// NewStaticDirectory builds the seeded directory.
func NewStaticDirectory() (*StaticDirectory, error) {
	created := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	entries := make(map[string]directoryEntry, len(seedAccounts))
	for _, acc := range seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		entries[acc.username] = directoryEntry{
			identity: Identity{
				ID:        acc.id,
				Username:  acc.username,
				Email:     acc.email,
				Role:      acc.role,
				CreatedAt: created,
			},
			passwordHash: hash,
		}
	}
	return &StaticDirectory{entries: entries}, nil
}

// Authenticate validates username/password against the static table.
func (d *StaticDirectory) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	entry, ok := d.entries[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(entry.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	identity := entry.identity
	return &identity, nil
}
