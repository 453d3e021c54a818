package auth

import (
	"errors"
	"time"

	"github.com/vantage-dsp/vantage/internal/rbac"
)

// User is the identity record held by an authenticated session. The
// permission set is denormalized from the role table at login so checks
// never re-consult the table; if the role ever changes the set must be
// re-derived, never patched.
type User struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	Role        rbac.Role         `json:"role"`
	Permissions []rbac.Permission `json:"permissions"`
	CreatedAt   time.Time         `json:"created_at"`
	LastLogin   *time.Time        `json:"last_login,omitempty"`
}

// Credentials is the ephemeral login input. It is never persisted and
// never retained beyond the login call.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ErrInvalidCredentials indicates a failed credential lookup.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")
