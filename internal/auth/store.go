package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/vantage-dsp/vantage/internal/rbac"
)

// TokenSink is where issued access-token artifacts live. The Vault
// satisfies it; tests substitute their own.
type TokenSink interface {
	Put(ctx context.Context, sessionID, token string) error
	Delete(ctx context.Context, sessionID string) error
}

// Store is the single source of truth for one session: who is logged in
// and what they can do. Durable state (current user, authenticated flag)
// round-trips through Persistence; loading and error state is transient
// and always resets on rehydration.
//
// Persistence writes are fire-and-forget from the caller's point of view:
// a failed write is logged, never surfaced, and the in-memory state stays
// authoritative for the life of the process.
type Store struct {
	sessionID   string
	directory   Directory
	persistence Persistence
	issuer      Issuer
	tokens      TokenSink
	logger      *slog.Logger

	mu            sync.Mutex
	user          *User
	authenticated bool
	loading       bool
	errMsg        string
}

// StoreConfig collects the store's collaborators.
type StoreConfig struct {
	SessionID   string
	Directory   Directory
	Persistence Persistence
	Issuer      Issuer
	Tokens      TokenSink
	Logger      *slog.Logger
}

// NewStore constructs a logged-out Store.
func NewStore(cfg StoreConfig) *Store {
	return &Store{
		sessionID:   cfg.SessionID,
		directory:   cfg.Directory,
		persistence: cfg.Persistence,
		issuer:      cfg.Issuer,
		tokens:      cfg.Tokens,
		logger:      cfg.Logger,
	}
}

// SessionID returns the identifier this store is bound to.
func (s *Store) SessionID() string { return s.sessionID }

// Rehydrate loads the durable pair from persistence. Loading and error
// state start at their defaults regardless of the stored value; a record
// claiming authentication without a user is discarded as corrupt. The
// user's permission set is re-derived from the role table, so a stale or
// unknown persisted role degrades to zero permissions.
func (s *Store) Rehydrate(ctx context.Context) error {
	rec, ok, err := s.persistence.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errMsg = ""
	if !ok || !rec.IsAuthenticated || rec.CurrentUser == nil {
		s.user = nil
		s.authenticated = false
		return nil
	}
	user := *rec.CurrentUser
	user.Permissions = rbac.PermissionsForRole(user.Role)
	s.user = &user
	s.authenticated = true
	return nil
}

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	User        *User
	AccessToken string
}

// Login resolves credentials against the directory and, on success,
// installs the user with permissions derived from their role, persists
// the durable pair and writes the access-token artifact. On failure the
// session stays logged out and the error message is retained for display.
//
// The credential lookup runs outside the store lock; when two logins
// race, whichever completes last wins the whole state.
func (s *Store) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	identity, err := s.directory.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.user = nil
		s.authenticated = false
		if errors.Is(err, ErrInvalidCredentials) {
			s.errMsg = "invalid username or password"
		} else {
			s.errMsg = "login failed, try again"
		}
		s.persistLocked(ctx)
		s.mu.Unlock()
		return LoginResult{}, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:          identity.ID,
		Username:    identity.Username,
		Email:       identity.Email,
		Role:        identity.Role,
		Permissions: rbac.PermissionsForRole(identity.Role),
		CreatedAt:   identity.CreatedAt,
		LastLogin:   &now,
	}

	var token string
	if s.issuer != nil {
		token, err = s.issuer.Issue(user)
		if err != nil {
			s.warn(ctx, "issue token", err)
			token = ""
		}
	}

	s.mu.Lock()
	s.loading = false
	s.errMsg = ""
	s.user = user
	s.authenticated = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	if token != "" && s.tokens != nil {
		if err := s.tokens.Put(ctx, s.sessionID, token); err != nil {
			s.warn(ctx, "store token artifact", err)
		}
	}

	result := *user
	return LoginResult{User: &result, AccessToken: token}, nil
}

// Logout clears the session. Calling it while already logged out is a
// no-op, not an error.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.errMsg = ""
	s.loading = false
	if err := s.persistence.Clear(ctx); err != nil {
		s.warn(ctx, "clear session", err)
	}
	s.mu.Unlock()

	if s.tokens != nil {
		if err := s.tokens.Delete(ctx, s.sessionID); err != nil {
			s.warn(ctx, "delete token artifact", err)
		}
	}
}

// SetUser installs a user directly, as a token-refresh collaborator
// would. Permissions are re-derived from the role table so the
// denormalized set can never silently diverge. A nil user logs out.
func (s *Store) SetUser(ctx context.Context, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		s.authenticated = false
		s.persistLocked(ctx)
		return
	}
	u := *user
	u.Permissions = rbac.PermissionsForRole(u.Role)
	s.user = &u
	s.authenticated = true
	s.persistLocked(ctx)
}

// SetLoading toggles the transient loading flag.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// SetError sets the transient error message; empty clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

// Loading reports the transient loading flag.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the transient error message, "" when none.
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is logged in.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Granted returns the session's permission set; empty when logged out.
func (s *Store) Granted() []rbac.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	out := make([]rbac.Permission, len(s.user.Permissions))
	copy(out, s.user.Permissions)
	return out
}

// HasPermission reports whether the session holds permission. A logged-out
// session holds none.
func (s *Store) HasPermission(p rbac.Permission) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	for _, granted := range s.user.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the session holds at least one of the
// given permissions; an empty list is never satisfied.
func (s *Store) HasAnyPermission(perms []rbac.Permission) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	set := permissionSet(s.user.Permissions)
	for _, p := range perms {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the session holds every given
// permission. An empty list is vacuously true even without a user: "this
// route requires nothing" is not the same question as "is anyone logged
// in", which is the route guard's to ask.
func (s *Store) HasAllPermissions(perms []rbac.Permission) bool {
	if len(perms) == 0 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	set := permissionSet(s.user.Permissions)
	for _, p := range perms {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// RoleDisplayName returns the label for the current user's role, "" when
// logged out.
func (s *Store) RoleDisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return rbac.RoleDisplayName(s.user.Role)
}

// persistLocked writes the durable pair; the caller holds s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	rec := SessionRecord{IsAuthenticated: s.authenticated}
	if s.user != nil {
		u := *s.user
		rec.CurrentUser = &u
	}
	if err := s.persistence.Save(ctx, rec); err != nil {
		s.warn(ctx, "persist session", err)
	}
}

func (s *Store) warn(ctx context.Context, msg string, err error) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, slog.Any("error", err))
	}
}

func permissionSet(perms []rbac.Permission) map[rbac.Permission]struct{} {
	set := make(map[rbac.Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
