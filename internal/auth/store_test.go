package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantage-dsp/vantage/internal/rbac"
	_ "github.com/vantage-dsp/vantage/testing"
)

type memoryPersistence struct {
	mu      sync.Mutex
	rec     SessionRecord
	stored  bool
	saveErr error
	loadErr error
}

func (p *memoryPersistence) Save(ctx context.Context, rec SessionRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.rec = rec
	p.stored = true
	return nil
}

func (p *memoryPersistence) Load(ctx context.Context) (SessionRecord, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return SessionRecord{}, false, p.loadErr
	}
	return p.rec, p.stored, nil
}

func (p *memoryPersistence) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rec = SessionRecord{}
	p.stored = false
	return nil
}

type stubDirectory struct {
	identity *Identity
	err      error
}

func (d *stubDirectory) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.identity, nil
}

type recordingSink struct {
	mu      sync.Mutex
	tokens  map[string]string
	deleted []string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{tokens: make(map[string]string)}
}

func (s *recordingSink) Put(ctx context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sessionID] = token
	return nil
}

func (s *recordingSink) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sessionID)
	s.deleted = append(s.deleted, sessionID)
	return nil
}

func trafficIdentity() *Identity {
	return &Identity{
		ID:       "u-1002",
		Username: "traffic",
		Email:    "traffic@vantage.test",
		Role:     rbac.RoleEmployeeTraffic,
	}
}

func newTestStore(dir Directory, persistence Persistence, sink TokenSink) *Store {
	return NewStore(StoreConfig{
		SessionID:   "sess-1",
		Directory:   dir,
		Persistence: persistence,
		Issuer:      NewJWTIssuer("test-secret", "vantage-test"),
		Tokens:      sink,
	})
}

func TestLoginDerivesPermissionsFromRole(t *testing.T) {
	persistence := &memoryPersistence{}
	sink := newRecordingSink()
	store := newTestStore(&stubDirectory{identity: trafficIdentity()}, persistence, sink)

	result, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.NoError(t, err)
	require.True(t, store.Authenticated())
	require.False(t, store.Loading())
	require.Empty(t, store.Error())

	require.Equal(t, rbac.RoleEmployeeTraffic, result.User.Role)
	require.ElementsMatch(t, rbac.PermissionsForRole(rbac.RoleEmployeeTraffic), result.User.Permissions)
	require.NotNil(t, result.User.LastLogin)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, result.AccessToken, sink.tokens["sess-1"])

	require.True(t, persistence.stored)
	require.True(t, persistence.rec.IsAuthenticated)
	require.Equal(t, "u-1002", persistence.rec.CurrentUser.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	persistence := &memoryPersistence{}
	store := newTestStore(&stubDirectory{err: ErrInvalidCredentials}, persistence, newRecordingSink())

	_, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, store.Authenticated())
	require.Nil(t, store.CurrentUser())
	require.Equal(t, "invalid username or password", store.Error())
	require.False(t, store.Loading())
	require.False(t, persistence.rec.IsAuthenticated)
}

func TestLoginBackendFailureKeepsGenericMessage(t *testing.T) {
	store := newTestStore(&stubDirectory{err: errors.New("directory unreachable")}, &memoryPersistence{}, newRecordingSink())

	_, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
	require.Equal(t, "login failed, try again", store.Error())
}

// A failed attempt's error message clears on the next successful login.
func TestLoginSuccessClearsPreviousError(t *testing.T) {
	dir := &stubDirectory{err: ErrInvalidCredentials}
	store := newTestStore(dir, &memoryPersistence{}, newRecordingSink())

	_, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "nope"})
	require.Error(t, err)
	require.NotEmpty(t, store.Error())

	dir.err = nil
	dir.identity = trafficIdentity()
	_, err = store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.NoError(t, err)
	require.Empty(t, store.Error())
	require.True(t, store.Authenticated())
}

func TestLogoutClearsEverything(t *testing.T) {
	persistence := &memoryPersistence{}
	sink := newRecordingSink()
	store := newTestStore(&stubDirectory{identity: trafficIdentity()}, persistence, sink)

	_, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.NoError(t, err)

	store.Logout(context.Background())
	require.False(t, store.Authenticated())
	require.Nil(t, store.CurrentUser())
	require.Empty(t, store.Granted())
	require.False(t, persistence.stored)
	require.Empty(t, sink.tokens)
	require.Contains(t, sink.deleted, "sess-1")
}

func TestLogoutWhileLoggedOutIsNoOp(t *testing.T) {
	store := newTestStore(&stubDirectory{}, &memoryPersistence{}, newRecordingSink())
	store.Logout(context.Background())
	store.Logout(context.Background())
	require.False(t, store.Authenticated())
}

func TestRehydrateRestoresDurablePair(t *testing.T) {
	persistence := &memoryPersistence{}
	first := newTestStore(&stubDirectory{identity: trafficIdentity()}, persistence, newRecordingSink())
	_, err := first.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.NoError(t, err)
	first.SetError("stale message")
	first.SetLoading(true)

	second := newTestStore(&stubDirectory{}, persistence, newRecordingSink())
	require.NoError(t, second.Rehydrate(context.Background()))

	require.True(t, second.Authenticated())
	user := second.CurrentUser()
	require.NotNil(t, user)
	require.Equal(t, "traffic", user.Username)
	require.ElementsMatch(t, rbac.PermissionsForRole(rbac.RoleEmployeeTraffic), user.Permissions)

	// Only the durable pair survives; transient state starts fresh.
	require.False(t, second.Loading())
	require.Empty(t, second.Error())
}

func TestRehydrateWithNothingStoredStaysLoggedOut(t *testing.T) {
	store := newTestStore(&stubDirectory{}, &memoryPersistence{}, newRecordingSink())
	require.NoError(t, store.Rehydrate(context.Background()))
	require.False(t, store.Authenticated())
	require.Nil(t, store.CurrentUser())
}

// An authenticated record without a user is corrupt; it degrades to
// logged out instead of producing a half-authenticated session.
func TestRehydrateDiscardsUserlessRecord(t *testing.T) {
	persistence := &memoryPersistence{rec: SessionRecord{IsAuthenticated: true}, stored: true}
	store := newTestStore(&stubDirectory{}, persistence, newRecordingSink())
	require.NoError(t, store.Rehydrate(context.Background()))
	require.False(t, store.Authenticated())
}

// Persisted permissions are ignored; the role table is the only source.
func TestRehydrateRederivesPermissions(t *testing.T) {
	persistence := &memoryPersistence{
		rec: SessionRecord{
			CurrentUser: &User{
				ID:          "u-1002",
				Username:    "traffic",
				Role:        rbac.RoleEmployeeTraffic,
				Permissions: []rbac.Permission{rbac.PermManageUsers},
			},
			IsAuthenticated: true,
		},
		stored: true,
	}
	store := newTestStore(&stubDirectory{}, persistence, newRecordingSink())
	require.NoError(t, store.Rehydrate(context.Background()))
	require.False(t, store.HasPermission(rbac.PermManageUsers))
	require.ElementsMatch(t, rbac.PermissionsForRole(rbac.RoleEmployeeTraffic), store.Granted())
}

func TestRehydrateUnknownRoleHasNoPermissions(t *testing.T) {
	persistence := &memoryPersistence{
		rec: SessionRecord{
			CurrentUser:     &User{ID: "u-9", Username: "ghost", Role: "superuser"},
			IsAuthenticated: true,
		},
		stored: true,
	}
	store := newTestStore(&stubDirectory{}, persistence, newRecordingSink())
	require.NoError(t, store.Rehydrate(context.Background()))
	require.True(t, store.Authenticated())
	require.Empty(t, store.Granted())
	require.False(t, store.HasPermission(rbac.PermViewDashboard))
}

func TestRehydratePropagatesBackendError(t *testing.T) {
	persistence := &memoryPersistence{loadErr: errors.New("redis down")}
	store := newTestStore(&stubDirectory{}, persistence, newRecordingSink())
	require.Error(t, store.Rehydrate(context.Background()))
}

func TestSetUserRederivesPermissions(t *testing.T) {
	store := newTestStore(&stubDirectory{}, &memoryPersistence{}, newRecordingSink())
	store.SetUser(context.Background(), &User{
		ID:          "u-2001",
		Username:    "acme.admin",
		Role:        rbac.RoleAdvertiserAdmin,
		Permissions: []rbac.Permission{rbac.PermDeleteAdvertiser},
	})
	require.True(t, store.Authenticated())
	require.False(t, store.HasPermission(rbac.PermDeleteAdvertiser))
	require.True(t, store.HasPermission(rbac.PermApproveCreative))
}

func TestSetUserNilLogsOut(t *testing.T) {
	persistence := &memoryPersistence{}
	store := newTestStore(&stubDirectory{identity: trafficIdentity()}, persistence, newRecordingSink())
	_, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.NoError(t, err)

	store.SetUser(context.Background(), nil)
	require.False(t, store.Authenticated())
	require.Nil(t, store.CurrentUser())
	require.False(t, persistence.rec.IsAuthenticated)
}

func TestPredicatesWithoutUser(t *testing.T) {
	store := newTestStore(&stubDirectory{}, &memoryPersistence{}, newRecordingSink())

	require.False(t, store.HasPermission(rbac.PermViewDashboard))
	require.False(t, store.HasAnyPermission([]rbac.Permission{rbac.PermViewDashboard}))
	require.False(t, store.HasAnyPermission(nil))
	require.False(t, store.HasAllPermissions([]rbac.Permission{rbac.PermViewDashboard}))

	// Vacuous truth holds even with nobody logged in.
	require.True(t, store.HasAllPermissions(nil))
	require.True(t, store.HasAllPermissions([]rbac.Permission{}))
}

func TestRoleDisplayNameEmptyWhenLoggedOut(t *testing.T) {
	store := newTestStore(&stubDirectory{}, &memoryPersistence{}, newRecordingSink())
	require.Equal(t, "", store.RoleDisplayName())

	store.SetUser(context.Background(), &User{ID: "u-1001", Role: rbac.RoleEmployeeAdmin})
	require.Equal(t, "Platform Administrator", store.RoleDisplayName())
}

// Persistence failures are logged, never surfaced: the in-memory state
// stays authoritative.
func TestPersistenceFailureDoesNotFailLogin(t *testing.T) {
	persistence := &memoryPersistence{saveErr: errors.New("redis down")}
	store := newTestStore(&stubDirectory{identity: trafficIdentity()}, persistence, newRecordingSink())

	result, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	require.True(t, store.Authenticated())
}

func TestCurrentUserReturnsCopy(t *testing.T) {
	store := newTestStore(&stubDirectory{identity: trafficIdentity()}, &memoryPersistence{}, newRecordingSink())
	_, err := store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
	require.NoError(t, err)

	u := store.CurrentUser()
	u.Username = "tampered"
	require.Equal(t, "traffic", store.CurrentUser().Username)
}

// Two racing logins settle on whichever completed last; the store is
// never left half-updated.
func TestConcurrentLoginsLastWriterWins(t *testing.T) {
	dir := &stubDirectory{identity: trafficIdentity()}
	store := newTestStore(dir, &memoryPersistence{}, newRecordingSink())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Login(context.Background(), Credentials{Username: "traffic", Password: "traffic123"})
		}()
	}
	wg.Wait()

	require.True(t, store.Authenticated())
	user := store.CurrentUser()
	require.NotNil(t, user)
	require.Equal(t, "u-1002", user.ID)
	require.ElementsMatch(t, rbac.PermissionsForRole(rbac.RoleEmployeeTraffic), store.Granted())
}
