package audit

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/vantage-dsp/vantage/internal/rbac"
	_ "github.com/vantage-dsp/vantage/testing"
)

func newTestTrail(t *testing.T, max int64) (*Trail, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTrail(client, max), mr
}

func TestTrailAppendAndRecent(t *testing.T) {
	trail, _ := newTestTrail(t, 10)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, trail.Append(ctx, Entry{
			UserID:   "u-" + strconv.Itoa(i),
			Username: "user" + strconv.Itoa(i),
			Role:     rbac.RoleEmployeeAdmin,
			At:       time.Now().UTC(),
		}))
	}

	entries, err := trail.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	require.Equal(t, "u-2", entries[0].UserID)
	require.Equal(t, "u-0", entries[2].UserID)
}

func TestTrailEnforcesCap(t *testing.T) {
	trail, _ := newTestTrail(t, 5)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, trail.Append(ctx, Entry{UserID: "u-" + strconv.Itoa(i)}))
	}

	entries, err := trail.Recent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	require.Equal(t, "u-11", entries[0].UserID)
	require.Equal(t, "u-7", entries[4].UserID)
}

func TestTrailRecentSkipsUndecodable(t *testing.T) {
	trail, mr := newTestTrail(t, 10)
	ctx := context.Background()

	require.NoError(t, trail.Append(ctx, Entry{UserID: "u-good"}))
	_, err := mr.Lpush("vantage:audit:logins", "{broken")
	require.NoError(t, err)

	entries, err := trail.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "u-good", entries[0].UserID)
}

func TestTrailRecentOnEmptyTrail(t *testing.T) {
	trail, _ := newTestTrail(t, 10)
	entries, err := trail.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}
