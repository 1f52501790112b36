package scanguard

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
)

// newTestRedis connects to REDIS_ADDR. The test is skipped when the
// variable is unset.
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	require.NoError(t, rdb.Ping(context.Background()).Err(), "failed to connect to redis")
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// testEmployeeID keeps keys from different runs apart.
func testEmployeeID(t *testing.T, rdb *redis.Client) string {
	t.Helper()
	id := "TEST-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		_ = rdb.Del(context.Background(), lockPrefix+id, cooldownPrefix+id).Err()
	})
	return id
}

func TestRedisGuard_CooldownExpires(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)
	id := testEmployeeID(t, rdb)
	g := NewRedisGuard(rdb, 2*time.Second, time.Second)

	in, err := g.InCooldown(ctx, id)
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, g.MarkScanned(ctx, id))

	in, err = g.InCooldown(ctx, id)
	require.NoError(t, err)
	assert.True(t, in)

	ttl, err := rdb.TTL(ctx, cooldownPrefix+id).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 2*time.Second)

	assert.Eventually(t, func() bool {
		in, err := g.InCooldown(ctx, id)
		return err == nil && !in
	}, 4*time.Second, 100*time.Millisecond)
}

func TestRedisGuard_ZeroCooldownDisables(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)
	id := testEmployeeID(t, rdb)
	g := NewRedisGuard(rdb, 0, time.Second)

	require.NoError(t, g.MarkScanned(ctx, id))

	in, err := g.InCooldown(ctx, id)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestRedisGuard_LockIsExclusive(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)
	id := testEmployeeID(t, rdb)
	g := NewRedisGuard(rdb, time.Minute, 5*time.Second)

	release, err := g.Lock(ctx, id)
	require.NoError(t, err)

	_, err = g.Lock(ctx, id)
	assert.ErrorIs(t, err, attendance.ErrScanInProgress)

	require.NoError(t, release(ctx))

	release, err = g.Lock(ctx, id)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestRedisGuard_ReleaseAfterExpiry(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)
	id := testEmployeeID(t, rdb)
	g := NewRedisGuard(rdb, time.Minute, 100*time.Millisecond)

	release, err := g.Lock(ctx, id)
	require.NoError(t, err)

	time.Sleep(250 * time.Millisecond)
	assert.NoError(t, release(ctx))
}
