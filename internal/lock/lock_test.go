package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocker(t *testing.T, ttl time.Duration) (Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedis(rdb, ttl, zap.NewNop()), mr
}

func TestLedgerKey(t *testing.T) {
	assert.Equal(t, "ledger:abc", LedgerKey("abc"))
}

func TestRedisLocker_HoldsKeyDuringFn(t *testing.T) {
	l, mr := newTestLocker(t, 5*time.Second)

	var held bool
	err := l.WithLock(context.Background(), "ledger:v1", func(ctx context.Context) error {
		held = mr.Exists("ledger:v1")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, held)
	assert.False(t, mr.Exists("ledger:v1"), "lock must be released after fn")
}

func TestRedisLocker_PropagatesFnError(t *testing.T) {
	l, mr := newTestLocker(t, 5*time.Second)
	boom := errors.New("boom")

	err := l.WithLock(context.Background(), "ledger:v1", func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("ledger:v1"))
}

func TestRedisLocker_BusyWhenHeldElsewhere(t *testing.T) {
	l, mr := newTestLocker(t, 200*time.Millisecond)
	require.NoError(t, mr.Set("ledger:v1", "other-holder"))

	called := false
	err := l.WithLock(context.Background(), "ledger:v1", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrBusy)
	assert.False(t, called)
}

func TestNoop(t *testing.T) {
	called := false
	err := Noop().WithLock(context.Background(), "k", func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
