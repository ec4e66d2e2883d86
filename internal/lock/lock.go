// Package lock serializes per-vendor ledger writes across API replicas.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrBusy is returned when another request holds the lock past the retry window.
var ErrBusy = errors.New("lock: resource busy")

// Locker runs fn while holding the named lock.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// LedgerKey is the lock key for one vendor's balance.
func LedgerKey(vendorID string) string { return fmt.Sprintf("ledger:%s", vendorID) }

type redisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedis returns a Locker backed by bsm/redislock. Waiting callers retry
// every 50ms until the TTL elapses.
func NewRedis(rdb redis.UniversalClient, ttl time.Duration, log *zap.Logger) Locker {
	return &redisLocker{client: redislock.New(rdb), ttl: ttl, log: log}
}

func (l *redisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), int(l.ttl/(50*time.Millisecond))),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		l.log.Warn("lock not obtained", zap.String("key", key))
		return ErrBusy
	}
	if err != nil {
		return fmt.Errorf("obtain lock %s: %w", key, err)
	}
	defer func() {
		// A released-after-expiry lock is not an error for the caller.
		if err := lk.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn("lock release failed", zap.String("key", key), zap.Error(err))
		}
	}()
	return fn(ctx)
}

type noop struct{}

// Noop runs fn without coordination. Used when REDIS_ADDR is unset.
func Noop() Locker { return noop{} }

func (noop) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
