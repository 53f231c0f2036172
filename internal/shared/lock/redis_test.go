package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	l, err := NewRedisLocker(context.Background(), srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	l.RetryWait = time.Millisecond
	return l, srv
}

func TestNewRedisLockerRequiresAddr(t *testing.T) {
	_, err := NewRedisLocker(context.Background(), "  ")
	assert.Error(t, err)
}

func TestRedisLockerSerializesSameKey(t *testing.T) {
	l, srv := newTestRedisLocker(t)
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(context.Background(), l, "session-1", func(context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.False(t, srv.Exists(keyPrefix+"session-1"))
}

func TestRedisLockerHonorsContext(t *testing.T) {
	l, srv := newTestRedisLocker(t)
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrNotAcquired)

	unlock()
	assert.False(t, srv.Exists(keyPrefix+"k"))
}

func TestRedisLockerReleaseKeepsKeyRetakenAfterExpiry(t *testing.T) {
	l, srv := newTestRedisLocker(t)
	l.TTL = 50 * time.Millisecond

	unlockFirst, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	srv.FastForward(100 * time.Millisecond)
	require.False(t, srv.Exists(keyPrefix+"k"))

	unlockSecond, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	held, err := srv.Get(keyPrefix + "k")
	require.NoError(t, err)

	unlockFirst()
	after, err := srv.Get(keyPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, held, after)

	unlockSecond()
	assert.False(t, srv.Exists(keyPrefix+"k"))
}

func TestRedisLockerDifferentKeysDoNotBlock(t *testing.T) {
	l, _ := newTestRedisLocker(t)
	unlockA, err := l.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}
