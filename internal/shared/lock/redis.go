package lock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"succession-backend/internal/shared/telemetry"
)

const (
	defaultLockTTL   = 10 * time.Second
	defaultRetryWait = 25 * time.Millisecond
	keyPrefix        = "lock:"
)

// Deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker takes locks with SET NX PX so several API replicas share one view.
type RedisLocker struct {
	Client    redis.UniversalClient
	TTL       time.Duration
	RetryWait time.Duration
}

// NewRedisLocker connects to addr and verifies it with a ping.
func NewRedisLocker(ctx context.Context, addr string) (*RedisLocker, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisLocker{Client: rdb, TTL: defaultLockTTL, RetryWait: defaultRetryWait}, nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	ttl := l.TTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	wait := l.RetryWait
	if wait <= 0 {
		wait = defaultRetryWait
	}
	redisKey := keyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.Client.SetNX(ctx, redisKey, token, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrNotAcquired
			}
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ErrNotAcquired
		case <-timer.C:
		}
	}

	return func() {
		// Release on a fresh context so a cancelled request still frees the key.
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, l.Client, []string{redisKey}, token).Err(); err != nil && err != redis.Nil {
			telemetry.Warn("lock.release_failed", map[string]any{"key": key, "error": err})
		}
	}, nil
}

// Close releases the underlying client.
func (l *RedisLocker) Close() error {
	if l == nil || l.Client == nil {
		return nil
	}
	return l.Client.Close()
}
