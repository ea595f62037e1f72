package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisLookRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisLookRateLimiter
		if !l.Allow("daily_look") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		l := &redisLookRateLimiter{
			client: &mockRedisEvaler{result: 1},
			window: time.Minute,
			max:    3,
			prefix: "look:rl:",
		}
		if l.Allow("   ") {
			t.Fatalf("expected empty key to be rejected")
		}
	})

	t.Run("under limit allowed", func(t *testing.T) {
		evaler := &mockRedisEvaler{result: 3}
		l := &redisLookRateLimiter{client: evaler, window: time.Minute, max: 3, prefix: "look:rl:"}
		if !l.Allow("daily_look") {
			t.Fatalf("count at max must still be allowed")
		}
		if len(evaler.lastKeys) != 1 || evaler.lastKeys[0] != "look:rl:daily_look" {
			t.Fatalf("unexpected redis key: %v", evaler.lastKeys)
		}
	})

	t.Run("over limit denied", func(t *testing.T) {
		l := &redisLookRateLimiter{client: &mockRedisEvaler{result: 4}, window: time.Minute, max: 3, prefix: "look:rl:"}
		if l.Allow("daily_look") {
			t.Fatalf("count over max must be denied")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisLookRateLimiter{client: &mockRedisEvaler{err: errors.New("down")}, window: time.Minute, max: 3, prefix: "look:rl:"}
		if !l.Allow("daily_look") {
			t.Fatalf("redis failure must fail open")
		}
	})
}
