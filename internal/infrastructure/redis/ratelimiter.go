package redis

import (
	"context"
	"fmt"
	"time"
)

// FixedWindowLimiter implements a fixed-window rate limiter using Redis:
// INCR key; if count == 1 then EXPIRE key window.
// It shields the bcrypt path on the register/login routes from
// brute-force traffic; the per-account lockout is enforced separately at
// the credential store.
type FixedWindowLimiter struct {
	client *Client
}

func NewFixedWindowLimiter(c *Client) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: c}
}

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 0 if allowed
	Count      int
}

// AllowFixedWindow returns whether a request is allowed for key+window.
// With no Redis configured the limiter fails open.
func (l *FixedWindowLimiter) AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if l == nil || l.client == nil {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	// Lua to ensure atomic INCR + set expire on first hit.
	// returns: {count, ttl_ms}
	const lua = `
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`
	res, err := l.client.rdb.Eval(ctx, lua, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit redis eval: %w", err)
	}

	arr, ok := res.([]any)
	if !ok || len(arr) != 2 {
		return Decision{}, fmt.Errorf("ratelimit redis eval: unexpected result type")
	}

	count := int(arr[0].(int64))
	ttl := time.Duration(arr[1].(int64)) * time.Millisecond

	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(0, limit-count),
		Count:     count,
	}
	if !d.Allowed {
		d.RetryAfter = ttl
	}
	return d, nil
}
