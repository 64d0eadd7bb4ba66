// Package ratelimit provides the per-client request rate limit policy
// consulted by the middleware before handler dispatch.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lanternworks/api-template/internal/metrics"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// redisLimiter implements sliding-window limiting on Redis so the decision
// holds across restarts (and across replicas, should there ever be any).
type redisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedis builds a limiter on an existing Redis client. The client is
// shared with the cache layer and not closed here.
func NewRedis(client *redis.Client, limit int, window time.Duration) Limiter {
	return &redisLimiter{client: client, limit: int64(limit), window: window}
}

// Lua keeps remove-count-add atomic under concurrent requests.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, window_start)

local current = redis.call('ZCARD', key)

if current < limit then
	redis.call('ZADD', key, now, now)
	redis.call('EXPIRE', key, 60)
	return 1
else
	return 0
end
`

func (r *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - r.window.Nanoseconds()

	result, err := r.client.Eval(ctx, slidingWindowScript,
		[]string{"ratelimit:" + key}, now, windowStart, r.limit).Int()
	if err != nil {
		return false, err
	}

	allowed := result == 1
	if !allowed {
		metrics.RateLimitHits.WithLabelValues(key).Inc()
	}
	return allowed, nil
}

func (r *redisLimiter) Close() error {
	return nil
}

// memoryLimiter is the in-process fallback used when no Redis is configured:
// a fixed window counter per key.
type memoryLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*windowCount
	now    func() time.Time
}

type windowCount struct {
	start time.Time
	n     int
}

// NewMemory builds an in-process fixed-window limiter.
func NewMemory(limit int, window time.Duration) Limiter {
	return &memoryLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
		now:    time.Now,
	}
}

func (m *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	wc, ok := m.counts[key]
	if !ok || now.Sub(wc.start) >= m.window {
		// New window; also prune other expired keys so the map stays bounded.
		for k, v := range m.counts {
			if now.Sub(v.start) >= m.window {
				delete(m.counts, k)
			}
		}
		m.counts[key] = &windowCount{start: now, n: 1}
		return true, nil
	}

	if wc.n >= m.limit {
		metrics.RateLimitHits.WithLabelValues(key).Inc()
		return false, nil
	}
	wc.n++
	return true, nil
}

func (m *memoryLimiter) Close() error {
	return nil
}

// NoOp always allows requests. Used when rate limiting is disabled.
type NoOp struct{}

func (NoOp) Allow(context.Context, string) (bool, error) { return true, nil }
func (NoOp) Close() error                                { return nil }
