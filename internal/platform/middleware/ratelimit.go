// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
	"github.com/taibuivan/tagbook/internal/platform/constants"
	"github.com/taibuivan/tagbook/internal/platform/ctxutil"
	"github.com/taibuivan/tagbook/internal/platform/respond"
)

// Limiter decides whether a client identified by key may proceed.
// retryAfter is only meaningful when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit rejects clients that exceed the limiter's budget with 429 and a
// Retry-After header. A limiter failure lets the request through.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			allowed, retryAfter, err := limiter.Allow(ctx, ClientIP(request))
			if err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "rate_limit_unavailable", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				seconds := max(int(math.Ceil(retryAfter.Seconds())), 1)
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # In-Memory Token Buckets

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per client in process memory.
// Limits are per replica.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

// NewMemoryLimiter creates a [MemoryLimiter]. Idle clients are evicted in the
// background until ctx is cancelled.
func NewMemoryLimiter(ctx context.Context, rps float64, burst int) *MemoryLimiter {
	limiter := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.evict(constants.RateLimitClientTTL)
			}
		}
	}()

	return limiter
}

// Allow implements [Limiter].
func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry, exists := m.visitors[key]
	if !exists {
		entry = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[key] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second, nil
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

func (m *MemoryLimiter) evict(ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	for key, entry := range m.visitors {
		if entry.lastSeen.Before(cutoff) {
			delete(m.visitors, key)
		}
	}
}

// # Redis Fixed Window

// RedisCounter is the subset of the go-redis client used by [RedisLimiter].
type RedisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter counts requests per client in fixed windows shared by every
// replica pointing at the same Redis.
type RedisLimiter struct {
	client RedisCounter
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter allows ceil(rps * window) requests per client per window.
func NewRedisLimiter(client RedisCounter, rps float64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  max(int64(math.Ceil(rps*window.Seconds())), 1),
		window: window,
		now:    time.Now,
	}
}

// Allow implements [Limiter].
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := r.now()
	slot := now.UnixNano() / int64(r.window)
	counterKey := fmt.Sprintf("%s%s:%d", constants.RateLimitKeyPrefix, key, slot)

	count, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("redis limiter incr: %w", err)
	}

	// The first hit in a window owns the expiry.
	if count == 1 {
		if err := r.client.Expire(ctx, counterKey, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("redis limiter expire: %w", err)
		}
	}

	if count > r.limit {
		windowEnd := time.Unix(0, (slot+1)*int64(r.window))
		return false, windowEnd.Sub(now), nil
	}
	return true, 0, nil
}
