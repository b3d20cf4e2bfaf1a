package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether the client identified by key may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, reset time.Time, err error)
	Limit() int
}

// MemoryLimiter is a per-process sliding window limiter.
type MemoryLimiter struct {
	requests      int
	window        time.Duration
	clients       map[string]*clientWindow
	mu            sync.RWMutex
	cleanupTicker *time.Ticker
	done          chan struct{}
}

type clientWindow struct {
	timestamps []time.Time
	mu         sync.Mutex
}

func normalizeLimits(requests, windowSeconds int) (int, time.Duration) {
	if requests <= 0 {
		requests = 100
	}
	if windowSeconds <= 0 {
		windowSeconds = 60
	}
	return requests, time.Duration(windowSeconds) * time.Second
}

func NewMemoryLimiter(requests int, windowSeconds int) *MemoryLimiter {
	n, window := normalizeLimits(requests, windowSeconds)

	rl := &MemoryLimiter{
		requests: n,
		window:   window,
		clients:  make(map[string]*clientWindow),
		done:     make(chan struct{}),
	}

	rl.cleanupTicker = time.NewTicker(time.Minute)
	go rl.cleanup()

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *MemoryLimiter) Stop() {
	rl.cleanupTicker.Stop()
	close(rl.done)
}

func (rl *MemoryLimiter) cleanup() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanupTicker.C:
		}

		rl.mu.Lock()
		now := time.Now()
		for key, client := range rl.clients {
			client.mu.Lock()
			if len(client.timestamps) == 0 || now.Sub(client.timestamps[len(client.timestamps)-1]) > rl.window*2 {
				delete(rl.clients, key)
			}
			client.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

func (rl *MemoryLimiter) Limit() int {
	return rl.requests
}

func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	rl.mu.RLock()
	client, exists := rl.clients[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		if client, exists = rl.clients[key]; !exists {
			client = &clientWindow{
				timestamps: make([]time.Time, 0, rl.requests),
			}
			rl.clients[key] = client
		}
		rl.mu.Unlock()
	}

	client.mu.Lock()
	defer client.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	// drop timestamps that slid out of the window
	keep := len(client.timestamps)
	for i, ts := range client.timestamps {
		if ts.After(windowStart) {
			keep = i
			break
		}
	}
	client.timestamps = client.timestamps[keep:]

	if len(client.timestamps) >= rl.requests {
		return false, 0, client.timestamps[0].Add(rl.window), nil
	}

	client.timestamps = append(client.timestamps, now)
	return true, rl.requests - len(client.timestamps), now.Add(rl.window), nil
}

// RedisLimiter is a fixed window counter shared by every API instance.
type RedisLimiter struct {
	client   redis.Cmdable
	requests int
	window   time.Duration
}

func NewRedisLimiter(client redis.Cmdable, requests int, windowSeconds int) *RedisLimiter {
	n, window := normalizeLimits(requests, windowSeconds)
	return &RedisLimiter{client: client, requests: n, window: window}
}

func (rl *RedisLimiter) Limit() int {
	return rl.requests
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	start := time.Now().Truncate(rl.window)
	reset := start.Add(rl.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, start.Unix())

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, rl.requests, reset, err
	}

	count := int(incr.Val())
	if count > rl.requests {
		return false, 0, reset, nil
	}
	return true, rl.requests - count, reset, nil
}

// RateLimit rejects clients over the limit with 429. A limiter error lets
// the request through; losing Redis must not take the API down.
func RateLimit(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, resetTime, err := limiter.Allow(r.Context(), getClientIP(r))
			if err != nil {
				logger.Warn("rate limiter unavailable", "error", err)
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds())+1, 10))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
