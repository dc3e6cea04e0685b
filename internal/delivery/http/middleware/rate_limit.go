package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"trendora-backend/pkg/logger"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client IP. Buckets for idle clients
// are reaped on a timer so the map stays bounded.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	limit rate.Limit
	burst int

	reapEvery time.Duration
	idleTTL   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, reapEvery, idleTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:   make(map[string]*bucket),
		limit:     limit,
		burst:     burst,
		reapEvery: reapEvery,
		idleTTL:   idleTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.reapLoop()
	return rl
}

func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			if !rl.bucketFor(ip).Allow() {
				logger.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("Rate limit exceeded")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) bucketFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

func (rl *RateLimiter) reapLoop() {
	ticker := time.NewTicker(rl.reapEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.reap()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) reap() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if time.Since(b.lastSeen) > rl.idleTTL {
			delete(rl.buckets, ip)
		}
	}
}

// Shutdown stops the reaper goroutine.
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}
