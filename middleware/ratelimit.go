// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/auth"
)

// limiterIdleTTL is how long an unused key keeps its bucket.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter manages an independent token bucket per key.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

// NewKeyedRateLimiter creates a limiter allowing rps requests per second per
// key with the given burst. Idle keys are swept in the background until Stop.
func NewKeyedRateLimiter(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		done:     make(chan struct{}),
	}

	go krl.sweep(limiterIdleTTL)

	return krl
}

// Allow reports whether a request for key may proceed now.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	krl.mu.Lock()
	e, ok := krl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.limiters[key] = e
	}
	e.lastSeen = time.Now()
	krl.mu.Unlock()

	return e.limiter.Allow()
}

// Stop shuts down the sweeper.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) sweep(ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case now := <-ticker.C:
			krl.evictIdle(now.Add(-ttl))
		}
	}
}

func (krl *KeyedRateLimiter) evictIdle(cutoff time.Time) {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	for key, e := range krl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(krl.limiters, key)
		}
	}
}

// RateLimit throttles requests per signed-in user. It runs behind
// RequireSession; a request with no session is rejected as unauthorized.
func RateLimit(krl *KeyedRateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	retryAfter := "1"
	if krl.limit > 0 {
		retryAfter = strconv.Itoa(max(1, int(1/float64(krl.limit))))
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID := auth.UserID(r.Context())
			if userID == "" {
				WriteError(w, r, apperr.Unauthorized("a valid session is required"))
				return
			}

			if !krl.Allow("user:" + userID) {
				w.Header().Set("Retry-After", retryAfter)
				ErrorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next(w, r)
		}
	}
}
