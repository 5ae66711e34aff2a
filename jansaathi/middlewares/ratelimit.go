// jansaathi/middlewares/ratelimit.go
package middlewares

import (
	"net/http"
	"strings"
	"sync"
	"time"

	httputils "jansaathi/jansaathi/utils/http"
	"jansaathi/jansaathi/utils/logging"

	"go.uber.org/zap"
)

// RateLimiter is injected rather than held as package state so a
// multi-instance deployment can swap in a shared counter.
type RateLimiter interface {
	Allow(clientID string) bool
	Reset(clientID string)
}

// SlidingWindowLimiter counts requests per client over a trailing window.
// Single-process only: the map is guarded by a mutex, nothing is persisted,
// and restarts clear all windows.
type SlidingWindowLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	sweepAt  int
	now      func() time.Time
	requests map[string][]time.Time
}

func NewSlidingWindowLimiter(limit int, window time.Duration, sweepAt int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		limit:    limit,
		window:   window,
		sweepAt:  sweepAt,
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

// Allow records the request unless the client already has `limit` requests
// inside the window. A rejected call leaves the window unchanged.
func (l *SlidingWindowLimiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := pruneBefore(l.requests[clientID], cutoff)
	if len(recent) >= l.limit {
		l.requests[clientID] = recent
		return false
	}
	l.requests[clientID] = append(recent, now)

	if len(l.requests) > l.sweepAt {
		l.sweep(cutoff)
	}
	return true
}

func (l *SlidingWindowLimiter) Reset(clientID string) {
	l.mu.Lock()
	delete(l.requests, clientID)
	l.mu.Unlock()
}

// sweep prunes every bucket and drops the empty ones to bound memory.
// Caller holds the lock.
func (l *SlidingWindowLimiter) sweep(cutoff time.Time) {
	for id, stamps := range l.requests {
		recent := pruneBefore(stamps, cutoff)
		if len(recent) == 0 {
			delete(l.requests, id)
		} else {
			l.requests[id] = recent
		}
	}
}

func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	var recent []time.Time
	for _, t := range stamps {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

// ClientID derives the limiter bucket from proxy headers, falling back to a
// shared "unknown" bucket.
func ClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}

// RateLimit rejects over-limit clients with 429 before any work is done.
func RateLimit(limiter RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ClientID(r)
			if !limiter.Allow(clientID) {
				if logging.AppLogger != nil {
					logging.AppLogger.Warn("rate limit exceeded", zap.String("client_id", clientID))
				}
				httputils.WriteError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
