package server

import (
	"sync"
	"time"
)

type rateWindow struct {
	count        int
	firstRequest time.Time
}

// RateLimiter is a fixed-window per-client request counter. The window
// resets on the first request after it expires; stale entries are dropped
// opportunistically during Allow.
type RateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	requests map[string]*rateWindow

	// now is injectable for deterministic tests.
	now func() time.Time
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:   window,
		max:      max,
		requests: make(map[string]*rateWindow),
		now:      time.Now,
	}
}

// Allow records one request for the given client key and reports whether it
// is within the current window's budget.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, exists := l.requests[key]
	if !exists || now.Sub(entry.firstRequest) > l.window {
		l.requests[key] = &rateWindow{count: 1, firstRequest: now}
		return true
	}

	entry.count++
	return entry.count <= l.max
}

// sweep drops entries whose window expired long ago to keep the map bounded.
func (l *RateLimiter) sweep(now time.Time) {
	if len(l.requests) < 1024 {
		return
	}
	for key, entry := range l.requests {
		if now.Sub(entry.firstRequest) > l.window {
			delete(l.requests, key)
		}
	}
}
