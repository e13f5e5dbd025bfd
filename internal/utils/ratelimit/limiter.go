// Package ratelimit provides per-client rate limiting for protecting API endpoints.
// Each client gets a token bucket from golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the token bucket for one client identity, together with the
// last time it was used so idle buckets can be evicted.
type Limiter struct {
	bucket *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// NewLimiter creates a new rate limiter with the specified rate and burst capacity.
//
// Parameters:
//   - rps: The number of tokens per second to add to the bucket
//   - burst: The maximum capacity of the bucket
//
// Returns:
//   - A configured rate limiter with a full bucket
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		bucket:   rate.NewLimiter(rate.Limit(rps), burst),
		lastSeen: time.Now(),
	}
}

// Allow reports whether a request may proceed now, consuming a token if so.
func (l *Limiter) Allow() bool {
	return l.current().Allow()
}

// RetryAfter returns how long a rejected client should wait for the next token.
// It does not consume a token.
func (l *Limiter) RetryAfter() time.Duration {
	r := l.current().Reserve()
	if !r.OK() {
		return time.Second
	}
	delay := r.Delay()
	r.Cancel()
	return delay
}

// ResetTokens refills the bucket. This is useful for administrative actions or testing.
func (l *Limiter) ResetTokens() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bucket = rate.NewLimiter(l.bucket.Limit(), l.bucket.Burst())
	l.lastSeen = time.Now()
}

// current marks the limiter as used and returns its bucket.
func (l *Limiter) current() *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSeen = time.Now()
	return l.bucket
}

// idleSince reports how long the limiter has gone unused.
func (l *Limiter) idleSince(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Sub(l.lastSeen)
}
