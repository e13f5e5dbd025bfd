package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is the rate category used when a caller names none or an unknown one.
const DefaultCategory = "default"

// Store manages rate limiters for multiple clients.
// It provides methods to get limiters and evicts the ones that sit idle.
type Store struct {
	// limiters maps client identifiers to their rate limiters
	limiters map[string]*Limiter

	// rates defines different rate limits for different client types
	rates map[string]Rate

	// mu protects concurrent access to the maps
	mu sync.RWMutex

	cleanupInterval time.Duration
	idleExpiry      time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a new store for managing rate limiters and starts its
// cleanup goroutine. Call Stop to end it.
//
// Parameters:
//   - defaultRate: The default rate limit for clients
//   - cleanupInterval: How often to run cleanup of idle limiters
//   - idleExpiry: How long a limiter may go unused before it is evicted
//
// Returns:
//   - A configured limiter store
func NewStore(defaultRate Rate, cleanupInterval, idleExpiry time.Duration) *Store {
	store := &Store{
		limiters:        make(map[string]*Limiter),
		rates:           map[string]Rate{DefaultCategory: defaultRate},
		cleanupInterval: cleanupInterval,
		idleExpiry:      idleExpiry,
		stop:            make(chan struct{}),
	}

	go store.cleanupRoutine()

	return store
}

// GetLimiter returns the rate limiter for the specified client, creating it
// from the category's rate on first use.
//
// Parameters:
//   - clientID: The unique identifier for the client (e.g., IP address)
//   - category: Optional category for different rate limits (e.g., "search", "auth")
//
// Returns:
//   - A rate limiter for the client
func (s *Store) GetLimiter(clientID string, category string) *Limiter {
	key := category + "|" + clientID

	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()
	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have created it while we waited for the lock
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	r, ok := s.rates[category]
	if !ok {
		r = s.rates[DefaultCategory]
	}
	limiter = NewLimiter(r.RequestsPerSecond, r.Burst)
	s.limiters[key] = limiter

	return limiter
}

// SetRate sets a rate limit for a specific category.
// Limiters already handed out keep their original rate.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[category] = rate
}

// Len returns the number of live limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup(time.Now())
		case <-s.stop:
			return
		}
	}
}

// cleanup removes limiters that have been idle longer than idleExpiry.
func (s *Store) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, limiter := range s.limiters {
		if limiter.idleSince(now) > s.idleExpiry {
			delete(s.limiters, key)
			evicted++
		}
	}

	if evicted > 0 {
		log.Debug().
			Int("evicted", evicted).
			Int("remaining", len(s.limiters)).
			Msg("Evicted idle rate limiters")
	}
}
