package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a sliding-window request limit per key.
type Limiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	window  time.Duration
	maxHits int
	now     func() time.Time
}

func NewLimiter(window time.Duration, maxHits int) *Limiter {
	return &Limiter{
		hits:    make(map[string][]time.Time),
		window:  window,
		maxHits: maxHits,
		now:     time.Now,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, hit := range l.hits[key] {
		if hit.After(windowStart) {
			kept = append(kept, hit)
		}
	}
	l.hits[key] = kept

	if len(kept) >= l.maxHits {
		return false
	}

	l.hits[key] = append(kept, now)
	return true
}
