package service

import (
	"sync"
	"time"
)

// SlidingWindow is an in-memory per-key rate limiter capping the number
// of events per key inside a rolling window. It is safe for concurrent
// use. Stale keys are automatically cleaned up.
type SlidingWindow struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
}

// NewSlidingWindow creates a rate limiter allowing up to max events per
// key within the given window. It starts a background goroutine that
// periodically removes stale keys.
func NewSlidingWindow(max int, window time.Duration) *SlidingWindow {
	sw := &SlidingWindow{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
	}
	go sw.cleanup()
	return sw
}

// Allow reports whether the given key may proceed. Each allowed call
// counts against the key's window; rejected calls do not.
func (sw *SlidingWindow) Allow(key string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-sw.window)

	recent := sw.hits[key][:0]
	for _, t := range sw.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= sw.max {
		sw.hits[key] = recent
		return false
	}

	sw.hits[key] = append(recent, now)
	return true
}

// cleanup runs periodically and removes keys with no activity inside
// the current window.
func (sw *SlidingWindow) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		sw.mu.Lock()
		cutoff := time.Now().Add(-sw.window)
		for key, times := range sw.hits {
			if len(times) == 0 || !times[len(times)-1].After(cutoff) {
				delete(sw.hits, key)
			}
		}
		sw.mu.Unlock()
	}
}
