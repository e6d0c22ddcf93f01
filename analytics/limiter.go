package analytics

import (
	"sync"
	"time"
)

// visitLimiter caps recorded visits per IP hash per window so a looping
// client cannot flood the visits table.
type visitLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	reset  time.Time
	max    int
	window time.Duration
}

func newVisitLimiter(max int, window time.Duration) *visitLimiter {
	return &visitLimiter{
		counts: make(map[string]int),
		reset:  time.Now().Add(window),
		max:    max,
		window: window,
	}
}

// Allow records an attempt for key and reports whether it is within budget.
// Counts reset wholesale when the window rolls over.
func (l *visitLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.reset) {
		l.counts = make(map[string]int)
		l.reset = now.Add(l.window)
	}
	l.counts[key]++
	return l.counts[key] <= l.max
}
