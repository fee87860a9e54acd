package generation

import (
	"sync"
	"time"
)

// Default admission-control settings, tunable per deployment.
const (
	DefaultMaxRequests = 10
	DefaultRateWindow  = 60 * time.Second
)

// RateLimiter bounds outbound model calls with a sliding time window: at
// most maxRequests admissions within any window-sized interval. It is safe
// for concurrent use; one limiter represents one process-wide budget.
type RateLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	timestamps  []time.Time

	// now is swapped out in tests to control the clock.
	now func() time.Time
}

// NewRateLimiter creates a RateLimiter admitting at most maxRequests calls
// per window. Non-positive arguments fall back to the defaults.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow reports whether a new model call is admitted. On admission the
// current timestamp is recorded against the window budget.
func (l *RateLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.timestamps) >= l.maxRequests {
		return false
	}
	l.timestamps = append(l.timestamps, now)
	return true
}

// TimeUntilNextSlot returns how long a denied caller should wait before the
// oldest in-window admission expires. Returns zero when a slot is already
// free.
func (l *RateLimiter) TimeUntilNextSlot() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.timestamps) < l.maxRequests {
		return 0
	}
	wait := l.window - now.Sub(l.timestamps[0])
	if wait < 0 {
		return 0
	}
	return wait
}

// prune drops timestamps older than the window. Caller must hold mu.
func (l *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	idx := 0
	for idx < len(l.timestamps) && !l.timestamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		l.timestamps = append(l.timestamps[:0], l.timestamps[idx:]...)
	}
}
