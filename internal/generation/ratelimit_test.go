package generation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestRateLimiterBoundary(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	limiter := NewRateLimiter(2, 60*time.Second)
	limiter.now = clock.Now

	// First two calls within the window are admitted, the third is denied.
	assert.True(t, limiter.Allow())
	clock.Advance(time.Second)
	assert.True(t, limiter.Allow())
	clock.Advance(time.Second)
	assert.False(t, limiter.Allow())

	// After the window elapses past the oldest admission, a call is
	// admitted again.
	clock.Advance(60 * time.Second)
	assert.True(t, limiter.Allow())
}

func TestRateLimiterTimeUntilNextSlot(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	limiter := NewRateLimiter(1, 60*time.Second)
	limiter.now = clock.Now

	assert.Zero(t, limiter.TimeUntilNextSlot(), "empty window has a free slot")

	assert.True(t, limiter.Allow())
	clock.Advance(20 * time.Second)
	assert.Equal(t, 40*time.Second, limiter.TimeUntilNextSlot())

	clock.Advance(41 * time.Second)
	assert.Zero(t, limiter.TimeUntilNextSlot())
}

func TestRateLimiterDefaults(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(0, 0)
	assert.Equal(t, DefaultMaxRequests, limiter.maxRequests)
	assert.Equal(t, DefaultRateWindow, limiter.window)
}
