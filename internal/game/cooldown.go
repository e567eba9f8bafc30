package game

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Cooldown gates how often one user may make an accepted guess.
// Ready only inspects the limiter; Mark consumes it, so rejected or
// no-op guesses never restart the window.
type Cooldown struct {
	mu       sync.Mutex
	window   time.Duration
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

// NewCooldown creates a per-user cooldown. A zero window disables it.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window:   window,
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
	}
}

// Ready reports whether the user may guess now.
func (c *Cooldown) Ready(userID string) bool {
	if c == nil || c.window <= 0 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lim, ok := c.limiters[userID]
	if !ok {
		return true
	}
	return lim.TokensAt(c.now()) >= 1
}

// Mark starts the user's window.
func (c *Cooldown) Mark(userID string) {
	if c == nil || c.window <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lim, ok := c.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(c.window), 1)
		c.limiters[userID] = lim
	}
	lim.AllowN(c.now(), 1)
}

// Reset forgets every user's window.
func (c *Cooldown) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limiters = make(map[string]*rate.Limiter)
}

// SetClock replaces the time source. Intended for tests.
func (c *Cooldown) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
