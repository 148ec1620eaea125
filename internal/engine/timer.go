package engine

import (
	"sync"
	"time"
)

// Countdown is a single-question countdown with guaranteed cancellation.
// Expiry fires the callback at most once; Cancel is idempotent and wins any
// race that it can still win. A fired or cancelled countdown is inert.
type Countdown struct {
	mu        sync.Mutex
	timer     *time.Timer
	deadline  time.Time
	fired     bool
	cancelled bool
}

// NewCountdown arms a countdown for d and invokes onExpire from the timer
// goroutine when it elapses. The engine treats expiry as advisory: onExpire
// must not mutate session state.
func NewCountdown(d time.Duration, onExpire func()) *Countdown {
	c := &Countdown{deadline: time.Now().Add(d)}
	c.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		if c.cancelled {
			c.mu.Unlock()
			return
		}
		c.fired = true
		c.mu.Unlock()
		if onExpire != nil {
			onExpire()
		}
	})
	return c
}

// Cancel stops the countdown if it has not fired yet.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled || c.fired {
		return
	}
	c.cancelled = true
	c.timer.Stop()
}

// Remaining reports the time left, clamped at zero.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fired || c.cancelled {
		return 0
	}
	if r := time.Until(c.deadline); r > 0 {
		return r
	}
	return 0
}

// Expired reports whether the countdown ran to expiry.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired
}
