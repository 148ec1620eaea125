package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdownFiresOnce(t *testing.T) {
	var fired atomic.Int32
	c := NewCountdown(10*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(50 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Fatalf("onExpire fired %d times, want 1", got)
	}
	if !c.Expired() {
		t.Error("Expired() = false after firing")
	}
	if r := c.Remaining(); r != 0 {
		t.Errorf("Remaining() = %v after firing, want 0", r)
	}
}

func TestCountdownCancelPreventsFire(t *testing.T) {
	var fired atomic.Int32
	c := NewCountdown(20*time.Millisecond, func() { fired.Add(1) })
	c.Cancel()

	time.Sleep(50 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Fatalf("onExpire fired %d times after Cancel, want 0", got)
	}
	if c.Expired() {
		t.Error("Expired() = true for a cancelled countdown")
	}
}

func TestCountdownCancelIsIdempotent(t *testing.T) {
	c := NewCountdown(time.Hour, nil)
	c.Cancel()
	c.Cancel()

	if r := c.Remaining(); r != 0 {
		t.Errorf("Remaining() = %v after Cancel, want 0", r)
	}
}

func TestCountdownCancelAfterFireKeepsExpired(t *testing.T) {
	c := NewCountdown(5*time.Millisecond, func() {})
	time.Sleep(30 * time.Millisecond)

	c.Cancel()

	if !c.Expired() {
		t.Error("Cancel after expiry must not clear Expired()")
	}
}

func TestCountdownRemainingCountsDown(t *testing.T) {
	c := NewCountdown(time.Hour, nil)
	defer c.Cancel()

	r := c.Remaining()
	if r <= 0 || r > time.Hour {
		t.Errorf("Remaining() = %v, want within (0, 1h]", r)
	}
}
