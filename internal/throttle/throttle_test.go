package throttle

import (
	"testing"
	"time"
)

// stubClock is a manually advanced clock for window arithmetic.
type stubClock struct {
	at time.Time
}

func (c *stubClock) now() time.Time { return c.at }

func (c *stubClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func TestSlidingWindowLatchesAtLimit(t *testing.T) {
	clock := &stubClock{at: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gate := NewWithClock(Config{
		Mode:        ModeSlidingWindow,
		MaxAttempts: 5,
		Window:      60 * time.Second,
		BlockFor:    time.Hour,
	}, clock.now)
	defer gate.Stop()

	for i := 0; i < 5; i++ {
		if got := gate.Attempt(); got != Allowed {
			t.Fatalf("attempt %d: got %v, want Allowed", i+1, got)
		}
		clock.advance(2 * time.Second)
	}
	if got := gate.Attempt(); got != Blocked {
		t.Fatalf("sixth attempt: got %v, want Blocked", got)
	}
	if !gate.IsBlocked() {
		t.Fatal("expected blocked state after latch")
	}
	// No recording while blocked.
	if got := gate.Attempt(); got != Blocked {
		t.Fatalf("attempt while blocked: got %v, want Blocked", got)
	}
}

func TestSlidingWindowEvictsStaleAttempts(t *testing.T) {
	clock := &stubClock{at: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gate := NewWithClock(Config{
		Mode:        ModeSlidingWindow,
		MaxAttempts: 3,
		Window:      60 * time.Second,
		BlockFor:    time.Hour,
	}, clock.now)
	defer gate.Stop()

	gate.Attempt()
	gate.Attempt()
	clock.advance(61 * time.Second)

	// The two earlier attempts have aged out, so three more fit.
	for i := 0; i < 3; i++ {
		if got := gate.Attempt(); got != Allowed {
			t.Fatalf("attempt %d after eviction: got %v, want Allowed", i+1, got)
		}
	}
	if got := gate.Attempt(); got != Blocked {
		t.Fatalf("attempt over limit: got %v, want Blocked", got)
	}
}

func TestSlidingWindowAutoUnblocks(t *testing.T) {
	clock := &stubClock{at: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gate := NewWithClock(Config{
		Mode:        ModeSlidingWindow,
		MaxAttempts: 1,
		Window:      time.Minute,
		BlockFor:    20 * time.Millisecond,
	}, clock.now)
	defer gate.Stop()

	gate.Attempt()
	if got := gate.Attempt(); got != Blocked {
		t.Fatalf("second attempt: got %v, want Blocked", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for gate.IsBlocked() {
		if time.Now().After(deadline) {
			t.Fatal("block never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := gate.Attempt(); got != Allowed {
		t.Fatalf("attempt after unblock: got %v, want Allowed", got)
	}
}

func TestConsecutiveFailuresLatchAndReset(t *testing.T) {
	gate := New(Config{
		Mode:        ModeConsecutiveFailures,
		MaxAttempts: 10,
		BlockFor:    time.Hour,
	})
	defer gate.Stop()

	// Nine failures, then a success: the counter starts over.
	for i := 0; i < 9; i++ {
		if got := gate.RecordFailure(); got == Blocked {
			t.Fatalf("failure %d latched early", i+1)
		}
	}
	gate.RecordSuccess()

	for i := 0; i < 9; i++ {
		if got := gate.RecordFailure(); got == Blocked {
			t.Fatalf("failure %d after reset latched early", i+1)
		}
	}
	if got := gate.RecordFailure(); got != Blocked {
		t.Fatalf("tenth consecutive failure: got %v, want Blocked", got)
	}
	if got := gate.Attempt(); got != Blocked {
		t.Fatalf("attempt while blocked: got %v, want Blocked", got)
	}

	// A success while blocked does not lift the block.
	gate.RecordSuccess()
	if !gate.IsBlocked() {
		t.Fatal("success cleared an active block")
	}
}

func TestConsecutiveModeAttemptIsGateOnly(t *testing.T) {
	gate := New(Config{
		Mode:        ModeConsecutiveFailures,
		MaxAttempts: 2,
		BlockFor:    time.Hour,
	})
	defer gate.Stop()

	// Attempts alone never latch; only recorded failures count.
	for i := 0; i < 10; i++ {
		if got := gate.Attempt(); got != Allowed {
			t.Fatalf("attempt %d: got %v, want Allowed", i+1, got)
		}
	}
	if got := gate.Remaining(); got != 2 {
		t.Fatalf("remaining: got %d, want 2", got)
	}
}

func TestRemaining(t *testing.T) {
	gate := New(Config{
		Mode:        ModeConsecutiveFailures,
		MaxAttempts: 3,
		BlockFor:    time.Hour,
	})
	defer gate.Stop()

	if got := gate.Remaining(); got != 3 {
		t.Fatalf("initial remaining: got %d, want 3", got)
	}
	gate.RecordFailure()
	if got := gate.Remaining(); got != 2 {
		t.Fatalf("after one failure: got %d, want 2", got)
	}
	gate.RecordFailure()
	gate.RecordFailure()
	if got := gate.Remaining(); got != 0 {
		t.Fatalf("while blocked: got %d, want 0", got)
	}
}

func TestRegistryIsolatesKeys(t *testing.T) {
	reg := NewRegistry(Config{
		Mode:        ModeSlidingWindow,
		MaxAttempts: 1,
		Window:      time.Minute,
		BlockFor:    time.Hour,
	})
	defer reg.StopAll()

	a := reg.Get("10.0.0.1")
	b := reg.Get("10.0.0.2")

	a.Attempt()
	if got := a.Attempt(); got != Blocked {
		t.Fatalf("first key second attempt: got %v, want Blocked", got)
	}
	if got := b.Attempt(); got != Allowed {
		t.Fatalf("second key first attempt: got %v, want Allowed", got)
	}
	if reg.Get("10.0.0.1") != a {
		t.Fatal("registry returned a fresh throttle for a known key")
	}
}
