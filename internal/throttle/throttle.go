// Package throttle bounds how often a guarded action may be attempted
// before a cooldown applies. One abstraction covers both disciplines in
// use: a sliding time window (citation search) and a consecutive
// failure count that only a success resets (login).
package throttle

import (
	"sync"
	"time"
)

// Mode selects the counting discipline.
type Mode int

const (
	// ModeConsecutiveFailures counts unbroken failures since the last
	// success or reset. No time-based eviction.
	ModeConsecutiveFailures Mode = iota
	// ModeSlidingWindow counts attempts within a trailing window.
	ModeSlidingWindow
)

// Decision is the outcome of consulting the throttle.
type Decision int

const (
	Allowed Decision = iota
	Blocked
)

// Config parameterizes a throttle instance.
type Config struct {
	Mode        Mode
	MaxAttempts int
	// Window is the trailing duration for ModeSlidingWindow. Ignored in
	// ModeConsecutiveFailures.
	Window time.Duration
	// BlockFor is how long a latched block lasts before the automatic
	// unblock clears the counters.
	BlockFor time.Duration
}

// Throttle tracks attempts for a single guarded action. All state is
// confined to one instance; the automatic unblock is a deferred timer
// that is discarded on Stop.
type Throttle struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	attempts []time.Time
	failures int
	blocked  bool
	unblock  *time.Timer
}

// New builds a throttle on the wall clock.
func New(cfg Config) *Throttle {
	return NewWithClock(cfg, time.Now)
}

// NewWithClock builds a throttle with an injected clock for window
// arithmetic. The unblock timer still runs on the wall clock.
func NewWithClock(cfg Config, now func() time.Time) *Throttle {
	return &Throttle{cfg: cfg, now: now}
}

// Attempt records an attempt and reports whether it may proceed.
// While blocked nothing is recorded and Blocked is returned
// immediately; the caller must short-circuit the guarded action. In
// ModeSlidingWindow, stale attempts are evicted first and reaching
// MaxAttempts latches the block. In ModeConsecutiveFailures the
// counter moves only on RecordFailure, so Attempt is purely the
// blocked-state gate.
func (t *Throttle) Attempt() Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.blocked {
		return Blocked
	}
	if t.cfg.Mode != ModeSlidingWindow {
		return Allowed
	}

	now := t.now()
	t.evictBefore(now.Add(-t.cfg.Window))
	if len(t.attempts) >= t.cfg.MaxAttempts {
		t.latchLocked()
		return Blocked
	}
	t.attempts = append(t.attempts, now)
	return Allowed
}

// RecordFailure counts a failed attempt in ModeConsecutiveFailures and
// latches the block once the limit is reached. Returns Blocked when the
// throttle is (or just became) blocked.
func (t *Throttle) RecordFailure() Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.blocked {
		return Blocked
	}
	if t.cfg.Mode != ModeConsecutiveFailures {
		return Allowed
	}
	t.failures++
	if t.failures >= t.cfg.MaxAttempts {
		t.latchLocked()
		return Blocked
	}
	return Allowed
}

// RecordSuccess resets the consecutive failure counter. A success never
// clears an already latched block.
func (t *Throttle) RecordSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.blocked {
		t.failures = 0
	}
}

// IsBlocked reports the current blocked state.
func (t *Throttle) IsBlocked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.blocked
}

// Remaining returns how many attempts are left before the block latches.
func (t *Throttle) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.blocked {
		return 0
	}
	used := t.failures
	if t.cfg.Mode == ModeSlidingWindow {
		t.evictBefore(t.now().Add(-t.cfg.Window))
		used = len(t.attempts)
	}
	remaining := t.cfg.MaxAttempts - used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Stop cancels a pending automatic unblock. Intended for shutdown; the
// block state is simply discarded with the instance.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.unblock != nil {
		t.unblock.Stop()
		t.unblock = nil
	}
}

// latchLocked sets the blocked flag and schedules the automatic
// unblock, which clears the flag and all counters. Callers hold t.mu.
func (t *Throttle) latchLocked() {
	t.blocked = true
	if t.unblock != nil {
		t.unblock.Stop()
	}
	t.unblock = time.AfterFunc(t.cfg.BlockFor, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.blocked = false
		t.failures = 0
		t.attempts = nil
		t.unblock = nil
	})
}

// evictBefore drops attempts at or before the cutoff. Callers hold t.mu.
func (t *Throttle) evictBefore(cutoff time.Time) {
	kept := t.attempts[:0]
	for _, at := range t.attempts {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	t.attempts = kept
}
