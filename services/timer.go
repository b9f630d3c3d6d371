package services

import (
	"fmt"
	"sync"
	"time"
)

// SessionTimer is the inactivity countdown: idle until Start, counting while
// a session is live, firing onExpire when the countdown hits zero. At most
// one countdown runs at a time; Start supersedes and cancels any previous one.
//
// Tick order follows the display contract: each tick first reports the
// remaining seconds (so 0 is shown as 00:00), then either decrements or, at
// zero, stops and expires. Start emits an immediate tick before the 1 Hz
// schedule begins.
type SessionTimer struct {
	mu        sync.Mutex
	ttl       int
	remaining int
	counting  bool
	cancel    CancelFunc

	sched    Scheduler
	onTick   func(remaining int)
	onExpire func()
}

// NewSessionTimer builds a timer with a full countdown of ttl seconds.
// Callbacks are invoked without the timer lock held, so they may call back
// into the timer or its owner.
func NewSessionTimer(ttl int, sched Scheduler, onTick func(int), onExpire func()) *SessionTimer {
	return &SessionTimer{
		ttl:      ttl,
		sched:    sched,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start (re)initializes the countdown and begins ticking.
func (t *SessionTimer) Start() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.remaining = t.ttl
	t.counting = true
	t.cancel = t.sched.Every(time.Second, t.Tick)
	t.mu.Unlock()

	t.Tick()
}

// Reset restarts the countdown. Only meaningful while counting; invoked after
// every successful ledger operation and on login.
func (t *SessionTimer) Reset() {
	t.mu.Lock()
	counting := t.counting
	t.mu.Unlock()
	if counting {
		t.Start()
	}
}

// Stop cancels the countdown without any logout side effects.
func (t *SessionTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *SessionTimer) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.counting = false
}

// Counting reports whether a countdown is live.
func (t *SessionTimer) Counting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counting
}

// Remaining returns the seconds left on the countdown.
func (t *SessionTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Tick advances the countdown by one step. Exported so a fake scheduler can
// drive it directly in tests.
func (t *SessionTimer) Tick() {
	t.mu.Lock()
	if !t.counting {
		t.mu.Unlock()
		return
	}
	remaining := t.remaining
	expired := remaining == 0
	if expired {
		t.stopLocked()
	} else {
		t.remaining--
	}
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(remaining)
	}
	if expired && t.onExpire != nil {
		t.onExpire()
	}
}

// FormatCountdown renders remaining seconds as zero-padded MM:SS.
func FormatCountdown(remaining int) string {
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}
