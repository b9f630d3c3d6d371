package services

import (
	"sync"
	"time"

	"bank-api/models"
)

// fakeScheduler records scheduled work instead of running it, so tests drive
// time by hand.
type fakeScheduler struct {
	mu       sync.Mutex
	oneShots []*fakeTask
	repeats  []*fakeTask
}

type fakeTask struct {
	fn        func()
	delay     time.Duration
	cancelled bool
}

func (s *fakeScheduler) After(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &fakeTask{fn: fn, delay: d}
	s.oneShots = append(s.oneShots, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.cancelled = true
	}
}

func (s *fakeScheduler) Every(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &fakeTask{fn: fn, delay: d}
	s.repeats = append(s.repeats, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.cancelled = true
	}
}

// firePending runs every uncancelled one-shot exactly once.
func (s *fakeScheduler) firePending() {
	s.mu.Lock()
	tasks := s.oneShots
	s.oneShots = nil
	s.mu.Unlock()
	for _, task := range tasks {
		if !task.cancelled {
			task.fn()
		}
	}
}

func (s *fakeScheduler) pendingOneShots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.oneShots {
		if !task.cancelled {
			n++
		}
	}
	return n
}

// recorderNotifier captures everything the core emits to the presentation
// layer.
type recorderNotifier struct {
	mu      sync.Mutex
	ticks   []int
	logouts []string
	updates []string
}

func (r *recorderNotifier) TimerTick(remaining int, display string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *recorderNotifier) LoggedOut(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logouts = append(r.logouts, reason)
}

func (r *recorderNotifier) LedgerUpdated(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, username)
}

func (r *recorderNotifier) lastLogout() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.logouts) == 0 {
		return ""
	}
	return r.logouts[len(r.logouts)-1]
}

func (r *recorderNotifier) lastTick() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ticks) == 0 {
		return -1
	}
	return r.ticks[len(r.ticks)-1]
}

func (r *recorderNotifier) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

func testAccount(owner string, pin int, rate float64, movements ...float64) *models.Account {
	now := time.Now()
	dates := make([]time.Time, len(movements))
	for i := range dates {
		dates[i] = now.AddDate(0, 0, i-len(movements))
	}
	return &models.Account{
		Owner:          owner,
		PIN:            pin,
		InterestRate:   rate,
		Locale:         "en-GB",
		Currency:       "GBP",
		Movements:      movements,
		MovementsDates: dates,
	}
}

// newTestEnv wires a registry, session manager and ledger service on a fake
// scheduler with the default 120 s window and a short loan delay.
func newTestEnv(accounts ...*models.Account) (*Registry, *SessionManager, *LedgerService, *fakeScheduler, *recorderNotifier) {
	registry := NewRegistry()
	registry.Seed(accounts)
	sched := &fakeScheduler{}
	notifier := &recorderNotifier{}
	sessions := NewSessionManager(registry, sched, 120, notifier)
	ledger := NewLedgerService(registry, sessions, sched, 2500*time.Millisecond, notifier)
	return registry, sessions, ledger, sched, notifier
}
