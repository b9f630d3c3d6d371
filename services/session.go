package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"bank-api/models"
	"bank-api/utils"
)

// Notifier is the core's outbound channel to the presentation layer. The
// websocket hub implements it in production; tests plug in a recorder.
type Notifier interface {
	TimerTick(remaining int, display string)
	LoggedOut(reason string)
	LedgerUpdated(username string)
}

// Logout reasons pushed to the presentation layer.
const (
	LogoutInactivity = "inactivity"
	LogoutManual     = "manual"
	LogoutClosed     = "closed"
)

// Session is the single active login. The account is referenced by registry
// ID, never by pointer, so closing the account can't leave a dangling alias.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Username  string
	StartedAt time.Time
}

// SessionManager enforces the single-session model: at most one account is
// logged in per process, a new login supersedes the previous one, and the
// inactivity timer logs the session out after the configured TTL.
type SessionManager struct {
	mu       sync.Mutex
	registry *Registry
	timer    *SessionTimer
	notifier Notifier
	now      func() time.Time

	current *Session
	pending []CancelFunc
}

func NewSessionManager(registry *Registry, sched Scheduler, ttlSeconds int, notifier Notifier) *SessionManager {
	m := &SessionManager{
		registry: registry,
		notifier: notifier,
		now:      time.Now,
	}
	m.timer = NewSessionTimer(ttlSeconds, sched, m.handleTick, m.handleExpiry)
	return m
}

// Login authenticates and opens a fresh session, superseding any previous
// one. The raw PIN string is parsed here; any malformed value fails the same
// way as wrong credentials.
func (m *SessionManager) Login(username, rawPIN string) (models.Account, *Session, error) {
	pin, err := ParsePIN(rawPIN)
	if err != nil {
		return models.Account{}, nil, ErrAuthFailed
	}
	account, err := m.registry.Authenticate(username, pin)
	if err != nil {
		return models.Account{}, nil, err
	}

	m.mu.Lock()
	m.cancelPendingLocked()
	session := &Session{
		ID:        uuid.New(),
		AccountID: account.ID,
		Username:  account.Username,
		StartedAt: m.now(),
	}
	m.current = session
	m.mu.Unlock()

	utils.LogSessionEvent("started", session.Username, "")
	m.timer.Start()
	return account, session, nil
}

// Logout ends the session on user request.
func (m *SessionManager) Logout() {
	m.end(LogoutManual)
}

// EndForClosure ends the session after the account was closed.
func (m *SessionManager) EndForClosure() {
	m.end(LogoutClosed)
}

func (m *SessionManager) end(reason string) {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return
	}
	username := m.current.Username
	m.current = nil
	m.cancelPendingLocked()
	m.mu.Unlock()

	m.timer.Stop()
	utils.LogSessionEvent("ended", username, reason)
	m.notifier.LoggedOut(reason)
}

// Current returns the active session, if any.
func (m *SessionManager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// IsLive reports whether the given session ID is the active session. Tokens
// from a superseded or expired login stop validating here.
func (m *SessionManager) IsLive(sessionID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil && m.current.ID == sessionID
}

// CurrentAccount resolves the logged-in account through the registry.
func (m *SessionManager) CurrentAccount() (models.Account, error) {
	m.mu.Lock()
	session := m.current
	m.mu.Unlock()
	if session == nil {
		return models.Account{}, ErrNoSession
	}
	account, ok := m.registry.Get(session.AccountID)
	if !ok {
		return models.Account{}, ErrNoSession
	}
	return account, nil
}

// Touch registers user activity: every successful ledger operation restarts
// the inactivity countdown.
func (m *SessionManager) Touch() {
	m.timer.Reset()
}

// AddPending ties a deferred task to the given session; it is cancelled when
// that session ends for any reason. Returns false when the session is no
// longer the live one.
func (m *SessionManager) AddPending(sessionID uuid.UUID, cancel CancelFunc) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.ID != sessionID {
		return false
	}
	m.pending = append(m.pending, cancel)
	return true
}

func (m *SessionManager) cancelPendingLocked() {
	for _, cancel := range m.pending {
		cancel()
	}
	m.pending = nil
}

// Timer exposes the countdown for read-only inspection.
func (m *SessionManager) Timer() *SessionTimer {
	return m.timer
}

func (m *SessionManager) handleTick(remaining int) {
	m.notifier.TimerTick(remaining, FormatCountdown(remaining))
}

// handleExpiry runs when the countdown reaches zero: the timer has already
// stopped itself, so only the session state and the logout signal remain.
func (m *SessionManager) handleExpiry() {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return
	}
	username := m.current.Username
	m.current = nil
	m.cancelPendingLocked()
	m.mu.Unlock()

	utils.LogSessionEvent("ended", username, LogoutInactivity)
	m.notifier.LoggedOut(LogoutInactivity)
}
