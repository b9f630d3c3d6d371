package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Transfer tests --

func transferFixture(t *testing.T) (*Registry, *SessionManager, *LedgerService, *fakeScheduler, *recorderNotifier) {
	t.Helper()
	registry, sessions, ledger, sched, notifier := newTestEnv(
		testAccount("John Smith", 1111, 1, 300),
		testAccount("Amy Lee", 2222, 1, 50),
	)
	_, _, err := sessions.Login("js", "1111")
	require.NoError(t, err)
	return registry, sessions, ledger, sched, notifier
}

func TestTransfer_MovesFundsBothSides(t *testing.T) {
	registry, _, ledger, _, notifier := transferFixture(t)

	require.NoError(t, ledger.Transfer("200", "al"))

	sender, _ := registry.FindByUsername("js")
	recipient, _ := registry.FindByUsername("al")

	assert.InDelta(t, 100, Balance(sender.Movements), 1e-9)
	assert.InDelta(t, 250, Balance(recipient.Movements), 1e-9)
	assert.Len(t, sender.Movements, 2)
	assert.Len(t, sender.MovementsDates, 2)
	assert.Len(t, recipient.Movements, 2)
	assert.Len(t, recipient.MovementsDates, 2)
	assert.Equal(t, -200.0, sender.Movements[1])
	assert.Equal(t, 200.0, recipient.Movements[1])
	assert.Equal(t, 1, notifier.updateCount())
}

func TestTransfer_InsufficientBalanceRejectedWithoutMutation(t *testing.T) {
	registry, _, ledger, _, notifier := transferFixture(t)

	assert.ErrorIs(t, ledger.Transfer("400", "al"), ErrRejected)

	sender, _ := registry.FindByUsername("js")
	recipient, _ := registry.FindByUsername("al")
	assert.Len(t, sender.Movements, 1)
	assert.Len(t, recipient.Movements, 1)
	assert.Zero(t, notifier.updateCount())
}

func TestTransfer_Preconditions(t *testing.T) {
	_, _, ledger, _, _ := transferFixture(t)

	assert.ErrorIs(t, ledger.Transfer("-5", "al"), ErrRejected)
	assert.ErrorIs(t, ledger.Transfer("0", "al"), ErrRejected)
	assert.ErrorIs(t, ledger.Transfer("abc", "al"), ErrRejected)
	assert.ErrorIs(t, ledger.Transfer("50", "nobody"), ErrRejected)
	assert.ErrorIs(t, ledger.Transfer("50", "js"), ErrRejected) // self-transfer
}

// strconv.ParseFloat accepts "NaN" and "Inf" spellings without error, and NaN
// slips past ordered comparisons, so these inputs must be rejected before
// they can poison both ledgers.
func TestTransfer_NonFiniteAmountRejectedWithoutMutation(t *testing.T) {
	registry, _, ledger, _, notifier := transferFixture(t)

	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity"} {
		assert.ErrorIs(t, ledger.Transfer(raw, "al"), ErrRejected, raw)
	}

	sender, _ := registry.FindByUsername("js")
	recipient, _ := registry.FindByUsername("al")
	assert.Len(t, sender.Movements, 1)
	assert.Len(t, recipient.Movements, 1)
	assert.InDelta(t, 300, Balance(sender.Movements), 1e-9)
	assert.InDelta(t, 50, Balance(recipient.Movements), 1e-9)
	assert.Zero(t, notifier.updateCount())
}

func TestTransfer_ResetsInactivityCountdown(t *testing.T) {
	_, sessions, ledger, _, _ := transferFixture(t)

	timer := sessions.Timer()
	for i := 0; i < 30; i++ {
		timer.Tick()
	}
	require.Less(t, timer.Remaining(), 120)

	require.NoError(t, ledger.Transfer("10", "al"))
	// the reset emits an immediate tick, so one second is already consumed
	assert.Equal(t, 119, timer.Remaining())
}

func TestTransfer_WithoutSession(t *testing.T) {
	_, _, ledger, _, _ := newTestEnv(testAccount("John Smith", 1111, 1, 300))
	assert.ErrorIs(t, ledger.Transfer("10", "js"), ErrNoSession)
}

// -- RequestLoan tests --

func loanFixture(t *testing.T) (*Registry, *SessionManager, *LedgerService, *fakeScheduler, *recorderNotifier) {
	t.Helper()
	registry, sessions, ledger, sched, notifier := newTestEnv(
		testAccount("John Smith", 1111, 1, 50, -10),
	)
	_, _, err := sessions.Login("js", "1111")
	require.NoError(t, err)
	return registry, sessions, ledger, sched, notifier
}

func TestRequestLoan_RequiresQualifyingDeposit(t *testing.T) {
	registry, _, ledger, sched, _ := loanFixture(t)

	// 10% of 600 is 60, largest deposit is 50
	assert.ErrorIs(t, ledger.RequestLoan("600"), ErrRejected)
	assert.Zero(t, sched.pendingOneShots())

	account, _ := registry.FindByUsername("js")
	assert.Len(t, account.Movements, 2)
}

func TestRequestLoan_GrantAppliedAfterDelay(t *testing.T) {
	registry, _, ledger, sched, notifier := loanFixture(t)

	// 10% of 400 is 40, deposit of 50 qualifies
	require.NoError(t, ledger.RequestLoan("400"))

	// nothing lands until the processing delay elapses
	account, _ := registry.FindByUsername("js")
	assert.Len(t, account.Movements, 2)
	require.Equal(t, 1, sched.pendingOneShots())

	sched.firePending()

	account, _ = registry.FindByUsername("js")
	require.Len(t, account.Movements, 3)
	assert.Equal(t, 400.0, account.Movements[2])
	assert.Len(t, account.MovementsDates, 3)
	assert.Equal(t, 1, notifier.updateCount())
}

func TestRequestLoan_AmountIsFloored(t *testing.T) {
	registry, _, ledger, sched, _ := loanFixture(t)

	require.NoError(t, ledger.RequestLoan("400.9"))
	sched.firePending()

	account, _ := registry.FindByUsername("js")
	require.Len(t, account.Movements, 3)
	assert.Equal(t, 400.0, account.Movements[2])
}

func TestRequestLoan_NonPositiveRejected(t *testing.T) {
	_, _, ledger, _, _ := loanFixture(t)

	assert.ErrorIs(t, ledger.RequestLoan("0"), ErrRejected)
	assert.ErrorIs(t, ledger.RequestLoan("-100"), ErrRejected)
	assert.ErrorIs(t, ledger.RequestLoan("0.5"), ErrRejected) // floors to 0
	assert.ErrorIs(t, ledger.RequestLoan("nope"), ErrRejected)
}

func TestRequestLoan_NonFiniteAmountRejected(t *testing.T) {
	registry, _, ledger, sched, _ := loanFixture(t)

	assert.ErrorIs(t, ledger.RequestLoan("NaN"), ErrRejected)
	assert.ErrorIs(t, ledger.RequestLoan("Inf"), ErrRejected)
	assert.Zero(t, sched.pendingOneShots())

	account, _ := registry.FindByUsername("js")
	assert.Len(t, account.Movements, 2)
}

func TestRequestLoan_CancelledWhenSessionEnds(t *testing.T) {
	registry, sessions, ledger, sched, _ := loanFixture(t)

	require.NoError(t, ledger.RequestLoan("400"))
	sessions.Logout()
	sched.firePending()

	account, _ := registry.FindByUsername("js")
	assert.Len(t, account.Movements, 2)
}

func TestRequestLoan_CancelledWhenAccountCloses(t *testing.T) {
	registry, _, ledger, sched, _ := loanFixture(t)

	require.NoError(t, ledger.RequestLoan("400"))
	require.NoError(t, ledger.CloseAccount("js", "1111"))
	sched.firePending()

	assert.Equal(t, 0, registry.Len())
}

// -- CloseAccount tests --

func TestCloseAccount_WrongPINLeavesRegistryUnchanged(t *testing.T) {
	registry, sessions, ledger, _, _ := newTestEnv(testAccount("John Smith", 1111, 1, 100))
	_, _, err := sessions.Login("js", "1111")
	require.NoError(t, err)

	assert.ErrorIs(t, ledger.CloseAccount("js", "9999"), ErrRejected)
	assert.ErrorIs(t, ledger.CloseAccount("nobody", "1111"), ErrRejected)
	assert.ErrorIs(t, ledger.CloseAccount("js", "abc"), ErrRejected)

	assert.Equal(t, 1, registry.Len())
	_, stillLoggedIn := sessions.Current()
	assert.True(t, stillLoggedIn)
}

func TestCloseAccount_RemovesAccountAndEndsSession(t *testing.T) {
	registry, sessions, ledger, _, notifier := newTestEnv(testAccount("John Smith", 1111, 1, 100))
	_, _, err := sessions.Login("js", "1111")
	require.NoError(t, err)

	require.NoError(t, ledger.CloseAccount("js", "1111"))

	assert.Equal(t, 0, registry.Len())
	_, loggedIn := sessions.Current()
	assert.False(t, loggedIn)
	assert.Equal(t, LogoutClosed, notifier.lastLogout())

	// the credentials are gone for good
	_, _, err = sessions.Login("js", "1111")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

// -- SortedMovements tests --

func TestSortedMovements(t *testing.T) {
	_, sessions, ledger, _, _ := newTestEnv(testAccount("John Smith", 1111, 1, 3, -1, 2))
	_, _, err := sessions.Login("js", "1111")
	require.NoError(t, err)

	movements, dates, err := ledger.SortedMovements(false)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, -1, 2}, movements)
	require.Len(t, dates, 3)

	sortedMovs, sortedDates, err := ledger.SortedMovements(true)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2, 3}, sortedMovs)
	// date pairing survives the sort
	assert.Equal(t, dates[1], sortedDates[0])
	assert.Equal(t, dates[2], sortedDates[1])
	assert.Equal(t, dates[0], sortedDates[2])
}
