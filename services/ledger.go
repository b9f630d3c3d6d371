package services

import (
	"math"
	"sort"
	"time"

	"bank-api/models"
	"bank-api/utils"
)

// loanDepositShare is the underwriting rule: a loan is granted only when some
// existing movement reaches this share of the requested amount.
const loanDepositShare = 0.1

// LedgerService runs the mutating operations against the currently
// authenticated account. Every operation is all-or-nothing: on any unmet
// precondition it returns ErrRejected and state is untouched; on success it
// signals activity so the inactivity countdown restarts.
type LedgerService struct {
	registry  *Registry
	sessions  *SessionManager
	sched     Scheduler
	notifier  Notifier
	loanDelay time.Duration
	now       func() time.Time
}

func NewLedgerService(registry *Registry, sessions *SessionManager, sched Scheduler, loanDelay time.Duration, notifier Notifier) *LedgerService {
	return &LedgerService{
		registry:  registry,
		sessions:  sessions,
		sched:     sched,
		notifier:  notifier,
		loanDelay: loanDelay,
		now:       time.Now,
	}
}

// Transfer moves funds from the logged-in account to another username.
// Rejected when the amount is not positive, the recipient is unknown or the
// sender itself, or the balance is insufficient.
func (s *LedgerService) Transfer(rawAmount, toUsername string) error {
	session, ok := s.sessions.Current()
	if !ok {
		return ErrNoSession
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return ErrRejected
	}

	if err := s.registry.Transfer(session.AccountID, toUsername, amount, s.now()); err != nil {
		utils.LogLedgerAction("transfer rejected", session.Username, amount)
		return err
	}

	utils.LogLedgerAction("transfer", session.Username, amount)
	s.sessions.Touch()
	s.notifier.LedgerUpdated(session.Username)
	return nil
}

// RequestLoan applies the underwriting rule and, when it passes, schedules
// the credit after the processing delay. The grant is tied to the requesting
// session: ending the session first cancels it.
func (s *LedgerService) RequestLoan(rawAmount string) error {
	session, ok := s.sessions.Current()
	if !ok {
		return ErrNoSession
	}
	requested, err := ParseAmount(rawAmount)
	if err != nil {
		return ErrRejected
	}
	amount := math.Floor(requested)
	if amount <= 0 {
		return ErrRejected
	}
	if !s.registry.HasQualifyingDeposit(session.AccountID, amount*loanDepositShare) {
		utils.LogLedgerAction("loan rejected", session.Username, amount)
		return ErrRejected
	}

	cancel := s.sched.After(s.loanDelay, func() {
		s.grantLoan(session, amount)
	})
	if !s.sessions.AddPending(session.ID, cancel) {
		// Session ended between the check and the registration.
		cancel()
		return ErrNoSession
	}

	utils.LogLedgerAction("loan requested", session.Username, amount)
	return nil
}

func (s *LedgerService) grantLoan(session Session, amount float64) {
	if !s.sessions.IsLive(session.ID) {
		return
	}
	if !s.registry.Append(session.AccountID, amount, s.now()) {
		return
	}
	utils.LogLedgerAction("loan granted", session.Username, amount)
	s.sessions.Touch()
	s.notifier.LedgerUpdated(session.Username)
}

// CloseAccount removes the logged-in account from the registry. Both the
// confirmation username and PIN must match the current account exactly.
func (s *LedgerService) CloseAccount(usernameInput, rawPIN string) error {
	account, err := s.sessions.CurrentAccount()
	if err != nil {
		return err
	}
	pin, pinErr := ParsePIN(rawPIN)
	if pinErr != nil || usernameInput != account.Username || pin != account.PIN {
		utils.LogLedgerAction("close rejected", account.Username, 0)
		return ErrRejected
	}

	s.registry.Remove(account.Username)
	utils.LogLedgerAction("close", account.Username, 0)
	s.sessions.EndForClosure()
	return nil
}

// SortedMovements returns the ledger of the logged-in account as paired
// movement/date rows: amount-ascending when ascending is true, chronological
// otherwise. Pairing is preserved either way.
func (s *LedgerService) SortedMovements(ascending bool) ([]float64, []time.Time, error) {
	account, err := s.sessions.CurrentAccount()
	if err != nil {
		return nil, nil, err
	}
	movements := account.Movements
	dates := account.MovementsDates
	if !ascending {
		return movements, dates, nil
	}

	idx := make([]int, len(movements))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return movements[idx[a]] < movements[idx[b]]
	})
	sortedMovs := make([]float64, len(movements))
	sortedDates := make([]time.Time, len(dates))
	for i, j := range idx {
		sortedMovs[i] = movements[j]
		sortedDates[i] = dates[j]
	}
	return sortedMovs, sortedDates, nil
}

// BuildAccountView derives the display aggregates for one account.
func BuildAccountView(account models.Account) models.AccountView {
	balance := Balance(account.Movements)
	incomes := Incomes(account.Movements)
	spending := Spending(account.Movements)
	interest := Interest(account.Movements, account.InterestRate)

	format := func(v float64) string {
		return utils.FormatCurrency(v, account.Locale, account.Currency)
	}
	return models.AccountView{
		Username:        account.Username,
		Owner:           account.Owner,
		Balance:         balance,
		Incomes:         incomes,
		Spending:        spending,
		Interest:        interest,
		BalanceDisplay:  format(balance),
		IncomesDisplay:  format(incomes),
		SpendingDisplay: format(math.Abs(spending)),
		InterestDisplay: format(interest),
		Locale:          account.Locale,
		Currency:        account.Currency,
	}
}

// BuildMovementViews renders ledger rows with relative date labels and
// locale/currency display strings.
func BuildMovementViews(account models.Account, movements []float64, dates []time.Time, now time.Time) []models.MovementView {
	formatDate := utils.DateFormatter(account.Locale)
	views := make([]models.MovementView, len(movements))
	for i, mov := range movements {
		kind := "deposit"
		if mov <= 0 {
			kind = "withdrawal"
		}
		views[i] = models.MovementView{
			Index:         i + 1,
			Type:          kind,
			Amount:        mov,
			AmountDisplay: utils.FormatCurrency(mov, account.Locale, account.Currency),
			Date:          dates[i],
			DateLabel:     MovementLabel(now, dates[i], formatDate),
		}
	}
	return views
}
