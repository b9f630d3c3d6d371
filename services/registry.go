package services

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bank-api/models"
)

// Registry holds the seeded account set for one process. All reads hand out
// deep copies and all ledger mutation goes through registry methods, so both
// parallel slices of an account always change inside one critical section.
//
// Usernames are not guaranteed unique; lookups return the first match, same
// as the registry's seed order.
type Registry struct {
	mu       sync.Mutex
	accounts []*models.Account
}

func NewRegistry() *Registry {
	return &Registry{}
}

// DeriveUsername builds the login username from an owner name: lowercase
// initials of each whitespace-separated token.
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, token := range strings.Fields(strings.ToLower(owner)) {
		for _, r := range token {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// Seed installs the account set, deriving each username exactly once.
// Accounts without an ID get one assigned.
func (r *Registry) Seed(accounts []*models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range accounts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.Username = DeriveUsername(a.Owner)
		r.accounts = append(r.accounts, a)
	}
}

func (r *Registry) byUsername(username string) *models.Account {
	for _, a := range r.accounts {
		if a.Username == username {
			return a
		}
	}
	return nil
}

func (r *Registry) byID(id uuid.UUID) *models.Account {
	for _, a := range r.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// FindByUsername returns a copy of the first account with the given username.
func (r *Registry) FindByUsername(username string) (models.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.byUsername(username)
	if a == nil {
		return models.Account{}, false
	}
	return a.Clone(), true
}

// Get returns a copy of the account with the given ID.
func (r *Registry) Get(id uuid.UUID) (models.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.byID(id)
	if a == nil {
		return models.Account{}, false
	}
	return a.Clone(), true
}

// Authenticate looks up the username and compares the PIN. The failure is the
// same for unknown username and wrong PIN. PIN comparison is demo-grade
// plaintext equality.
func (r *Registry) Authenticate(username string, pin int) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.byUsername(username)
	if a == nil || a.PIN != pin {
		return models.Account{}, ErrAuthFailed
	}
	return a.Clone(), nil
}

// Remove deletes the account with the given username. No-op when absent.
func (r *Registry) Remove(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.accounts {
		if a.Username == username {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return
		}
	}
}

// Append records one signed movement with its timestamp. Returns false when
// the account is gone (closed before a deferred credit landed).
func (r *Registry) Append(id uuid.UUID, amount float64, at time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.byID(id)
	if a == nil {
		return false
	}
	a.Movements = append(a.Movements, amount)
	a.MovementsDates = append(a.MovementsDates, at)
	return true
}

// Transfer moves amount from the account with fromID to the account owning
// toUsername. All preconditions are checked and both ledgers mutated inside
// one critical section; on any unmet precondition nothing changes.
func (r *Registry) Transfer(fromID uuid.UUID, toUsername string, amount float64, at time.Time) error {
	// Inverted guard so NaN, which fails every comparison, is rejected too.
	if !(amount > 0) || math.IsInf(amount, 0) {
		return ErrRejected
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.byID(fromID)
	to := r.byUsername(toUsername)
	if from == nil || to == nil {
		return ErrRejected
	}
	if to.Username == from.Username {
		return ErrRejected
	}
	if Balance(from.Movements) < amount {
		return ErrRejected
	}

	from.Movements = append(from.Movements, -amount)
	from.MovementsDates = append(from.MovementsDates, at)
	to.Movements = append(to.Movements, amount)
	to.MovementsDates = append(to.MovementsDates, at)
	return nil
}

// HasQualifyingDeposit reports whether any movement reaches the loan
// underwriting threshold.
func (r *Registry) HasQualifyingDeposit(id uuid.UUID, threshold float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.byID(id)
	if a == nil {
		return false
	}
	for _, mov := range a.Movements {
		if mov >= threshold {
			return true
		}
	}
	return false
}

// Len reports the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}
