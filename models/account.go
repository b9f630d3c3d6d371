package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// ACCOUNT MODEL
// ============================================================================

// Account is the in-memory aggregate for one demo bank account.
// Movements and MovementsDates are parallel: MovementsDates[i] is the creation
// time of Movements[i]. Both are append-only and only the registry mutates
// them, so the invariant len(Movements) == len(MovementsDates) always holds.
type Account struct {
	ID             uuid.UUID   `json:"id"`
	Owner          string      `json:"owner"`
	Username       string      `json:"username"`
	PIN            int         `json:"-"` // Never expose in JSON
	Movements      []float64   `json:"movements"`
	MovementsDates []time.Time `json:"movements_dates"`
	InterestRate   float64     `json:"interest_rate"`
	Locale         string      `json:"locale"`
	Currency       string      `json:"currency"`
}

// Clone returns a deep copy so callers can't reach the registry's slices.
func (a *Account) Clone() Account {
	cp := *a
	cp.Movements = append([]float64(nil), a.Movements...)
	cp.MovementsDates = append([]time.Time(nil), a.MovementsDates...)
	return cp
}

// FirstName is the leading token of the owner name, used for the welcome line.
func (a *Account) FirstName() string {
	for i, r := range a.Owner {
		if r == ' ' {
			return a.Owner[:i]
		}
	}
	return a.Owner
}
