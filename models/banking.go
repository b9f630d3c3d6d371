package models

import "time"

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

// Form fields arrive as raw strings; the service layer parses and validates
// them before any arithmetic happens.

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	PIN      string `json:"pin" binding:"required"`
}

type AuthResponse struct {
	Token   string      `json:"token"`
	Welcome string      `json:"welcome"`
	Account AccountView `json:"account"`
}

// ============================================================================
// LEDGER OPERATION REQUESTS
// ============================================================================

type TransferRequest struct {
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

type LoanRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type CloseAccountRequest struct {
	Username string `json:"username" binding:"required"`
	PIN      string `json:"pin" binding:"required"`
}

// ============================================================================
// VIEWS
// ============================================================================

// AccountView is what the presentation layer renders: raw numbers for the
// aggregates plus locale/currency display strings computed server-side.
type AccountView struct {
	Username        string  `json:"username"`
	Owner           string  `json:"owner"`
	Balance         float64 `json:"balance"`
	Incomes         float64 `json:"incomes"`
	Spending        float64 `json:"spending"`
	Interest        float64 `json:"interest"`
	BalanceDisplay  string  `json:"balance_display"`
	IncomesDisplay  string  `json:"incomes_display"`
	SpendingDisplay string  `json:"spending_display"`
	InterestDisplay string  `json:"interest_display"`
	Locale          string  `json:"locale"`
	Currency        string  `json:"currency"`
}

// MovementView is one ledger row.
type MovementView struct {
	Index         int       `json:"index"`
	Type          string    `json:"type"` // "deposit" or "withdrawal"
	Amount        float64   `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	Date          time.Time `json:"date"`
	DateLabel     string    `json:"date_label"`
}
