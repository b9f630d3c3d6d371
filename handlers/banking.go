package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bank-api/models"
	"bank-api/services"
	"bank-api/utils"
)

type BankingHandler struct {
	Ledger   *services.LedgerService
	Sessions *services.SessionManager
}

func NewBankingHandler(ledger *services.LedgerService, sessions *services.SessionManager) *BankingHandler {
	return &BankingHandler{Ledger: ledger, Sessions: sessions}
}

// GetAccount returns the logged-in account's aggregates and display strings.
func (h *BankingHandler) GetAccount(c *gin.Context) {
	account, err := h.Sessions.CurrentAccount()
	if err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": "No active session"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"account": services.BuildAccountView(account),
		"as_of":   utils.FormatLoginTimestamp(now, account.Locale),
	})
}

// GetMovements returns the ledger rows, amount-ascending when ?sort=asc.
func (h *BankingHandler) GetMovements(c *gin.Context) {
	ascending := c.Query("sort") == "asc"

	movements, dates, err := h.Ledger.SortedMovements(ascending)
	if err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": "No active session"})
		return
	}
	account, err := h.Sessions.CurrentAccount()
	if err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": "No active session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"movements": services.BuildMovementViews(account, movements, dates, time.Now()),
		"sorted":    ascending,
	})
}

// Transfer sends funds to another username.
func (h *BankingHandler) Transfer(c *gin.Context) {
	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.Transfer(req.Amount, req.To); err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": "Transfer rejected"})
		return
	}

	account, err := h.Sessions.CurrentAccount()
	if err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": "No active session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Transfer completed",
		"account": services.BuildAccountView(account),
	})
}

// RequestLoan runs the underwriting rule; the credit lands after the
// processing delay, so success is 202.
func (h *BankingHandler) RequestLoan(c *gin.Context) {
	var req models.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.RequestLoan(req.Amount); err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": "Loan rejected"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Loan request accepted"})
}

// CloseAccount deletes the logged-in account after credential confirmation.
func (h *BankingHandler) CloseAccount(c *gin.Context) {
	var req models.CloseAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.CloseAccount(req.Username, req.PIN); err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": "Close rejected"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account closed"})
}
