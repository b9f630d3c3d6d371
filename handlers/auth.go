package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bank-api/middleware"
	"bank-api/models"
	"bank-api/services"
	"bank-api/utils"
)

type AuthHandler struct {
	Sessions  *services.SessionManager
	JWTSecret string
	TokenTTL  time.Duration
}

// Login opens the single session. Unknown username and wrong PIN produce the
// same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, session, err := h.Sessions.Login(req.Username, req.PIN)
	if err != nil {
		utils.LogAuthAction("login", req.Username, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateAccessToken(h.JWTSecret, session.ID, session.Username, h.TokenTTL)
	if err != nil {
		h.Sessions.Logout()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	utils.LogAuthAction("login", account.Username, true)
	c.JSON(http.StatusOK, models.AuthResponse{
		Token:   token,
		Welcome: fmt.Sprintf("Welcome back, %s", account.FirstName()),
		Account: services.BuildAccountView(account),
	})
}

// Logout ends the session on user request. The audit entry names the token's
// user, so a logout racing a superseding login is still attributed.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.LogAuthAction("logout", middleware.GetUsername(c), true)
	h.Sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
