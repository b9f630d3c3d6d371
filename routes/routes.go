package routes

import (
	"github.com/gin-gonic/gin"

	"bank-api/config"
	"bank-api/handlers"
	"bank-api/middleware"
	"bank-api/services"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, sessions *services.SessionManager, cfg *config.Config) {
	authHandler := &handlers.AuthHandler{
		Sessions:  sessions,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}

	rg.POST("/auth/login", authHandler.Login)

	protected := rg.Group("/")
	protected.Use(middleware.AuthMiddleware(sessions, cfg.JWTSecret))
	protected.POST("/auth/logout", authHandler.Logout)
}

// SetupAccountRoutes sets up the protected ledger routes.
func SetupAccountRoutes(rg *gin.RouterGroup, ledger *services.LedgerService, sessions *services.SessionManager) {
	h := handlers.NewBankingHandler(ledger, sessions)

	rg.GET("/account", h.GetAccount)
	rg.GET("/account/movements", h.GetMovements)
	rg.POST("/account/transfers", h.Transfer)
	rg.POST("/account/loans", h.RequestLoan)
	rg.POST("/account/close", h.CloseAccount)
}
