package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bank-api/services"
	"bank-api/utils"
)

const ctxUsername = "username"

// AuthMiddleware validates the bearer token and checks that the session it
// names is still the live one. A token from a superseded, expired or closed
// session gets 401 even when its signature is fine.
func AuthMiddleware(sessions *services.SessionManager, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		sessionID, username, err := utils.ParseAccessToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil || !sessions.IsLive(sessionID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			c.Abort()
			return
		}

		c.Set(ctxUsername, username)
		c.Next()
	}
}

// GetUsername returns the authenticated username stored by AuthMiddleware.
func GetUsername(c *gin.Context) string {
	if v, ok := c.Get(ctxUsername); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
