package main

import (
	"time"

	"bank-api/config"
	"bank-api/handlers"
	"bank-api/middleware"
	"bank-api/routes"
	"bank-api/services"
	"bank-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.Logger().Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	log := utils.Logger()

	registry := services.NewRegistry()
	registry.Seed(services.SeedAccounts())
	log.Infof("✅ Seeded %d demo accounts", registry.Len())

	wsHandler := handlers.NewWSHandler()
	scheduler := services.NewScheduler()
	sessions := services.NewSessionManager(registry, scheduler, cfg.SessionTTLSeconds, wsHandler)
	ledger := services.NewLedgerService(registry, sessions, scheduler, cfg.LoanDelay, wsHandler)

	router := gin.Default()

	allowedOrigins := []string{cfg.FrontendURL}
	log.Infof("🌍 CORS: Allowing origins:")
	for _, origin := range allowedOrigins {
		log.Infof("   - %s", origin)
	}

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogAPIRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).String())
	})

	router.Use(middleware.RateLimiter())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, sessions, cfg)
		v1.GET("/ws", wsHandler.HandleWS)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(sessions, cfg.JWTSecret))
		{
			routes.SetupAccountRoutes(protected, ledger, sessions)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	log.Infof("🚀 Server starting on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
