package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the process reads from the environment. Values
// the original hardcoded (the 120 s inactivity window, the 2500 ms loan
// processing delay) are fields here so tests and deployments can tune them.
type Config struct {
	Port        string
	FrontendURL string
	JWTSecret   string

	// SessionTTLSeconds is the inactivity window before automatic logout.
	SessionTTLSeconds int
	// LoanDelay models asynchronous loan approval.
	LoanDelay time.Duration
	// TokenTTL bounds the JWT lifetime; the live-session check is what
	// actually ends access.
	TokenTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		JWTSecret:         getEnv("JWT_SECRET", "demo-bank-secret"),
		SessionTTLSeconds: getEnvInt("SESSION_TIMEOUT_SECONDS", 120),
		LoanDelay:         time.Duration(getEnvInt("LOAN_DELAY_MS", 2500)) * time.Millisecond,
		TokenTTL:          time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
