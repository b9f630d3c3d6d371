// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Masks account data in production
// ============================================================================
// Structured logging for the banking demo. In release mode usernames, PINs
// and amounts are masked before they reach the log output.
// ============================================================================

package utils

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// IsProduction switches masking on.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	logger = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch os.Getenv("LOG_LEVEL") {
	case "DEBUG", "debug":
		l.SetLevel(logrus.DebugLevel)
	case "WARN", "warn", "WARNING":
		l.SetLevel(logrus.WarnLevel)
	case "ERROR", "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// Logger exposes the shared logrus instance.
func Logger() *logrus.Logger {
	return logger
}

// ============================================================================
// MASKING
// ============================================================================

// MaskUsername keeps the first character of a username.
func MaskUsername(username string) string {
	if !IsProduction {
		return username
	}
	if username == "" {
		return "***"
	}
	return username[:1] + "***"
}

// MaskAmount hides financial amounts in production.
func MaskAmount(amount float64) string {
	if IsProduction {
		return "***"
	}
	return fmt.Sprintf("%.2f", amount)
}

// ============================================================================
// DOMAIN LOGGING
// ============================================================================

// LogAuthAction logs a login/logout event. PINs are never logged at all.
func LogAuthAction(action, username string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	logger.WithFields(logrus.Fields{
		"username": MaskUsername(username),
		"status":   status,
	}).Info("[Auth] " + action)
}

// LogLedgerAction logs a ledger operation with its amount masked in
// production.
func LogLedgerAction(action, username string, amount float64) {
	logger.WithFields(logrus.Fields{
		"username": MaskUsername(username),
		"amount":   MaskAmount(amount),
	}).Info("[Ledger] " + action)
}

// LogSessionEvent logs a session lifecycle change.
func LogSessionEvent(event, username, reason string) {
	logger.WithFields(logrus.Fields{
		"username": MaskUsername(username),
		"reason":   reason,
	}).Debug("[Session] " + event)
}

// LogAPIRequest logs one HTTP request.
func LogAPIRequest(method, path string, status int, duration string) {
	logger.WithFields(logrus.Fields{
		"status":   status,
		"duration": duration,
	}).Infof("[API] %s %s", method, path)
}
