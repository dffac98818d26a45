// Package config provides configuration for the conversation service.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort        int
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string

	// Auth settings
	JWTSecret         string
	AccessTokenCookie string
	TokenTTL          time.Duration

	// WebSocket settings
	PingInterval time.Duration
	WriteTimeout time.Duration
	ReadTimeout  time.Duration

	// Logging
	LogLevel string
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env file could not be loaded: %v", err)
	}
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		ShutdownTimeout:   time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_MS", 10000)) * time.Millisecond,
		DatabaseURL:       getEnv("DATABASE_URL", "file:conversations.db?cache=shared&mode=rwc"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		AccessTokenCookie: getEnv("ACCESS_TOKEN_COOKIE", "accessToken"),
		TokenTTL:          time.Duration(getEnvInt("TOKEN_TTL_MS", 86400000)) * time.Millisecond,
		PingInterval:      time.Duration(getEnvInt("WS_PING_INTERVAL_MS", 30000)) * time.Millisecond,
		WriteTimeout:      time.Duration(getEnvInt("WS_WRITE_TIMEOUT_MS", 10000)) * time.Millisecond,
		ReadTimeout:       time.Duration(getEnvInt("WS_READ_TIMEOUT_MS", 60000)) * time.Millisecond,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
