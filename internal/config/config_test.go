package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL_MS", "WS_PING_INTERVAL_MS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "file:conversations.db?cache=shared&mode=rwc", cfg.DatabaseURL)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Equal(t, "accessToken", cfg.AccessTokenCookie)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.PingInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/conv")
	t.Setenv("WS_READ_TIMEOUT_MS", "1500")

	cfg := Load()
	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, "postgres://localhost/conv", cfg.DatabaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.ReadTimeout)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	assert.Equal(t, 8080, Load().HTTPPort)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CONV_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("CONV_TEST_DOTENV", "")
	os.Unsetenv("CONV_TEST_DOTENV")

	LoadDotEnv(path)
	assert.Equal(t, "from-file", os.Getenv("CONV_TEST_DOTENV"))

	// Missing files are tolerated.
	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}
