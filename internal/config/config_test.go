package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "argon2", cfg.Auth.Derivation)
	assert.Equal(t, 10, cfg.Ledger.MaxCodeAttempts)
	assert.Equal(t, "INR", cfg.Display.Currency)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godutch.yaml")
	content := `
server:
  port: 9090
storage:
  driver: sqlite
  sqlite_path: /tmp/ledger.db
auth:
  token_ttl: 2h
display:
  currency: EUR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("GODUTCH_SERVER_PORT", "7070")
	t.Setenv("GODUTCH_REDIS_ADDR", "redis:6380")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port, "environment wins over file")
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/ledger.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "EUR", cfg.Display.Currency)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"GODUTCH_STORAGE_DRIVER":           "postgres",
		"GODUTCH_AUTH_DERIVATION":          "md5",
		"GODUTCH_LEDGER_MAX_CODE_ATTEMPTS": "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
