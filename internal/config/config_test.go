package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LEDGER_LOCK_TTL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Second, cfg.Ledger.LockTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("LEDGER_LOCK_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 7, cfg.Database.MaxConns)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10*time.Second, cfg.Ledger.LockTTL)
}
