package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("USERS_CACHE_TTL", "")
	t.Setenv("ROLE_UPDATE_ATOMIC", "")
	t.Setenv("REDIS_DB", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.UsersCacheTTL)
	assert.False(t, cfg.RoleUpdateAtomic)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, cfg.MySQLDSN, cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("USERS_CACHE_TTL", "30s")
	t.Setenv("ROLE_UPDATE_ATOMIC", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "/tmp/test.db", cfg.DSN())
	assert.Equal(t, 30*time.Second, cfg.UsersCacheTTL)
	assert.True(t, cfg.RoleUpdateAtomic)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("USERS_CACHE_TTL", "soon")
	t.Setenv("ROLE_UPDATE_ATOMIC", "maybe")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.UsersCacheTTL)
	assert.False(t, cfg.RoleUpdateAtomic)
	assert.Equal(t, 0, cfg.RedisDB)
}
