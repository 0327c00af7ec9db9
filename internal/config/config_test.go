package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"APP_NAME", "APP_ENV", "APP_PORT", "APP_VERSION", "LOG_LEVEL", "DB_AUTO_MIGRATE",
	"REDIS_HOST", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "JWT_ACCESS_EXPIRY",
	"AUTH_BCRYPT_COST", "AUTH_MAX_FAILED_LOGINS", "AUTH_LOCKOUT_WINDOW",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"DB_MAX_CONNECTIONS", "DB_MIN_CONNECTIONS", "DB_MAX_RETRIES",
	"DB_MAX_CONN_LIFETIME", "DB_MAX_CONN_IDLE_TIME", "DB_HEALTH_CHECK_PERIOD",
	"DB_RETRY_DELAY", "DB_CONNECT_TIMEOUT",
}

func clearEnv(t *testing.T) {
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.App.AutoMigrate)
	assert.Equal(t, "localhost:6379", cfg.Redis.Host)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5, cfg.Auth.MaxFailedLogins)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutWindow)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "override")
	t.Setenv("JWT_ACCESS_EXPIRY", "30")
	t.Setenv("AUTH_LOCKOUT_WINDOW", "2m")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "override", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, 2*time.Minute, cfg.Auth.LockoutWindow)
	assert.False(t, cfg.App.AutoMigrate)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	t.Run("production requires own secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, err := Load()
		assert.Error(t, err)

		t.Setenv("JWT_SECRET", "a-real-secret")
		_, err = Load()
		assert.NoError(t, err)
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		t.Setenv("AUTH_BCRYPT_COST", "40")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive token expiry", func(t *testing.T) {
		t.Setenv("JWT_ACCESS_EXPIRY", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadDatabaseConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	dbCfg, err := LoadDatabaseConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", dbCfg.Host)
	assert.Equal(t, 6543, dbCfg.Port)
	assert.Equal(t, "bookreview", dbCfg.Username)
	assert.Equal(t, "disable", dbCfg.SSLMode)
	assert.Equal(t, int32(25), dbCfg.MaxConns)
	assert.Equal(t, 250*time.Millisecond, dbCfg.RetryDelay)
}

func TestLoadDatabaseConfig_Invalid(t *testing.T) {
	clearEnv(t)

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("DB_PORT", "abc")
		_, err := LoadDatabaseConfig()
		assert.Error(t, err)
	})

	t.Run("min above max", func(t *testing.T) {
		t.Setenv("DB_MAX_CONNECTIONS", "2")
		t.Setenv("DB_MIN_CONNECTIONS", "5")
		_, err := LoadDatabaseConfig()
		assert.Error(t, err)
	})

	t.Run("production without password", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, err := LoadDatabaseConfig()
		assert.Error(t, err)

		t.Setenv("DB_PASSWORD", "s3cret")
		dbCfg, err := LoadDatabaseConfig()
		require.NoError(t, err)
		assert.Equal(t, "s3cret", dbCfg.Password)
	})
}
