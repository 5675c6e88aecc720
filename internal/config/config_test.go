package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 60*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, 10*time.Minute, cfg.Submission.CodeTTL)
	assert.True(t, cfg.Submission.VerifyCode)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("DB_PASSWORD", "prod-password")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownCacheDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ParsesOverrides(t *testing.T) {
	t.Setenv("SUBMISSION_VERIFY_CODE", "false")
	t.Setenv("CACHE_LIST_TTL", "5s")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Submission.VerifyCode)
	assert.Equal(t, 5*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, 5432, cfg.Database.Port)
}
