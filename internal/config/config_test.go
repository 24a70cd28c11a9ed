package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "3001", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "local", cfg.UploadBackend)
	assert.False(t, cfg.Migrate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("RATE_RPS", "not-a-number")
	t.Setenv("APP_MIGRATE", "true")
	t.Setenv("S3_BUCKET", "dorm-uploads")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 20, cfg.RateRPS)
	assert.True(t, cfg.Migrate)
	assert.Equal(t, "dorm-uploads", cfg.S3.Bucket)
}

func TestLoadTestEnvLowersBcryptCost(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("BCRYPT_COST", "14")

	assert.Equal(t, 4, Load().BcryptCost)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GEOCODING_API_KEY=from-file\n"), 0o600))
	t.Setenv("GEOCODING_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEOCODING_API_KEY"))

	require.NoError(t, LoadEnvFile(path))
	t.Cleanup(func() { _ = os.Unsetenv("GEOCODING_API_KEY") })

	assert.Equal(t, "from-file", Load().GeocodingAPIKey)
	assert.NoError(t, LoadEnvFile(""))
}
