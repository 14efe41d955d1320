package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_SQLiteFromEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/subs.db")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT", "5-S")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("JWT_ISSUER", "subtrack")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, config.StorageSQLite, cfg.StorageBackend)
	assert.Equal(t, "/tmp/subs.db", cfg.SQLitePath)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "5-S", cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "subtrack", cfg.JWTIssuer)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := config.LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")

	_, err := config.LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}

func TestLoadConfig_InvalidShutdownTimeoutFallsBack(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
