package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE", "DB_PATH", "DATABASE_URL", "SEED_PATH", "AMQP_URL", "ORS_API_KEY", "ORS_COUNTRY", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "data/app.db", cfg.DBPath)
	assert.Equal(t, "data/seeds/catalog.yaml", cfg.SeedPath)
	assert.Equal(t, "BD", cfg.ORSCountry)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "SQLite")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPostgresNeedsURL(t *testing.T) {
	t.Setenv("STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadUnknownStore(t *testing.T) {
	t.Setenv("STORE", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown STORE")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SUPPLY_TEST_KEY=from-dotenv\n"), 0o600))
	t.Setenv("SUPPLY_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("SUPPLY_TEST_KEY"))

	assert.True(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", Get("SUPPLY_TEST_KEY", "fallback"))

	assert.False(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
