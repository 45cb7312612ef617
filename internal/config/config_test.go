package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.False(t, cfg.PersistTelemetry)
	assert.False(t, cfg.StrictRefs)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FLEETOPS_ADDR", ":9090")
	t.Setenv("FLEETOPS_BACKEND", "sqlite")
	t.Setenv("FLEETOPS_SQLITE_PATH", "/tmp/test.db")
	t.Setenv("FLEETOPS_STRICT_REFS", "true")
	t.Setenv("FLEETOPS_JWT_EXPIRY", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
	assert.True(t, cfg.StrictRefs)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("FLEETOPS_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}
