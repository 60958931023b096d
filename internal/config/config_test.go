package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.False(t, cfg.Server.ErrorDetails)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "snowflake", cfg.Warehouse.Driver)
	require.Equal(t, "my_app_db.main_schema.users", cfg.Warehouse.Table)
	require.Empty(t, cfg.Warehouse.DSN)
	require.False(t, cfg.Warehouse.Pooled)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SNOWCONNECT_WAREHOUSE_DRIVER", "sqlite")
	t.Setenv("SNOWCONNECT_WAREHOUSE_DSN", "data/users.db")
	t.Setenv("SNOWCONNECT_WAREHOUSE_TABLE", "main.users")
	t.Setenv("SNOWCONNECT_WAREHOUSE_POOLED", "true")
	t.Setenv("SNOWCONNECT_SERVER_ERRORDETAILS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Warehouse.Driver)
	require.Equal(t, "data/users.db", cfg.Warehouse.DSN)
	require.Equal(t, "main.users", cfg.Warehouse.Table)
	require.True(t, cfg.Warehouse.Pooled)
	require.True(t, cfg.Server.ErrorDetails)
}

func TestLoadConfigFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  addr: 127.0.0.1:9090\nlog:\n  level: debug\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SNOWCONNECT_WAREHOUSE_DSN=account=acme;user=ada;password=x\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("SNOWCONNECT_WAREHOUSE_DSN") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "account=acme;user=ada;password=x", cfg.Warehouse.DSN)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
