package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.Storage.Medium)
	assert.Equal(t, "wallet-state", cfg.Storage.Object.Bucket)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)

	h := cfg.Hydration
	assert.Equal(t, 500*time.Millisecond, h.GracePeriod)
	assert.True(t, h.AutoReconnect)
	assert.Equal(t, "wallet-state", h.StorageKey)
	assert.Equal(t, []string{"polkadot"}, h.Platforms)
	assert.Equal(t, []string{"sr25519", "ed25519", "ecdsa", "ethereum"}, h.AccountTypes)
	assert.Equal(t, 16*time.Millisecond, h.Throttle)
	assert.Equal(t, time.Second, h.PersistDebounce)
	assert.Equal(t, 4000, h.SnapshotBudget)
	assert.False(t, h.Debug)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("HYDRATION_GRACE_PERIOD", "2s")
	t.Setenv("HYDRATION_PLATFORMS", "polkadot,ethereum")
	t.Setenv("HYDRATION_AUTO_RECONNECT", "false")
	t.Setenv("STORAGE_MEDIUM", "redis")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Hydration.GracePeriod)
	assert.Equal(t, []string{"polkadot", "ethereum"}, cfg.Hydration.Platforms)
	assert.False(t, cfg.Hydration.AutoReconnect)
	assert.Equal(t, "redis", cfg.Storage.Medium)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\nLOG_FORMAT=console\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Cookie medium", map[string]string{"STORAGE_MEDIUM": "cookie"}},
		{"Unknown medium", map[string]string{"STORAGE_MEDIUM": "floppy"}},
		{"Negative grace period", map[string]string{"HYDRATION_GRACE_PERIOD": "-1s"}},
		{"Empty storage key", map[string]string{"HYDRATION_STORAGE_KEY": " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}
