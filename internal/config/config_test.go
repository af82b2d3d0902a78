package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexproof/hexproof/internal/config"
)

func TestLoadWithMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), cfg)
}

func TestLoadOverlaysYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexproof.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: 127.0.0.1:9999\nlog_level: debug\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, config.Defaults().ProverPoolSize, cfg.ProverPoolSize)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexproof.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: 127.0.0.1:9999\n"), 0o644))

	t.Setenv("HEXPROOF_LISTEN_ADDR", "0.0.0.0:7000")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:7000", cfg.ListenAddr)
}
