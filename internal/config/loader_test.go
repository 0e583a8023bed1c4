package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "deepseek", cfg.Text.Provider)
	assert.Equal(t, "deepseek-chat", cfg.Text.Model)
	assert.Equal(t, 1, cfg.Context.Concurrency)
	assert.Equal(t, "sqlite", cfg.Credentials.Backend)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaultsOnly(t *testing.T) {
	isolateHome(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesFilesAndEnv(t *testing.T) {
	home := isolateHome(t)

	global := filepath.Join(home, ".docassist", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
	require.NoError(t, os.WriteFile(global, []byte("text:\n  model: from-global\n  timeout: 15s\nserver:\n  addr: \":9000\"\n"), 0o644))

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("server:\n  addr: \":9100\"\ncontext:\n  concurrency: 3\n"), 0o644))

	t.Setenv("DOCASSIST_IMAGE_MODEL", "from-env")

	cfg, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "from-global", cfg.Text.Model)
	assert.Equal(t, 15*time.Second, cfg.Text.Timeout)
	assert.Equal(t, ":9100", cfg.Server.Addr, "explicit file overrides global")
	assert.Equal(t, 3, cfg.Context.Concurrency)
	assert.Equal(t, "from-env", cfg.Image.Model)
	assert.Equal(t, "deepseek", cfg.Text.Provider, "untouched keys keep defaults")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolateHome(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text:\n  provider: carrier-pigeon\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "carrier-pigeon")
}

func TestValidateFloors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Context.Concurrency = 0
	cfg.Server.MaxInflight = -2
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Context.Concurrency)
	assert.Equal(t, 1, cfg.Server.MaxInflight)

	cfg.Credentials.Backend = "vault"
	assert.Error(t, cfg.Validate())
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
