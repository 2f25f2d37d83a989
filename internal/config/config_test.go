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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 512, cfg.Engine.SignalCacheSize)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iris.yaml")
	content := `
server:
  host: 0.0.0.0
  port: 9000
  debug: true
engine:
  signal_cache_size: 64
catalog_path: /etc/iris/lenses.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 64, cfg.Engine.SignalCacheSize)
	assert.Equal(t, "/etc/iris/lenses.yaml", cfg.CatalogPath)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Server.EnableCORS)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("IRIS_SERVER_PORT", "7070")
	t.Setenv("IRIS_ENGINE_SIGNAL_CACHE_SIZE", "32")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 32, cfg.Engine.SignalCacheSize)
}

func TestLoadMissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	cfg.Engine.SignalCacheSize = -1
	assert.Error(t, cfg.Validate())
}
