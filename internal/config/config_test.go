package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestPaths(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "config", "blackjack", "config.toml"), GetConfigFilePath())
	assert.Equal(t, filepath.Join(dir, "data", "blackjack", "gamestate.json"), GetDefaultStatePath())
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(GetConfigFilePath())
	assert.NoError(t, err, "config file should be created")
}

func TestLoadConfigPartialFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte("color = false\n"), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Color)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, GetDefaultStatePath(), cfg.StateFile)
}

func TestLoadConfigInvalid(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte("color = = \n"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSetStateFile(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "elsewhere.json")

	require.NoError(t, SetStateFile(target))
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, target, cfg.StateFile)
}
