package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stepreport.yaml")
	content := []byte(`
log_level: debug
optimizer:
  profile: reduced
resolver:
  fallback_dirs:
    - /srv/uploads
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	loader := NewLoaderWith(viper.New())
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ProfileReduced, cfg.Optimizer.Profile)
	assert.Equal(t, []string{"/srv/uploads"}, cfg.Resolver.FallbackDirs)
	// Bounds omitted by the file follow the selected profile.
	assert.Equal(t, 400, cfg.Optimizer.Build().MaxWidth)
	assert.Equal(t, path, loader.GetConfigFileUsed())
}

func TestLoadWithFile_Missing(t *testing.T) {
	loader := NewLoaderWith(viper.New())
	_, err := loader.LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadWithFile_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stepreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: chatty\n"), 0o600))

	loader := NewLoaderWith(viper.New())
	_, err := loader.LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	// Run from an empty directory so no stepreport.yaml is picked up.
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(cwd) }()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loader := NewLoaderWith(viper.New())
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProfileDefault, cfg.Optimizer.Profile)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("STEPREPORT_OPTIMIZER_PROFILE", "reduced")

	dir := t.TempDir()
	path := filepath.Join(dir, "stepreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o600))

	loader := NewLoaderWith(viper.New())
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, ProfileReduced, cfg.Optimizer.Profile)
}
