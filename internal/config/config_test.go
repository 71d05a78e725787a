package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SAGE_CONFIG", filepath.Join(dir, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "system", cfg.UI.Theme)
	require.Equal(t, 8, cfg.UI.MaxVisibleOptions)
	require.Equal(t, filepath.Join(dir, ".local", "share", "sage", "sage.db"), cfg.Database.Path)
	require.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestSaveRoundTripAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SAGE_CONFIG", filepath.Join(dir, "conf", "config.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.Theme = "dark"
	cfg.UI.MaxVisibleOptions = 5
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dark", loaded.UI.Theme)
	require.Equal(t, 5, loaded.UI.MaxVisibleOptions)

	t.Setenv("SAGE_UI_THEME", "light")
	loaded, err = Load()
	require.NoError(t, err)
	require.Equal(t, "light", loaded.UI.Theme)
}
