package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/sift", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "sift"), got)
	})
}

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/env-config")
		got, err := ResolveConfigDir("/tmp/flag-config")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag-config", got)
	})

	t.Run("env beats default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/env-config")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env-config", got)
	})

	t.Run("local .sift dir beats platform default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultConfigDirName), 0o755))
		t.Chdir(dir)

		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, DefaultConfigDirName), got)
	})
}

func TestResolveDBPathPrecedence(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvDBPath, "/tmp/env.db")
		got, err := ResolveDBPath("/tmp/flag.db", "/tmp/cfg.db")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag.db", got)
	})

	t.Run("config beats env", func(t *testing.T) {
		t.Setenv(EnvDBPath, "/tmp/env.db")
		got, err := ResolveDBPath("", "/tmp/cfg.db")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/cfg.db", got)
	})

	t.Run("env beats cwd default", func(t *testing.T) {
		t.Setenv(EnvDBPath, "/tmp/env.db")
		got, err := ResolveDBPath("", "")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env.db", got)
	})

	t.Run("cwd default", func(t *testing.T) {
		t.Setenv(EnvDBPath, "")
		dir := t.TempDir()
		t.Chdir(dir)

		got, err := ResolveDBPath("", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, DefaultDBName), got)
	})
}
