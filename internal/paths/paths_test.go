package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("parse: {}\n"), 0o600))
}

func TestResolveConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()

	require.Empty(t, ResolveConfig(dir, ""))
	require.Equal(t, "explicit.yaml", ResolveConfig(dir, "explicit.yaml"))

	user := filepath.Join(home, ".config", "micromd", "config.yaml")
	writeFile(t, user)
	require.Equal(t, user, ResolveConfig(dir, ""))

	local := filepath.Join(dir, LocalConfig)
	writeFile(t, local)
	require.Equal(t, local, ResolveConfig(dir, ""), "local config wins over user config")
	require.Equal(t, "explicit.yaml", ResolveConfig(dir, "explicit.yaml"))
}

func TestResolveConfig_IgnoresDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, LocalConfig), 0o750))
	require.Empty(t, ResolveConfig(dir, ""))
}

func TestWritableConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	require.Equal(t, filepath.Join(dir, LocalConfig), WritableConfig(dir, ""))
	require.Equal(t, "x.yaml", WritableConfig(dir, "x.yaml"))
}

func TestTracesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.Equal(t, filepath.Join(home, ".config", "micromd", "traces", "traces.jsonl"), TracesFile())
}
