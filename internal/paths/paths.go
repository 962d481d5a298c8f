// Package paths resolves where micromd reads and writes its files.
package paths

import (
	"os"
	"path/filepath"
)

// LocalConfig is the project config file, relative to the working
// directory. It takes precedence over the user config.
const LocalConfig = ".micromd/config.yaml"

// UserConfigDir returns ~/.config/micromd. Returns "" if the home directory
// cannot be determined.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "micromd")
}

// UserConfig returns ~/.config/micromd/config.yaml, or "".
func UserConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// TracesFile returns the default trace file, or "".
func TracesFile() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ResolveConfig returns the config file to load.
//
// Lookup order:
//   - explicit, when set, whether or not it exists
//   - LocalConfig under dir, when it exists
//   - UserConfig, when it exists
//
// Returns "" when there is nothing to load.
func ResolveConfig(dir, explicit string) string {
	if explicit != "" {
		return explicit
	}
	local := filepath.Join(dir, LocalConfig)
	if isFile(local) {
		return local
	}
	if user := UserConfig(); user != "" && isFile(user) {
		return user
	}
	return ""
}

// WritableConfig returns where `config init` and `config set` write: the
// resolved config, or LocalConfig under dir when there is none.
func WritableConfig(dir, explicit string) string {
	if path := ResolveConfig(dir, explicit); path != "" {
		return path
	}
	return filepath.Join(dir, LocalConfig)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
