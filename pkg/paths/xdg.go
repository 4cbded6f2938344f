// Package paths resolves the XDG directories used by jwtview.
//
// Resolution order:
// 1. JWTVIEW_HOME (portable root) → $JWTVIEW_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/jwtview
// 3. Platform defaults → ~/.config/jwtview, ~/.local/state/jwtview
package paths

import (
	"os"
	"path/filepath"
)

const appName = "jwtview"

// base resolves one XDG base directory. portable is the subdirectory used
// under JWTVIEW_HOME; fallback is relative to the user's home.
func base(portable, xdgVar string, fallback ...string) string {
	if home := os.Getenv("JWTVIEW_HOME"); home != "" {
		return filepath.Join(home, portable)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append(append([]string{homeDir}, fallback...), appName)...)
	}
	return ""
}

// ConfigDir returns the directory of the user-wide jwtview.yml.
func ConfigDir() string {
	return base("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir returns the directory for runtime state such as logs.
func StateDir() string {
	return base("state", "XDG_STATE_HOME", ".local", "state")
}

// LogFile returns the default path of the log file sink.
func LogFile() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "logs", appName+".log")
}
