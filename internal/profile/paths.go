// Package profile resolves the named data profiles mockmsg keeps under
// ~/.mockmsg. Each profile has its own database, lock and logs, so several
// staged scenarios can live side by side.
package profile

import (
	"os"
	"path/filepath"
)

// baseDirOverride lets tests relocate the tree.
var baseDirOverride string

// BaseDir returns ~/.mockmsg, or $MOCKMSG_HOME when set.
func BaseDir() string {
	if baseDirOverride != "" {
		return baseDirOverride
	}
	if env := os.Getenv("MOCKMSG_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mockmsg")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// LockPath returns the lock file path for a profile.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// DBPath returns the app-owned mockmsg.db path.
func DBPath(name string) string {
	return filepath.Join(Dir(name), "mockmsg.db")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the log file path of a binary within a profile.
func LogPath(name, binary string) string {
	return filepath.Join(LogDir(name), binary+".log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with proper permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}

// List returns the names of existing profiles.
func List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(BaseDir(), "profiles"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && ValidateName(e.Name()) == nil {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
