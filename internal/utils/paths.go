// Package utils contains utility types for logging and filesystem path
// management used throughout runcat.
package utils

import (
	"os"
	"path/filepath"
)

// Paths resolves and manages filesystem locations used by runcat.
type Paths struct {
	RootPath string `json:"root_path"`
}

// NewPaths constructs Paths rooted at the specified directory.
func NewPaths(rootPath string) *Paths {
	return &Paths{RootPath: rootPath}
}

// DefaultRoot returns the runcat data directory: RUNCAT_HOME when set,
// otherwise a "runcat" directory next to the running executable, falling
// back to a temp location when the executable path cannot be resolved.
func DefaultRoot() string {
	if env := os.Getenv("RUNCAT_HOME"); env != "" {
		return env
	}
	exe, err := os.Executable()
	if err == nil {
		if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil && resolved != "" {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	return filepath.Join(os.TempDir(), "runcat")
}

// ConfigDir returns the application configuration directory.
func (p *Paths) ConfigDir() string {
	return filepath.Join(p.RootPath, "config")
}

// LogsDir returns the logs directory.
func (p *Paths) LogsDir() string {
	return filepath.Join(p.RootPath, "logs")
}

// AssetsDir returns the directory holding the animation frame files.
func (p *Paths) AssetsDir() string {
	return filepath.Join(p.RootPath, "resources", "cat")
}

// StateFile returns the path to the persisted runtime configuration.
func (p *Paths) StateFile() string {
	return filepath.Join(p.ConfigDir(), "state.json")
}

// SettingsFile returns the path to the static settings file.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.ConfigDir(), "settings.toml")
}

// LogFile returns the main runcat log file path.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogsDir(), "runcat.log")
}

// Deploy creates the directory structure (idempotent).
func (p *Paths) Deploy() {
	for _, dir := range []string{p.RootPath, p.ConfigDir(), p.LogsDir()} {
		_ = os.MkdirAll(dir, 0o755)
	}
}
