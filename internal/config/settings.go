package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"runcat/internal/utils"
)

// Settings holds static daemon configuration read once at startup.
type Settings struct {
	API     APISettings     `toml:"api"`
	Assets  AssetsSettings  `toml:"assets"`
	Logging LoggingSettings `toml:"logging"`
}

// APISettings controls the local HTTP control API.
type APISettings struct {
	Enabled bool   `toml:"enabled"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

// AssetsSettings controls where animation frames are loaded from.
type AssetsSettings struct {
	Dir string `toml:"dir"`
}

// LoggingSettings controls log output.
type LoggingSettings struct {
	File string `toml:"file"`
}

// DefaultSettings returns the defaults for the given installation root.
// The API is off by default and binds loopback only when enabled.
func DefaultSettings(paths *utils.Paths) Settings {
	return Settings{
		API: APISettings{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    10734,
		},
		Assets: AssetsSettings{
			Dir: paths.AssetsDir(),
		},
		Logging: LoggingSettings{
			File: paths.LogFile(),
		},
	}
}

// LoadSettings reads settings.toml, falling back to defaults. A missing
// file is not an error; a malformed file returns the defaults alongside
// the parse error so the caller can log and continue.
func LoadSettings(paths *utils.Paths) (Settings, error) {
	cfg := DefaultSettings(paths)
	path := paths.SettingsFile()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultSettings(paths), fmt.Errorf("parse settings: %w", err)
	}
	return cfg, nil
}
