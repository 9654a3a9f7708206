package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"bioprov/internal/artifacts"
	"bioprov/internal/store"
)

// getConfigDir returns the config directory path.
// Uses BIOPROV_CONFIG_DIR env var if set, otherwise defaults to ~/.bioprov.
// This is computed dynamically to support test isolation.
func getConfigDir() string {
	if dir := os.Getenv("BIOPROV_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bioprov")
}

// Dir returns the configuration directory path
func Dir() string {
	return getConfigDir()
}

// SettingsPath returns the settings file path
func SettingsPath() string {
	return filepath.Join(getConfigDir(), "settings.yaml")
}

// DataDir returns the well-known data directory for pipeline inputs
func DataDir() string {
	return filepath.Join(getConfigDir(), "data")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	if err := os.MkdirAll(getConfigDir(), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.MkdirAll(DataDir(), 0700)
}

// Settings are the process-wide defaults loaded from settings.yaml.
type Settings struct {
	Backend  string `yaml:"backend"`   // store backend: json or sqlite
	DBFile   string `yaml:"db_file"`   // store file name, empty = backend default
	Threads  int    `yaml:"threads"`   // 0 = half of the available processors
	LogLevel string `yaml:"log_level"` // trace, debug, info, warn, off
}

// StoreFileName returns the configured store file name or the backend default.
func (s *Settings) StoreFileName() string {
	if s.DBFile != "" {
		return s.DBFile
	}
	if s.Backend == store.BackendSQLite {
		return "db.sqlite"
	}
	return "db.json"
}

// loadDefaultSettings parses default settings from the embedded artifact.
func loadDefaultSettings() Settings {
	var settings Settings
	if err := yaml.Unmarshal(artifacts.GlobalSettings, &settings); err != nil {
		panic("failed to parse embedded settings: " + err.Error())
	}
	return settings
}

// LoadSettings loads the settings from ~/.bioprov/settings.yaml.
// Falls back to embedded defaults if the file doesn't exist.
func LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			settings := loadDefaultSettings()
			return &settings, nil
		}
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves the settings to ~/.bioprov/settings.yaml
func SaveSettings(settings *Settings) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	header := []byte("# BioProv settings\n# See: bioprov --help\n\n")
	return os.WriteFile(SettingsPath(), append(header, data...), 0600)
}
