package config

import (
	"os"
	"path/filepath"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil // No config file found, return defaults
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if IsYAML(path) {
		return ParseYAML(f)
	}
	return Parse(f)
}

// DefaultPath is where `config save` writes when no file exists yet.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "simplepaint", "config.rc")
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		paths = append(paths, filepath.Join(wd, ".simplepaintrc"))
	}
	home, _ := os.UserHomeDir()
	return append(paths,
		filepath.Join(home, ".config", "simplepaint", "config.rc"),
		filepath.Join(home, ".config", "simplepaint", "simplepaint.rc"),
		filepath.Join(home, ".config", "simplepaint", "config.yaml"),
	)
}
