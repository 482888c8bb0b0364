package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserPrefs are per-user settings. The core treats them as opaque.
type UserPrefs struct {
	// DataFilePath overrides StorageConfig.DataPath when set.
	DataFilePath string         `yaml:"data_file_path"`
	Window       WindowSettings `yaml:"window"`
}

// WindowSettings records the last window geometry of a front end.
type WindowSettings struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	X      *int `yaml:"x,omitempty"`
	Y      *int `yaml:"y,omitempty"`
}

// DefaultUserPrefs returns the preferences used before any are saved.
func DefaultUserPrefs() UserPrefs {
	return UserPrefs{
		DataFilePath: "data/addressbook.json",
		Window: WindowSettings{
			Width:  740,
			Height: 600,
		},
	}
}

// LoadUserPrefs reads preferences from path. A missing file yields the defaults.
func LoadUserPrefs(path string) (UserPrefs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultUserPrefs(), nil
	}
	if err != nil {
		return UserPrefs{}, fmt.Errorf("read prefs %s: %w", path, err)
	}

	prefs := DefaultUserPrefs()
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return UserPrefs{}, fmt.Errorf("parse prefs %s: %w", path, err)
	}
	return prefs, nil
}

// SaveUserPrefs writes preferences to path, creating parent directories.
func SaveUserPrefs(path string, prefs UserPrefs) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create prefs dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs %s: %w", path, err)
	}
	return nil
}
