package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays the YAML file at path onto settings. Keys absent from the
// file keep their current values. "${VAR}" references are expanded from the
// environment before parsing.
func LoadFile(path string, settings *Settings) error {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), settings); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// SaveFile writes settings as YAML, for `yt2t` users who want a starting file.
func SaveFile(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
