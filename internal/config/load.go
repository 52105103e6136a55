package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigFile is probed in the working directory when -config is
// not given.
const defaultConfigFile = "volview.yaml"

// Load builds the configuration with priority defaults < file < flags.
// An explicit -config path must exist; the default file is optional.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	if err := loadFromFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)
	return cfg, nil
}

// loadFromFile merges a YAML file over the existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
