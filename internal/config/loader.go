package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/docstack-dev/docstack/internal/defs"
)

// Path returns the configuration file path for a docs root.
func Path(docsRoot string) string {
	return filepath.Join(filepath.Clean(docsRoot), defs.StateDir, defs.ConfigYAML)
}

// Load reads the configuration from docsRoot/.docstack/config.yaml.
// Returns ErrConfigNotFound when no file exists and ErrInvalidYAML when
// the file cannot be parsed. Defaults are applied to missing fields.
func Load(docsRoot string) (*Config, error) {
	data, err := os.ReadFile(Path(docsRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("config read: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config parse: %w", ErrInvalidYAML)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Write validates cfg and persists it to docsRoot/.docstack/config.yaml,
// creating the state directory if needed.
func Write(docsRoot string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	stateDir := filepath.Join(filepath.Clean(docsRoot), defs.StateDir)
	if err := os.MkdirAll(stateDir, defs.DirPerm); err != nil {
		return fmt.Errorf("config mkdir %q: %w", stateDir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config marshal: %w", err)
	}
	if err := os.WriteFile(Path(docsRoot), data, defs.FilePerm); err != nil {
		return fmt.Errorf("config write: %w", err)
	}
	return nil
}
