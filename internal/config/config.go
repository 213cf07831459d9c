package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/preptura/internal/diagnose"
)

// DefaultFileName is the per-user preferences document, resolved
// against the home directory when no explicit path is given.
const DefaultFileName = ".preptura.yaml"

type Config struct {
	DefaultFolder string          `yaml:"default_folder" json:"default_folder"`
	Checks        diagnose.Checks `yaml:"checks" json:"checks"`
	Listen        string          `yaml:"listen" json:"listen"`
}

// Default returns the configuration used when no file exists yet:
// every check enabled, no default folder, local-only listen address.
func Default() *Config {
	return &Config{
		Checks: diagnose.DefaultChecks(),
		Listen: "127.0.0.1:8408",
	}
}

// DefaultPath returns the preferences file location in the user's home
// directory, falling back to the working directory when home is not
// resolvable.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads the config document at path. An absent file yields the
// defaults, not an error; the file is only written on explicit save.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the document back to path.
func (c *Config) Save(path string) error {
	if path == "" {
		return errors.New("config path is required")
	}
	if err := c.validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.DefaultFolder != "" {
		info, err := os.Stat(c.DefaultFolder)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("default_folder %s is not a directory", c.DefaultFolder)
		}
	}
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	return nil
}
