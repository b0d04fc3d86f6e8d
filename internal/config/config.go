// Package config loads user defaults from ~/.tagame/config.yaml.
package config

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/bagtoad/tagame/internal/scanner"
	"github.com/bagtoad/tagame/internal/tagfile"
)

// DefaultExtension is the tag file extension used when nothing else is set.
const DefaultExtension = "txt"

// ErrInvalid is the kind of every config validation failure.
var ErrInvalid = errors.Base("invalid config")

// Config holds defaults that command-line flags may override.
type Config struct {
	// Extension of tag files, without the leading dot.
	Extension string `yaml:"extension"`
	// Exclude lists doublestar patterns matched against file base names.
	Exclude []string `yaml:"exclude"`
	// Write makes replace and insert persist their results by default.
	Write bool `yaml:"write"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Extension: DefaultExtension}
}

// DefaultPath returns the path to the user's config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tagame", "config.yaml"), nil
}

// Load reads the config file at path. An empty path means DefaultPath, and a
// missing default file yields Default. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Errorf("cannot open config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Errorf("cannot parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalizes the extension and checks exclude patterns.
func (c *Config) Validate() error {
	ext, err := tagfile.NormalizeExtension(c.Extension)
	if err != nil {
		return errors.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	c.Extension = ext
	if err := scanner.ValidatePatterns(c.Exclude); err != nil {
		return errors.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	return nil
}
