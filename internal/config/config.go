// Package config provides configuration types, defaults, and
// persistence for armature.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/armature-dev/armature/internal/log"
)

// Config holds all configuration options for armature.
type Config struct {
	Root      string          `mapstructure:"root"`
	UI        UIConfig        `mapstructure:"ui"`
	Scaffold  ScaffoldConfig  `mapstructure:"scaffold"`
	Standards StandardsConfig `mapstructure:"standards"`
}

// UIConfig holds terminal output options.
type UIConfig struct {
	Color bool `mapstructure:"color"` // Styled output (default true)
	Quiet bool `mapstructure:"quiet"` // Suppress info/success lines
}

// ScaffoldConfig holds defaults applied to generated projects.
type ScaffoldConfig struct {
	Author   string `mapstructure:"author"`   // Default project author
	License  string `mapstructure:"license"`  // SPDX identifier, e.g. "MIT"
	Language string `mapstructure:"language"` // Default language for init
}

// StandardsConfig holds standards resolution options.
type StandardsConfig struct {
	// Dir overrides the embedded standards definitions with a local
	// directory of per-language standards.
	Dir string `mapstructure:"dir"`

	// StrictMode promotes warnings to violations during validation.
	StrictMode bool `mapstructure:"strict_mode"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			Color: true,
			Quiet: false,
		},
		Scaffold: ScaffoldConfig{
			License:  "MIT",
			Language: "python",
		},
		Standards: StandardsConfig{
			StrictMode: false,
		},
	}
}

// knownLanguages are the languages armature ships scaffolding
// templates for.
var knownLanguages = map[string]bool{
	"python":     true,
	"typescript": true,
}

// Validate checks the configuration for errors. Empty values fall
// back to defaults and are always valid.
func Validate(cfg Config) error {
	if cfg.Scaffold.Language != "" && !knownLanguages[cfg.Scaffold.Language] {
		return fmt.Errorf("scaffold.language must be \"python\" or \"typescript\", got %q", cfg.Scaffold.Language)
	}
	if cfg.Standards.Dir != "" {
		info, err := os.Stat(cfg.Standards.Dir)
		if err != nil {
			return fmt.Errorf("standards.dir %q: %w", cfg.Standards.Dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("standards.dir %q is not a directory", cfg.Standards.Dir)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string
// with comments.
func DefaultConfigTemplate() string {
	return `# Armature Configuration

# Project root the registry and patch targets resolve against
# (default: current directory)
# root: /path/to/project

# Terminal output settings
ui:
  color: true   # Styled output with status glyphs
  quiet: false  # Suppress per-file progress, keep warnings and errors

# Defaults applied to generated projects
scaffold:
  # author: Ada Lovelace
  license: MIT
  language: python   # Default language for 'armature init'

# Standards resolution
standards:
  # Override the built-in standards with a local directory:
  # dir: /path/to/standards
  strict_mode: false  # Treat warnings as violations during validation
`
}

// WriteDefaultConfig creates a config file at the given path with
// default settings and comments. Creates the parent directory if it
// doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
