// Package config loads posh's on-disk settings and resolves the
// well-known file paths (config file, history file) under the user's
// config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds settings that shape the interactive experience but that
// spec.md leaves to the implementation: coloring, history size, and
// extra directories to search before $PATH.
type Config struct {
	Color        string   `yaml:"color"` // "auto", "always", "never"
	HistorySize  int      `yaml:"history_size"`
	PathOverride []string `yaml:"path_override,omitempty"`
}

const DefaultHistorySize = 1000

func Default() *Config {
	return &Config{
		Color:       "auto",
		HistorySize: DefaultHistorySize,
	}
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "posh"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// HistoryPath returns the path readline uses to persist history across
// sessions. It does not depend on HISTFILE: HISTFILE (spec.md §6) is a
// one-time preload source consulted separately by the REPL driver.
func HistoryPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// Load reads the config file if present, falling back to defaults for
// anything missing or for a file that doesn't exist at all.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to the config file, creating the config directory if
// needed.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	path, err := Path()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}
