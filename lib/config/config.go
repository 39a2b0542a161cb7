// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "CAROUSEL_CONFIG"

// DefaultSheetTitle is the bottom sheet heading when none is configured.
const DefaultSheetTitle = "Items Per Page Count"

// Config is the master configuration.
type Config struct {
	// Catalog selects where carousel data comes from.
	Catalog CatalogConfig `yaml:"catalog"`

	// Viewer configures the terminal screen.
	Viewer ViewerConfig `yaml:"viewer"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// CatalogConfig selects the catalog source. With neither Path nor DSN
// set, the built-in static catalog is used.
type CatalogConfig struct {
	// Path is a catalog file (.json, .jsonc, .jsonl, .yaml, .yml or
	// .cbor, optionally compressed with a trailing .zst or .lz4).
	Path string `yaml:"path"`

	// Watch reloads Path whenever the file is rewritten.
	Watch bool `yaml:"watch"`

	// DSN is a Postgres connection string. Mutually exclusive with Path.
	DSN string `yaml:"dsn"`
}

// ViewerConfig configures the terminal screen.
type ViewerConfig struct {
	// InitialQuery is applied to the search box at startup.
	InitialQuery string `yaml:"initial_query"`

	// SheetTitle heads the bottom sheet.
	// Default: Items Per Page Count
	SheetTitle string `yaml:"sheet_title"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Output is a file that receives JSON log records in addition to
	// the binary's normal log destination. Empty disables it.
	Output string `yaml:"output"`
}

// Default returns the default configuration: the static catalog, no
// watcher, an empty initial query, and info-level logging.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			SheetTitle: DefaultSheetTitle,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by CAROUSEL_CONFIG. If
// the variable is unset, Load returns [Default] and reports false.
func Load() (*Config, bool, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), false, nil
	}
	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their [Default] values. Unknown keys are an error so
// that a misspelled option does not silently fall back to a default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// loadFile decodes a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Catalog.Path = expandVars(c.Catalog.Path, vars)
	c.Catalog.DSN = expandVars(c.Catalog.DSN, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, joined with [errors.Join].
func (c *Config) Validate() error {
	var errs []error

	if c.Catalog.Path != "" && c.Catalog.DSN != "" {
		errs = append(errs, errors.New("catalog.path and catalog.dsn are mutually exclusive"))
	}

	if c.Catalog.Watch && c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog.watch requires catalog.path"))
	}

	if strings.TrimSpace(c.Viewer.SheetTitle) == "" {
		errs = append(errs, errors.New("viewer.sheet_title must not be empty"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses Level. An empty Level means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return 0, fmt.Errorf("log.level must be one of: [debug info warn error], got %q", l.Level)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
