// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "carousel.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Catalog.Path != "" || cfg.Catalog.DSN != "" {
		t.Errorf("expected static catalog by default, got %+v", cfg.Catalog)
	}

	if cfg.Viewer.SheetTitle != "Items Per Page Count" {
		t.Errorf("expected default sheet title, got %q", cfg.Viewer.SheetTitle)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_WithoutCarouselConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, fromFile, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if fromFile {
		t.Error("expected fromFile=false without CAROUSEL_CONFIG")
	}
	if cfg.Viewer.SheetTitle != DefaultSheetTitle {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_WithCarouselConfig(t *testing.T) {
	configPath := writeConfig(t, `
catalog:
  path: /data/catalog.yaml
  watch: true
viewer:
  initial_query: title
log:
  level: debug
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, fromFile, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !fromFile {
		t.Error("expected fromFile=true")
	}

	if cfg.Catalog.Path != "/data/catalog.yaml" || !cfg.Catalog.Watch {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Viewer.InitialQuery != "title" {
		t.Errorf("initial_query = %q", cfg.Viewer.InitialQuery)
	}
	// Unset fields keep their defaults.
	if cfg.Viewer.SheetTitle != DefaultSheetTitle {
		t.Errorf("sheet_title = %q, want default", cfg.Viewer.SheetTitle)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v", level, err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "absent.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFile(empty) failed: %v", err)
	}
	if cfg.Viewer.SheetTitle != DefaultSheetTitle {
		t.Errorf("empty file should keep defaults, got %+v", cfg)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "catalog:\n  pth: typo.json\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := LoadFile(writeConfig(t, `
catalog:
  path: ${HOME}/catalog.json
log:
  output: ${CAROUSEL_TEST_LOGS:-/tmp/carousel}/viewer.jsonl
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Catalog.Path != "/home/tester/catalog.json" {
		t.Errorf("path = %q", cfg.Catalog.Path)
	}
	if cfg.Log.Output != "/tmp/carousel/viewer.jsonl" {
		t.Errorf("output = %q", cfg.Log.Output)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("CAROUSEL_TEST_VALUE", "from-env")

	vars := map[string]string{"HOME": "/home/user", "EMPTY": ""}
	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/x", "/home/user/x"},
		{"${CAROUSEL_TEST_VALUE}", "from-env"},
		{"${CAROUSEL_TEST_UNSET:-fallback}", "fallback"},
		{"${EMPTY:-fallback}", "fallback"},
		{"${CAROUSEL_TEST_UNSET}", ""},
		{"plain", "plain"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Catalog.Path = "catalog.json"
	cfg.Catalog.DSN = "postgres://localhost/carousel"
	cfg.Viewer.SheetTitle = "  "
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"mutually exclusive", "sheet_title", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q: %v", want, err)
		}
	}
}

func TestValidate_WatchRequiresPath(t *testing.T) {
	cfg := Default()
	cfg.Catalog.Watch = true
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "catalog.watch") {
		t.Errorf("Validate() = %v, want catalog.watch error", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for input, want := range tests {
		level, err := LogConfig{Level: input}.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q): %v", input, err)
			continue
		}
		if level != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", input, level, want)
		}
	}
}
