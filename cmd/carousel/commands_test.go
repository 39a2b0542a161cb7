// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/cli"
	"github.com/bureau-foundation/carousel/lib/config"
)

// runCommand executes the root command with args and returns what it
// wrote to stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")

	root := newRootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestSearchText(t *testing.T) {
	output, err := runCommand(t, "search", "TITLE 2")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(output, "List item title 2") {
		t.Errorf("missing match:\n%s", output)
	}
	if strings.Contains(output, "List item title 1") || strings.Contains(output, "List item title 3") {
		t.Errorf("non-matching items listed:\n%s", output)
	}
}

func TestSearchJSON(t *testing.T) {
	output, err := runCommand(t, "--json", "search", "subtitle 3")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var result searchResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	want := catalog.Item{Title: "List item title 3", Subtitle: "List item subtitle 3", ImageRef: catalog.DummyImage}
	if result.Query != "subtitle 3" || len(result.Items) != 1 || result.Items[0] != want {
		t.Errorf("result = %+v", result)
	}
	if result.Revision == "" {
		t.Error("revision missing")
	}
}

func TestSearchWithoutQueryListsEverything(t *testing.T) {
	output, err := runCommand(t, "--json", "search")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var result searchResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 3 {
		t.Errorf("got %d items, want 3", len(result.Items))
	}
}

func TestSearchNoMatches(t *testing.T) {
	output, err := runCommand(t, "search", "zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.TrimSpace(output) != "No items match." {
		t.Errorf("output = %q", output)
	}

	output, err = runCommand(t, "--json", "search", "zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(output, `"items": []`) {
		t.Errorf("empty result should encode as []:\n%s", output)
	}
}

func TestTopJSON(t *testing.T) {
	output, err := runCommand(t, "--json", "top")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	var entries []characterEntry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	want := []characterEntry{{"t", 24}, {"i", 18}, {"e", 12}}
	if len(entries) != len(want) {
		t.Fatalf("entries = %+v, want %+v", entries, want)
	}
	for index := range want {
		if entries[index] != want[index] {
			t.Errorf("entry %d = %+v, want %+v", index, entries[index], want[index])
		}
	}
}

func TestTopNoCharacters(t *testing.T) {
	output, err := runCommand(t, "top", "zzz")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if strings.TrimSpace(output) != "No letters or digits." {
		t.Errorf("output = %q", output)
	}
}

func TestGroups(t *testing.T) {
	output, err := runCommand(t, "groups")
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	for _, want := range []string{"IMAGE", "dummyimage", "List item title 1", "List item title 3", "2 groups"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	output, err = runCommand(t, "--json", "groups")
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	var summaries []groupSummary
	if err := json.Unmarshal([]byte(output), &summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 || summaries[0].Items != 2 || summaries[1].Items != 1 {
		t.Errorf("summaries = %+v", summaries)
	}
}

func TestExportThenSearchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml.zst")
	output, err := runCommand(t, "export", "--out", path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(output, "Wrote 2 groups (3 items)") {
		t.Errorf("output = %q", output)
	}

	output, err = runCommand(t, "--catalog", path, "--json", "search", "title")
	if err != nil {
		t.Fatalf("search exported catalog: %v", err)
	}
	var result searchResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 3 {
		t.Errorf("exported catalog has %d items, want 3", len(result.Items))
	}
	revision, err := catalog.ComputeRevision(catalog.DummyGroups())
	if err != nil {
		t.Fatal(err)
	}
	if result.Revision != revision.String() {
		t.Errorf("revision changed across export: %s", result.Revision)
	}
}

func TestExportValidation(t *testing.T) {
	_, err := runCommand(t, "export")
	if code := cli.ExitCode(err); code != cli.ExitCodeValidation {
		t.Errorf("missing --out: exit code %d (%v)", code, err)
	}

	_, err = runCommand(t, "export", "--out", filepath.Join(t.TempDir(), "catalog.txt"))
	if code := cli.ExitCode(err); code != cli.ExitCodeValidation {
		t.Errorf("bad extension: exit code %d (%v)", code, err)
	}
}

func TestMissingCatalogFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := runCommand(t, "--catalog", path, "search", "x")
	if code := cli.ExitCode(err); code != cli.ExitCodeUnavailable {
		t.Errorf("exit code %d (%v), want unavailable", code, err)
	}
}

func TestConfigSelectsCatalog(t *testing.T) {
	directory := t.TempDir()
	catalogPath := filepath.Join(directory, "items.json")
	groups := []catalog.ImageGroup{{
		ImageRef: "poster",
		Items:    []catalog.Item{{Title: "Alpha", Subtitle: "first"}, {Title: "Beta", Subtitle: "second"}},
	}}
	if err := catalog.WriteFile(catalogPath, groups); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(directory, "carousel.yaml")
	if err := os.WriteFile(configPath, []byte("catalog:\n  path: "+catalogPath+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := runCommand(t, "--config", configPath, "search", "ALPHA")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(output, "Alpha") || strings.Contains(output, "Beta") {
		t.Errorf("output:\n%s", output)
	}
}

func TestMissingConfigIsNotFound(t *testing.T) {
	_, err := runCommand(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "groups")
	if code := cli.ExitCode(err); code != cli.ExitCodeNotFound {
		t.Errorf("exit code %d (%v), want not found", code, err)
	}
}

func TestConflictingSources(t *testing.T) {
	_, err := runCommand(t, "--catalog", "items.json", "--dsn", "postgres://localhost/x", "groups")
	if code := cli.ExitCode(err); code != cli.ExitCodeValidation {
		t.Errorf("exit code %d (%v), want validation", code, err)
	}
}

func TestInitDBRequiresDSN(t *testing.T) {
	_, err := runCommand(t, "init-db")
	if code := cli.ExitCode(err); code != cli.ExitCodeValidation {
		t.Errorf("exit code %d (%v), want validation", code, err)
	}
}
