// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func titlesOf(groups []ImageGroup) []string {
	var titles []string
	for _, item := range Flatten(groups) {
		titles = append(titles, item.Title)
	}
	return titles
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path        string
		format      Format
		compression Compression
	}{
		{"catalog.json", FormatJSON, CompressionNone},
		{"catalog.JSONC", FormatJSON, CompressionNone},
		{"dir.v2/catalog.jsonl", FormatJSONL, CompressionNone},
		{"catalog.yml", FormatYAML, CompressionNone},
		{"catalog.yaml.zst", FormatYAML, CompressionZstd},
		{"catalog.cbor.lz4", FormatCBOR, CompressionLZ4},
	}
	for _, test := range tests {
		format, compression, err := DetectFormat(test.path)
		if err != nil {
			t.Errorf("DetectFormat(%q): %v", test.path, err)
			continue
		}
		if format != test.format || compression != test.compression {
			t.Errorf("DetectFormat(%q) = (%s, %s), want (%s, %s)",
				test.path, format, compression, test.format, test.compression)
		}
	}

	for _, bad := range []string{"catalog.txt", "catalog", "catalog.zst"} {
		if _, _, err := DetectFormat(bad); err == nil {
			t.Errorf("DetectFormat(%q) should fail", bad)
		}
	}
}

func TestReadFileJSONC(t *testing.T) {
	path := writeTestFile(t, "catalog.jsonc", `{
		// Featured shelf.
		"groups": [
			{
				"image": "hero",
				"items": [
					{"title": "Alpha", "subtitle": "first", "image": "a"},
					{"title": "Beta", "subtitle": "second", "image": "b"}, /* trailing comma */
				],
			},
		],
	}`)

	groups, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(groups) != 1 || groups[0].ImageRef != "hero" {
		t.Fatalf("groups = %+v", groups)
	}
	if got := titlesOf(groups); !slices.Equal(got, []string{"Alpha", "Beta"}) {
		t.Errorf("titles = %v", got)
	}
	if groups[0].Items[1].ImageRef != "b" {
		t.Errorf("item image = %q, want b", groups[0].Items[1].ImageRef)
	}
}

func TestReadFileJSONL(t *testing.T) {
	path := writeTestFile(t, "catalog.jsonl",
		`{"image": "one", "items": [{"title": "A", "subtitle": "a"}]}`+"\n"+
			"\n"+
			`{"image": "two", "items": [{"title": "B", "subtitle": "b"}, {"title": "C", "subtitle": "c"}]}`+"\n")

	groups, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (blank lines skipped)", len(groups))
	}
	if got := titlesOf(groups); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("titles = %v", got)
	}
}

func TestReadFileJSONLReportsLineNumber(t *testing.T) {
	path := writeTestFile(t, "catalog.jsonl", "{\"image\": \"ok\"}\n{not json}\n")
	_, err := ReadFile(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want mention of line 2", err)
	}
}

func TestReadFileYAML(t *testing.T) {
	path := writeTestFile(t, "catalog.yaml", `
groups:
  - image: poster
    items:
      - title: Gamma
        subtitle: third
        image: g
      - title: Delta
`)
	groups, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := titlesOf(groups); !slices.Equal(got, []string{"Gamma", "Delta"}) {
		t.Errorf("titles = %v", got)
	}
	if groups[0].Items[1].Subtitle != "" {
		t.Errorf("missing subtitle should decode as empty, got %q", groups[0].Items[1].Subtitle)
	}
}

func TestWriteFileCompressedFormats(t *testing.T) {
	directory := t.TempDir()
	want := DummyGroups()
	wantRevision, _ := ComputeRevision(want)

	for _, name := range []string{"catalog.cbor", "catalog.json.zst", "catalog.yaml.lz4", "catalog.jsonl.zst"} {
		path := filepath.Join(directory, name)
		if err := WriteFile(path, want); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		groups, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		revision, _ := ComputeRevision(groups)
		if revision != wantRevision {
			t.Errorf("%s: revision %s after reload, want %s", name, revision, wantRevision)
		}
	}

	leftovers, _ := filepath.Glob(filepath.Join(directory, "*.tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestReadFileCorruptCompression(t *testing.T) {
	path := writeTestFile(t, "catalog.json.zst", "definitely not zstd")
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected decompression error")
	}
}

func TestFileSourceMissingFileFeedsUnavailable(t *testing.T) {
	source, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	if !filepath.IsAbs(source.Path()) {
		t.Errorf("Path() = %q, want absolute", source.Path())
	}

	store := NewStore(source, discardLogger())
	snapshot, err := store.Initialize(context.Background())
	if err == nil {
		t.Fatal("expected error for missing catalog file")
	}
	if snapshot.Status != StatusUnavailable {
		t.Errorf("status = %v, want unavailable", snapshot.Status)
	}
}

func TestNewFileSourceRejectsUnknownExtension(t *testing.T) {
	if _, err := NewFileSource("catalog.csv"); err == nil {
		t.Fatal("expected error for unknown extension")
	}
}

func TestFileSourceHonorsCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := WriteFile(path, DummyGroups()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	source, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := source.Fetch(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
