// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/carousel/lib/codec"
)

// Format identifies the encoding of a catalog file.
type Format string

const (
	// FormatJSON is a {"groups": [...]} document. Comments and
	// trailing commas are accepted (JSONC), so .json and .jsonc files
	// share a decoder.
	FormatJSON Format = "json"
	// FormatJSONL holds one ImageGroup object per line.
	FormatJSONL Format = "jsonl"
	// FormatYAML is a YAML document with a top-level groups key.
	FormatYAML Format = "yaml"
	// FormatCBOR is a CBOR-encoded groups document.
	FormatCBOR Format = "cbor"
)

// document is the on-disk shape of JSON, YAML, and CBOR catalogs.
type document struct {
	Groups []ImageGroup `json:"groups" yaml:"groups"`
}

// DetectFormat derives the format and compression of a catalog file
// from its name: an optional trailing .zst or .lz4, preceded by one of
// .json, .jsonc, .jsonl, .yaml, .yml, or .cbor.
func DetectFormat(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))

	compression := CompressionNone
	switch {
	case strings.HasSuffix(name, ".zst"):
		compression = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".lz4"):
		compression = CompressionLZ4
		name = strings.TrimSuffix(name, ".lz4")
	}

	switch filepath.Ext(name) {
	case ".json", ".jsonc":
		return FormatJSON, compression, nil
	case ".jsonl":
		return FormatJSONL, compression, nil
	case ".yaml", ".yml":
		return FormatYAML, compression, nil
	case ".cbor":
		return FormatCBOR, compression, nil
	default:
		return "", "", fmt.Errorf("cannot determine catalog format of %q (want .json, .jsonc, .jsonl, .yaml, .yml or .cbor, optionally followed by .zst or .lz4)", path)
	}
}

// Decode parses catalog data in the given format.
func Decode(data []byte, format Format) ([]ImageGroup, error) {
	switch format {
	case FormatJSON:
		var parsed document
		if err := json.Unmarshal(jsonc.ToJSON(data), &parsed); err != nil {
			return nil, fmt.Errorf("parse JSON catalog: %w", err)
		}
		return parsed.Groups, nil

	case FormatJSONL:
		return decodeJSONL(data)

	case FormatYAML:
		var parsed document
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse YAML catalog: %w", err)
		}
		return parsed.Groups, nil

	case FormatCBOR:
		var parsed document
		if err := codec.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse CBOR catalog: %w", err)
		}
		return parsed.Groups, nil

	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// decodeJSONL parses one group per non-empty line.
func decodeJSONL(data []byte) ([]ImageGroup, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	// Groups with many items can exceed the default 64KB line limit.
	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var groups []ImageGroup
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var group ImageGroup
		if err := json.Unmarshal(line, &group); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		groups = append(groups, group)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read JSONL catalog: %w", err)
	}
	return groups, nil
}

// Encode serializes groups in the given format.
func Encode(groups []ImageGroup, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(document{Groups: groups}, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil

	case FormatJSONL:
		var buffer bytes.Buffer
		encoder := json.NewEncoder(&buffer)
		for _, group := range groups {
			if err := encoder.Encode(group); err != nil {
				return nil, err
			}
		}
		return buffer.Bytes(), nil

	case FormatYAML:
		return yaml.Marshal(document{Groups: groups})

	case FormatCBOR:
		return codec.Marshal(document{Groups: groups})

	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// ReadFile loads a catalog file, detecting format and compression from
// the path.
func ReadFile(path string) ([]ImageGroup, error) {
	format, compression, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	data, err := decompress(raw, compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	groups, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return groups, nil
}

// WriteFile writes groups to path in the format and compression its
// name implies. The file is written to a temporary sibling and renamed
// into place, so a watcher never observes a partial catalog.
func WriteFile(path string, groups []ImageGroup) error {
	format, compression, err := DetectFormat(path)
	if err != nil {
		return err
	}

	encoded, err := Encode(groups, format)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data, err := compress(encoded, compression)
	if err != nil {
		return err
	}

	temporary, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Chmod(0o644); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Close(); err != nil {
		return err
	}
	return os.Rename(temporaryPath, path)
}

// FileSource reads the catalog from a file on every Fetch.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path. The format is checked
// up front so a bad extension fails at startup rather than on first
// load.
func NewFileSource(path string) (*FileSource, error) {
	if _, _, err := DetectFormat(path); err != nil {
		return nil, err
	}
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: absolutePath}, nil
}

// Path returns the absolute catalog path.
func (source *FileSource) Path() string { return source.path }

// Fetch reads and decodes the catalog file.
func (source *FileSource) Fetch(ctx context.Context) ([]ImageGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(source.path)
}

// Name returns "file:" followed by the catalog path.
func (source *FileSource) Name() string { return "file:" + source.path }
