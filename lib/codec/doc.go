// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the carousel's CBOR encoding configuration.
//
// CBOR serves two purposes here. Catalog files with a .cbor extension
// are decoded with [Unmarshal], and [Marshal] produces the canonical
// byte form of a catalog that [catalog.Revision] hashes. The encoder
// uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. The same
// logical catalog always produces identical bytes, so identical
// catalogs hash to identical revisions regardless of the file format
// they were loaded from.
//
// Catalog types carry `json` tags (and `yaml` tags for YAML catalog
// files), never `cbor` tags. fxamacker/cbor reads `json` tags when
// `cbor` tags are absent, so JSON and CBOR catalogs share field names.
package codec
