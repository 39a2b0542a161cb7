// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/carousel/lib/codec"
)

// Revision is a BLAKE3 digest of a catalog's canonical CBOR encoding.
// Two loads that produce the same groups in the same order have the
// same revision regardless of which file format they came from.
type Revision [32]byte

// revisionDomainKey keys the hash so catalog revisions never collide
// with digests of the same bytes computed for another purpose.
var revisionDomainKey = [32]byte{
	'c', 'a', 'r', 'o', 'u', 's', 'e', 'l', '.', 'c', 'a', 't', 'a', 'l', 'o', 'g',
	'.', 'r', 'e', 'v', 'i', 's', 'i', 'o', 'n', 0, 0, 0, 0, 0, 0, 0,
}

// String returns the first 8 bytes of the digest in hex, enough to
// tell revisions apart in logs and the status bar.
func (revision Revision) String() string {
	return hex.EncodeToString(revision[:8])
}

// IsZero reports whether the revision is unset.
func (revision Revision) IsZero() bool {
	return revision == Revision{}
}

// ComputeRevision hashes the deterministic CBOR encoding of groups.
func ComputeRevision(groups []ImageGroup) (Revision, error) {
	data, err := codec.Marshal(groups)
	if err != nil {
		return Revision{}, fmt.Errorf("encode catalog for revision: %w", err)
	}

	// NewKeyed only fails for keys that are not 32 bytes long.
	hasher, err := blake3.NewKeyed(revisionDomainKey[:])
	if err != nil {
		panic("catalog: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)

	var revision Revision
	copy(revision[:], hasher.Sum(nil))
	return revision, nil
}
