// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package broadcast implements latest-value publication for observable
// state. A [Latest] holds the most recently published value and fans
// it out to any number of subscriber channels.
//
// Each subscriber channel has capacity 1. When a subscriber has not
// read the previous value yet, Publish replaces it with the new one
// instead of blocking or dropping the newer value. Subscribers that
// fall behind skip intermediate values but always end up holding the
// latest one, which is the only value a renderer needs.
package broadcast
