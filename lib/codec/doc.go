// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides go-bonjson's standard CBOR encoding
// configuration, used by the `bonjson convert` subcommand to bridge
// BONJSON documents to and from CBOR — the closest widely deployed
// binary JSON-model codec, useful as a migration target and as a
// comparison baseline when benchmarking wire size.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes, which matters
// when comparing BONJSON's own canonical-encoding guarantee against
// CBOR's.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec
