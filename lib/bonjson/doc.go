// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bonjson implements the BONJSON binary encoding: a format
// bijectively compatible with the JSON data model (null, booleans,
// finite numbers, strings, arrays, objects) but tagged byte-for-byte
// for faster parsing and a more compact wire size than text JSON.
//
// The package provides three layers, leaf-first:
//
//   - Type-code classification: the first byte of every encoded item
//     is a type code; mask predicates and size lookups live in
//     typecode.go.
//   - [Encoder] and [Decoder]: a streaming, narrowing writer and a
//     cursor-based reader over a byte slice (decoded strings are
//     copies, not views into the slice). Both operate below the
//     value model — callers that already know their shape (the
//     generic-serialization adapter contract in adapter.go) can drive
//     them directly and skip materializing a [Value].
//   - [Value]: a dynamic, JSON-shaped union with [Encode] and [Decode]
//     as the recursive drivers that bridge it to the Encoder/Decoder.
//     [Decode] enforces the duplicate-key policy and the resource
//     limits in [DecoderConfig]; [Encode] applies neither.
//
// Two historical wire-layout variants exist in BONJSON's own history:
// one keying small integers to `code` directly with `0xB6`-`0xB8` as
// container markers (and further extensions for typed arrays and
// record definitions), and the one this package implements, which
// keys small integers to `code - 100` and uses `0xFC`/`0xFD`/`0xFE`
// for array/object/container-end. This package implements only the
// latter; the former's reserved ranges are hard rejects here, not a
// fallback path.
//
// For buffer-oriented use:
//
//	data, err := bonjson.Marshal(value)
//	value, err := bonjson.Unmarshal(data)
//
// For stream-oriented use:
//
//	encoder := bonjson.NewEncoder(conn)
//	err := encoder.WriteValue(value)
//
//	decoder := bonjson.NewDecoder(buf)
//	event, err := decoder.NextEvent()
//
// # Compliance levels
//
// Basic compliance treats two object keys as distinct whenever their
// raw bytes differ. Secure compliance additionally NFC-normalizes
// keys (via golang.org/x/text/unicode/norm) before comparing them, so
// visually identical keys that differ only in Unicode composition
// collide. Select the level via [DecoderConfig.UnicodeNormalization].
package bonjson
