// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

// DuplicateKeyMode selects how the value-model decoder (see codec.go)
// handles an Object that repeats a key.
type DuplicateKeyMode int

const (
	// DuplicateKeyError fails decoding with KindDuplicateKey. This is
	// the default.
	DuplicateKeyError DuplicateKeyMode = iota
	// DuplicateKeyKeepFirst discards every value after the first one
	// seen for a given key.
	DuplicateKeyKeepFirst
	// DuplicateKeyKeepLast overwrites the value at a key's original
	// insertion position with the last one seen, preserving the
	// position the key first appeared at.
	DuplicateKeyKeepLast
)

// UnicodeNormalization selects the key-equality predicate used for
// duplicate-key detection.
type UnicodeNormalization int

const (
	// NormalizeNone compares keys by raw byte equality ("Basic"
	// compliance in the BONJSON conformance suite).
	NormalizeNone UnicodeNormalization = iota
	// NormalizeNFC compares keys by their NFC-normalized form
	// ("Secure" compliance).
	NormalizeNFC
)

// Default resource limits, carried over from the BONJSON reference
// limits so a default-configured decoder rejects the same pathological
// inputs the reference implementation does.
const (
	DefaultMaxDocumentSize   = 2_000_000_000
	DefaultMaxDepth          = 512
	DefaultMaxContainerSize  = 1_000_000
	DefaultMaxStringLength   = 10_000_000
	DefaultMaxBigNumberBytes = 8
)

// DecoderConfig controls the strictness and resource ceilings of a
// [Decoder] and of [Decode]. The zero value is not a valid
// configuration; use [DefaultDecoderConfig].
type DecoderConfig struct {
	// AllowNul permits a NUL (0x00) byte inside a decoded string.
	// Default: false.
	AllowNul bool
	// AllowNaNInfinity permits decoding non-finite floats. Default: false.
	AllowNaNInfinity bool
	// AllowTrailingBytes permits bytes to remain after the root value
	// when decoding through [UnmarshalConfig]. Default: false.
	AllowTrailingBytes bool
	// DuplicateKeyMode selects the policy for repeated object keys.
	// Only consulted by the value-model driver in codec.go; the raw
	// Decoder has no concept of objects beyond event shape.
	DuplicateKeyMode DuplicateKeyMode
	// UnicodeNormalization selects Basic or Secure key-equality
	// compliance.
	UnicodeNormalization UnicodeNormalization
	// MaxDepth bounds container nesting.
	MaxDepth int
	// MaxContainerSize bounds the element/pair count of a single
	// array or object.
	MaxContainerSize int
	// MaxStringLength bounds the byte length of a single string.
	MaxStringLength int
	// MaxDocumentSize bounds the total input length.
	MaxDocumentSize int
}

// DefaultDecoderConfig returns the configuration used by [Decode] and
// [Unmarshal] when no explicit configuration is supplied: strict
// (rejects NUL, non-finite floats, trailing bytes, duplicate keys)
// with the reference resource limits.
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		MaxDepth:         DefaultMaxDepth,
		MaxContainerSize: DefaultMaxContainerSize,
		MaxStringLength:  DefaultMaxStringLength,
		MaxDocumentSize:  DefaultMaxDocumentSize,
	}
}

// EncoderConfig controls what an [Encoder] is willing to write.
type EncoderConfig struct {
	// AllowNul permits writing a string containing a NUL byte.
	AllowNul bool
	// AllowNaNInfinity permits writing NaN and ±Infinity floats.
	AllowNaNInfinity bool
}

// DefaultEncoderConfig returns the strict configuration used by
// [Encode] and [Marshal].
func DefaultEncoderConfig() EncoderConfig {
	return EncoderConfig{}
}
