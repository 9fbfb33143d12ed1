// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// Marshal encodes v to a newly allocated byte slice using the default
// encoder configuration.
func Marshal(v Value) ([]byte, error) {
	return MarshalConfig(v, DefaultEncoderConfig())
}

// MarshalConfig encodes v to a newly allocated byte slice.
func MarshalConfig(v Value, config EncoderConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoderConfig(&buf, config)
	if err := Encode(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes v through enc, the same as [Encoder.WriteValue]. It
// exists alongside WriteValue for symmetry with [Decode], which does
// carry extra value-model behavior that WriteValue does not need.
func Encode(enc *Encoder, v Value) error {
	return enc.WriteValue(v)
}

// Unmarshal decodes a single BONJSON document from data using the
// default decoder configuration, which rejects trailing bytes.
func Unmarshal(data []byte) (Value, error) {
	return UnmarshalConfig(data, DefaultDecoderConfig())
}

// UnmarshalConfig decodes a single BONJSON document from data.
func UnmarshalConfig(data []byte, config DecoderConfig) (Value, error) {
	if len(data) > config.MaxDocumentSize {
		return Value{}, newError(KindLimitExceeded, 0, "document size %d exceeds limit %d", len(data), config.MaxDocumentSize)
	}
	dec := NewDecoderConfig(data, config)
	v, err := Decode(dec)
	if err != nil {
		return Value{}, err
	}
	if !dec.AtEnd() && !config.AllowTrailingBytes {
		return Value{}, newError(KindInvalidData, dec.Offset(), "trailing bytes after document")
	}
	return v, nil
}

// Decode reads one complete value (including all of its nested
// contents, if any) from dec, enforcing dec's configured depth,
// container-size, and duplicate-key policy.
func Decode(dec *Decoder) (Value, error) {
	return decodeValue(dec, 0)
}

func decodeValue(dec *Decoder, depth int) (Value, error) {
	if depth > dec.config.MaxDepth {
		return Value{}, newError(KindLimitExceeded, dec.Offset(), "depth exceeds limit %d", dec.config.MaxDepth)
	}
	ev, err := dec.NextEvent()
	if err != nil {
		return Value{}, err
	}
	switch ev.Kind {
	case EventEOF:
		return Value{}, newError(KindUnexpectedEOF, dec.Offset(), "expected a value, found end of input")
	case EventNull:
		return Null(), nil
	case EventBool:
		return Bool(ev.Bool), nil
	case EventInt:
		return Int(ev.Int), nil
	case EventUint:
		return Uint(ev.Uint), nil
	case EventFloat:
		return Float(ev.Float), nil
	case EventBigNumber:
		return Big(ev.BigNumber), nil
	case EventString:
		return String(ev.String), nil
	case EventArrayStart:
		return decodeArray(dec, depth+1)
	case EventObjectStart:
		return decodeObject(dec, depth+1)
	case EventContainerEnd:
		return Value{}, newError(KindInvalidData, ev.Offset, "unexpected container end")
	default:
		return Value{}, newError(KindInvalidData, ev.Offset, "unexpected event %v", ev.Kind)
	}
}

func decodeArray(dec *Decoder, depth int) (Value, error) {
	elems := make([]Value, 0, 8)
	for {
		peekOffset := dec.Offset()
		if dec.AtEnd() {
			return Value{}, newError(KindUnexpectedEOF, peekOffset, "unterminated array")
		}
		if dec.data[dec.pos] == codeContainerEnd {
			dec.pos++
			return Array(elems...), nil
		}
		if len(elems) >= dec.config.MaxContainerSize {
			return Value{}, newError(KindLimitExceeded, peekOffset, "array size exceeds limit %d", dec.config.MaxContainerSize)
		}
		elem, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
	}
}

func decodeObject(dec *Decoder, depth int) (Value, error) {
	obj := NewObject(8)
	for {
		peekOffset := dec.Offset()
		if dec.AtEnd() {
			return Value{}, newError(KindUnexpectedEOF, peekOffset, "unterminated object")
		}
		if dec.data[dec.pos] == codeContainerEnd {
			dec.pos++
			return ObjectValue(obj), nil
		}
		if obj.Len() >= dec.config.MaxContainerSize {
			return Value{}, newError(KindLimitExceeded, peekOffset, "object size exceeds limit %d", dec.config.MaxContainerSize)
		}

		keyEvent, err := dec.NextEvent()
		if err != nil {
			return Value{}, err
		}
		if keyEvent.Kind != EventString {
			return Value{}, newError(KindInvalidData, keyEvent.Offset, "object key must be a string, found %v", keyEvent.Kind)
		}
		key := keyEvent.String

		value, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}

		compareKey := key
		if dec.config.UnicodeNormalization == NormalizeNFC {
			compareKey = norm.NFC.String(key)
		}

		if existingIndex, found := obj.lookup(compareKey, dec.config.UnicodeNormalization); found {
			switch dec.config.DuplicateKeyMode {
			case DuplicateKeyError:
				return Value{}, newError(KindDuplicateKey, keyEvent.Offset, "duplicate key %q", key)
			case DuplicateKeyKeepFirst:
				continue
			case DuplicateKeyKeepLast:
				obj.values[existingIndex] = value
				continue
			}
		}
		if dec.config.UnicodeNormalization == NormalizeNFC {
			obj.setNormalized(key, compareKey, value)
		} else {
			obj.appendUnchecked(key, value)
		}
	}
}

// lookup finds key under the object's active normalization mode. The
// object's primary index is always keyed by raw bytes; under NFC mode
// it additionally tracks normalized forms in normIndex.
func (o *Object) lookup(compareKey string, mode UnicodeNormalization) (int, bool) {
	if mode == NormalizeNFC {
		if o.normIndex == nil {
			return 0, false
		}
		i, found := o.normIndex[compareKey]
		return i, found
	}
	i, found := o.index[compareKey]
	return i, found
}

func (o *Object) setNormalized(rawKey, normKey string, value Value) {
	if o.normIndex == nil {
		o.normIndex = make(map[string]int, len(o.keys)+1)
	}
	idx := len(o.keys)
	o.normIndex[normKey] = idx
	o.index[rawKey] = idx
	o.keys = append(o.keys, rawKey)
	o.values = append(o.values, value)
}
