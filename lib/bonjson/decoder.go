// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// EventKind identifies the shape of the item a [Decoder] just
// produced.
type EventKind int

const (
	EventNull EventKind = iota
	EventBool
	EventInt
	EventUint
	EventFloat
	EventBigNumber
	EventString
	EventArrayStart
	EventObjectStart
	EventContainerEnd
	EventEOF
)

// Event is one decoded item from the raw byte stream. Only the field
// matching Kind is meaningful.
type Event struct {
	Kind      EventKind
	Bool      bool
	Int       int64
	Uint      uint64
	Float     float64
	BigNumber BigNumber
	// String is a copy of the validated payload bytes; it does not
	// alias the Decoder's input buffer.
	String string
	Offset int
}

// Decoder reads a sequence of BONJSON-encoded [Event]s from an
// in-memory buffer. String payloads are copied out of the buffer, not
// returned as views into it. It tracks no
// container nesting of its own; callers that need depth/size limiting
// or duplicate-key handling should use [Decode] or [Unmarshal], which
// drive a Decoder from the value-model layer.
type Decoder struct {
	data   []byte
	pos    int
	config DecoderConfig
}

// NewDecoder returns a Decoder over data using the default decoder
// configuration.
func NewDecoder(data []byte) *Decoder {
	return NewDecoderConfig(data, DefaultDecoderConfig())
}

// NewDecoderConfig returns a Decoder configured explicitly.
func NewDecoderConfig(data []byte, config DecoderConfig) *Decoder {
	return &Decoder{data: data, config: config}
}

// Offset returns the current byte position in the input.
func (d *Decoder) Offset() int { return d.pos }

// Remaining returns the number of unconsumed bytes.
func (d *Decoder) Remaining() int { return len(d.data) - d.pos }

// AtEnd reports whether every byte has been consumed.
func (d *Decoder) AtEnd() bool { return d.pos >= len(d.data) }

func (d *Decoder) errorf(kind Kind, format string, args ...any) error {
	return newError(kind, d.pos, format, args...)
}

func (d *Decoder) need(n int) error {
	if d.Remaining() < n {
		return d.errorf(KindUnexpectedEOF, "need %d bytes, have %d", n, d.Remaining())
	}
	return nil
}

// NextEvent decodes and returns the next item in the stream. Calling
// it after the final top-level value has been fully consumed returns
// an Event with Kind == EventEOF and a nil error.
func (d *Decoder) NextEvent() (Event, error) {
	if d.AtEnd() {
		return Event{Kind: EventEOF, Offset: d.pos}, nil
	}
	start := d.pos
	code := d.data[d.pos]

	switch {
	case isReserved(code):
		return Event{}, d.errorf(KindInvalidData, "reserved type code 0x%02X", code)

	case code <= smallIntMax:
		d.pos++
		return Event{Kind: EventInt, Int: smallIntValue(code), Offset: start}, nil

	case isShortString(code):
		return d.readShortString(code, start)

	case isSizedInt(code):
		return d.readSizedInt(code, start)

	case code == codeBigNumber:
		return d.readBigNumber(start)

	case code == codeFloat32:
		if err := d.need(5); err != nil {
			return Event{}, err
		}
		bits := binary.LittleEndian.Uint32(d.data[d.pos+1:])
		d.pos += 5
		v := float64(math.Float32frombits(bits))
		if (math.IsNaN(v) || math.IsInf(v, 0)) && !d.config.AllowNaNInfinity {
			return Event{}, d.errorf(KindInvalidData, "non-finite float not allowed")
		}
		return Event{Kind: EventFloat, Float: v, Offset: start}, nil

	case code == codeFloat64:
		if err := d.need(9); err != nil {
			return Event{}, err
		}
		bits := binary.LittleEndian.Uint64(d.data[d.pos+1:])
		d.pos += 9
		v := math.Float64frombits(bits)
		if (math.IsNaN(v) || math.IsInf(v, 0)) && !d.config.AllowNaNInfinity {
			return Event{}, d.errorf(KindInvalidData, "non-finite float not allowed")
		}
		return Event{Kind: EventFloat, Float: v, Offset: start}, nil

	case code == codeNull:
		d.pos++
		return Event{Kind: EventNull, Offset: start}, nil

	case code == codeFalse:
		d.pos++
		return Event{Kind: EventBool, Bool: false, Offset: start}, nil

	case code == codeTrue:
		d.pos++
		return Event{Kind: EventBool, Bool: true, Offset: start}, nil

	case code == codeArrayStart:
		d.pos++
		return Event{Kind: EventArrayStart, Offset: start}, nil

	case code == codeObjectStart:
		d.pos++
		return Event{Kind: EventObjectStart, Offset: start}, nil

	case code == codeContainerEnd:
		d.pos++
		return Event{Kind: EventContainerEnd, Offset: start}, nil

	case code == codeLongString:
		return d.readLongString(start)

	default:
		return Event{}, d.errorf(KindInvalidData, "unrecognized type code 0x%02X", code)
	}
}

func (d *Decoder) readShortString(code byte, start int) (Event, error) {
	n := shortStringLen(code)
	if err := d.need(1 + n); err != nil {
		return Event{}, err
	}
	raw := d.data[d.pos+1 : d.pos+1+n]
	s, err := d.validateString(raw, start)
	if err != nil {
		return Event{}, err
	}
	d.pos += 1 + n
	return Event{Kind: EventString, String: s, Offset: start}, nil
}

// readLongString decodes the sentinel-bracketed long-string form: the
// leading 0xFF has already been identified by NextEvent; the payload
// runs up to the next 0xFF byte, which valid UTF-8 never contains.
func (d *Decoder) readLongString(start int) (Event, error) {
	if err := d.need(1); err != nil {
		return Event{}, err
	}
	payloadStart := d.pos + 1
	end := bytes.IndexByte(d.data[payloadStart:], codeLongString)
	if end < 0 {
		return Event{}, d.errorf(KindUnexpectedEOF, "unterminated long string")
	}
	raw := d.data[payloadStart : payloadStart+end]
	s, err := d.validateString(raw, start)
	if err != nil {
		return Event{}, err
	}
	d.pos = payloadStart + end + 1
	return Event{Kind: EventString, String: s, Offset: start}, nil
}

func (d *Decoder) validateString(raw []byte, start int) (string, error) {
	if len(raw) > d.config.MaxStringLength {
		return "", d.errorf(KindLimitExceeded, "string length %d exceeds limit %d", len(raw), d.config.MaxStringLength)
	}
	if !utf8.Valid(raw) {
		return "", newError(KindInvalidData, start, "invalid UTF-8 in string")
	}
	if !d.config.AllowNul {
		for _, b := range raw {
			if b == 0 {
				return "", newError(KindInvalidData, start, "NUL byte in string not allowed")
			}
		}
	}
	return string(raw), nil
}

func (d *Decoder) readSizedInt(code byte, start int) (Event, error) {
	size := intByteSize(intSizeIndex(code))
	if err := d.need(1 + size); err != nil {
		return Event{}, err
	}
	payload := d.data[d.pos+1 : d.pos+1+size]
	d.pos += 1 + size
	signed := intIsSigned(code)
	if signed {
		var v int64
		switch size {
		case 1:
			v = int64(int8(payload[0]))
		case 2:
			v = int64(int16(binary.LittleEndian.Uint16(payload)))
		case 4:
			v = int64(int32(binary.LittleEndian.Uint32(payload)))
		case 8:
			v = int64(binary.LittleEndian.Uint64(payload))
		}
		return Event{Kind: EventInt, Int: v, Offset: start}, nil
	}
	var v uint64
	switch size {
	case 1:
		v = uint64(payload[0])
	case 2:
		v = uint64(binary.LittleEndian.Uint16(payload))
	case 4:
		v = uint64(binary.LittleEndian.Uint32(payload))
	case 8:
		v = binary.LittleEndian.Uint64(payload)
	}
	if v <= math.MaxInt64 {
		return Event{Kind: EventInt, Int: int64(v), Offset: start}, nil
	}
	return Event{Kind: EventUint, Uint: v, Offset: start}, nil
}

// TryConsumeContainerEnd reports whether the next byte is a container
// end marker, consuming it if so and leaving the cursor untouched
// otherwise. A type-aware adapter uses this to detect the end of a
// sequence or map without going through [Decoder.NextEvent].
func (d *Decoder) TryConsumeContainerEnd() bool {
	if d.AtEnd() || d.data[d.pos] != codeContainerEnd {
		return false
	}
	d.pos++
	return true
}

// DecodeInt64Direct decodes the next item as a signed integer without
// allocating an [Event], for adapters that already know the target
// field is integral. It fails with KindInvalidData if the next item
// is a Uint that overflows int64, rather than silently truncating.
func (d *Decoder) DecodeInt64Direct() (int64, error) {
	start := d.pos
	ev, err := d.NextEvent()
	if err != nil {
		return 0, err
	}
	switch ev.Kind {
	case EventInt:
		return ev.Int, nil
	case EventUint:
		if ev.Uint > 1<<63-1 {
			return 0, newError(KindInvalidData, start, "uint %d overflows int64", ev.Uint)
		}
		return int64(ev.Uint), nil
	default:
		return 0, newError(KindInvalidData, start, "expected integer, found %v", ev.Kind)
	}
}

// DecodeUint64Direct decodes the next item as an unsigned integer.
func (d *Decoder) DecodeUint64Direct() (uint64, error) {
	start := d.pos
	ev, err := d.NextEvent()
	if err != nil {
		return 0, err
	}
	switch ev.Kind {
	case EventUint:
		return ev.Uint, nil
	case EventInt:
		if ev.Int < 0 {
			return 0, newError(KindInvalidData, start, "negative int cannot be read as uint")
		}
		return uint64(ev.Int), nil
	default:
		return 0, newError(KindInvalidData, start, "expected integer, found %v", ev.Kind)
	}
}

// DecodeFloat64Direct decodes the next item as a float, promoting any
// integer type.
func (d *Decoder) DecodeFloat64Direct() (float64, error) {
	start := d.pos
	ev, err := d.NextEvent()
	if err != nil {
		return 0, err
	}
	switch ev.Kind {
	case EventFloat:
		return ev.Float, nil
	case EventInt:
		return float64(ev.Int), nil
	case EventUint:
		return float64(ev.Uint), nil
	default:
		return 0, newError(KindInvalidData, start, "expected number, found %v", ev.Kind)
	}
}

// DecodeStrDirect decodes the next item as a string. The result is a
// copy of the payload bytes, not a view into the decoder's input buffer.
func (d *Decoder) DecodeStrDirect() (string, error) {
	start := d.pos
	ev, err := d.NextEvent()
	if err != nil {
		return "", err
	}
	if ev.Kind != EventString {
		return "", newError(KindInvalidData, start, "expected string, found %v", ev.Kind)
	}
	return ev.String, nil
}

func (d *Decoder) readBigNumber(start int) (Event, error) {
	if err := d.need(1); err != nil {
		return Event{}, err
	}
	cursor := d.pos + 1

	rawExponent, n, ok := getLEB128(d.data[cursor:])
	if !ok {
		return Event{}, d.errorf(KindUnexpectedEOF, "truncated bignumber exponent")
	}
	cursor += n
	exponent := zigzagDecode(rawExponent)

	rawHeader, n, ok := getLEB128(d.data[cursor:])
	if !ok {
		return Event{}, d.errorf(KindUnexpectedEOF, "truncated bignumber header")
	}
	cursor += n
	header := zigzagDecode(rawHeader)
	negative := header < 0
	sigByteLen := int(header)
	if negative {
		sigByteLen = -sigByteLen
	}
	if sigByteLen == 0 {
		d.pos = cursor
		return Event{
			Kind:      EventBigNumber,
			BigNumber: BigNumber{Significand: 0, Exponent: 0, Sign: 1},
			Offset:    start,
		}, nil
	}
	if sigByteLen > DefaultMaxBigNumberBytes {
		return Event{}, newError(KindInvalidData, start, "bignumber significand length %d out of range", sigByteLen)
	}

	if cursor+sigByteLen > len(d.data) {
		return Event{}, d.errorf(KindUnexpectedEOF, "truncated bignumber significand")
	}
	var sigBytes [8]byte
	copy(sigBytes[:], d.data[cursor:cursor+sigByteLen])
	significand := binary.LittleEndian.Uint64(sigBytes[:])
	if sigByteLen < 8 && significand>>(uint(sigByteLen)*8) != 0 {
		return Event{}, newError(KindInvalidData, start, "bignumber significand overflows declared length")
	}
	if significand != 0 && sigByteLen > 1 && sigBytes[sigByteLen-1] == 0 {
		return Event{}, newError(KindInvalidData, start, "bignumber significand not minimally encoded")
	}

	sign := int8(1)
	if negative {
		sign = -1
	}
	if significand == 0 && negative {
		return Event{}, newError(KindInvalidData, start, "bignumber negative zero not allowed")
	}

	d.pos = cursor + sigByteLen
	return Event{
		Kind:      EventBigNumber,
		BigNumber: BigNumber{Significand: significand, Exponent: exponent, Sign: sign},
		Offset:    start,
	}, nil
}
