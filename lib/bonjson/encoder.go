// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import (
	"encoding/binary"
	"math"
	"strings"
)

// Sink is the destination an [Encoder] writes wire bytes to. io.Writer
// satisfies it directly.
type Sink interface {
	Write(p []byte) (int, error)
}

// Encoder writes BONJSON-encoded primitives to a [Sink] one call at a
// time. It holds no value-model state and applies no duplicate-key
// policy or resource limits. [Encode] and [Marshal] drive an Encoder
// from a [Value] tree and add no such checks either.
//
// Every WriteXxx method chooses the narrowest legal wire encoding for
// the value it is given; callers never pick a type code directly.
type Encoder struct {
	sink   Sink
	config EncoderConfig
	buf    [16]byte
}

// NewEncoder returns an Encoder that writes to sink using the default
// encoder configuration.
func NewEncoder(sink Sink) *Encoder {
	return NewEncoderConfig(sink, DefaultEncoderConfig())
}

// NewEncoderConfig returns an Encoder configured explicitly.
func NewEncoderConfig(sink Sink, config EncoderConfig) *Encoder {
	return &Encoder{sink: sink, config: config}
}

func (e *Encoder) write(p []byte) error {
	if _, err := e.sink.Write(p); err != nil {
		return wrapError(KindSinkError, -1, err, "write failed")
	}
	return nil
}

// WriteNull writes the null value.
func (e *Encoder) WriteNull() error {
	e.buf[0] = codeNull
	return e.write(e.buf[:1])
}

// WriteBool writes a boolean value.
func (e *Encoder) WriteBool(v bool) error {
	if v {
		e.buf[0] = codeTrue
	} else {
		e.buf[0] = codeFalse
	}
	return e.write(e.buf[:1])
}

// WriteInt writes a signed integer, choosing the smallest legal
// encoding: an inline small int for [-100, 100], else the narrowest
// unsigned sized-int width if the value is non-negative, else the
// narrowest signed sized-int width.
func (e *Encoder) WriteInt(v int64) error {
	if v >= -100 && v <= 100 {
		e.buf[0] = smallIntCode(v)
		return e.write(e.buf[:1])
	}
	if v >= 0 {
		return e.WriteUint(uint64(v))
	}
	switch {
	case v >= math.MinInt8:
		e.buf[0] = codeSint8
		e.buf[1] = byte(v)
		return e.write(e.buf[:2])
	case v >= math.MinInt16:
		e.buf[0] = codeSint16
		binary.LittleEndian.PutUint16(e.buf[1:], uint16(v))
		return e.write(e.buf[:3])
	case v >= math.MinInt32:
		e.buf[0] = codeSint32
		binary.LittleEndian.PutUint32(e.buf[1:], uint32(v))
		return e.write(e.buf[:5])
	default:
		e.buf[0] = codeSint64
		binary.LittleEndian.PutUint64(e.buf[1:], uint64(v))
		return e.write(e.buf[:9])
	}
}

// WriteUint writes an unsigned integer, choosing the smallest legal
// encoding: an inline small int when it fits in [0, 100], else the
// narrowest unsigned sized-int width that holds it.
func (e *Encoder) WriteUint(v uint64) error {
	if v <= 100 {
		e.buf[0] = smallIntCode(int64(v))
		return e.write(e.buf[:1])
	}
	switch {
	case v <= math.MaxUint8:
		e.buf[0] = codeUint8
		e.buf[1] = byte(v)
		return e.write(e.buf[:2])
	case v <= math.MaxUint16:
		e.buf[0] = codeUint16
		binary.LittleEndian.PutUint16(e.buf[1:], uint16(v))
		return e.write(e.buf[:3])
	case v <= math.MaxUint32:
		e.buf[0] = codeUint32
		binary.LittleEndian.PutUint32(e.buf[1:], uint32(v))
		return e.write(e.buf[:5])
	default:
		e.buf[0] = codeUint64
		binary.LittleEndian.PutUint64(e.buf[1:], v)
		return e.write(e.buf[:9])
	}
}

// WriteFloat writes a floating-point value, narrowing to float32 when
// that loses no precision. NaN and infinities are rejected unless
// AllowNaNInfinity is set.
func (e *Encoder) WriteFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if !e.config.AllowNaNInfinity {
			return newError(KindInvalidData, -1, "non-finite float %v not allowed", v)
		}
	}
	if f32 := float32(v); float64(f32) == v {
		e.buf[0] = codeFloat32
		binary.LittleEndian.PutUint32(e.buf[1:], math.Float32bits(f32))
		return e.write(e.buf[:5])
	}
	e.buf[0] = codeFloat64
	binary.LittleEndian.PutUint64(e.buf[1:], math.Float64bits(v))
	return e.write(e.buf[:9])
}

// WriteBigNumber writes an arbitrary-precision decimal. A zero
// significand is always written as signed_length = 0 with no
// magnitude bytes and exponent 0, the only canonical encoding of zero.
func (e *Encoder) WriteBigNumber(bn BigNumber) error {
	if bn.Significand == 0 {
		out := make([]byte, 0, 4)
		out = append(out, codeBigNumber)
		out = putLEB128(out, zigzagEncode(0))
		out = putLEB128(out, zigzagEncode(0))
		return e.write(out)
	}

	var sigBytes [8]byte
	binary.LittleEndian.PutUint64(sigBytes[:], bn.Significand)
	significantLen := 8
	for significantLen > 1 && sigBytes[significantLen-1] == 0 {
		significantLen--
	}

	header := int64(significantLen)
	if bn.IsNegative() {
		header = -header
	}

	out := make([]byte, 0, significantLen+24)
	out = append(out, codeBigNumber)
	out = putLEB128(out, zigzagEncode(bn.Exponent))
	out = putLEB128(out, zigzagEncode(header))
	out = append(out, sigBytes[:significantLen]...)
	return e.write(out)
}

// WriteString writes a UTF-8 string, using an inline short-string code
// for payloads of 15 bytes or fewer and the long-string sentinel
// otherwise: 0xFF, the raw bytes, then a closing 0xFF. A valid UTF-8
// byte stream never contains 0xFF, so the closing sentinel is
// unambiguous.
func (e *Encoder) WriteString(s string) error {
	if !e.config.AllowNul && strings.IndexByte(s, 0) >= 0 {
		return newError(KindInvalidData, -1, "string contains NUL byte")
	}
	n := len(s)
	if n <= 15 {
		e.buf[0] = shortStringCode(n)
		if err := e.write(e.buf[:1]); err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return e.write([]byte(s))
	}
	e.buf[0] = codeLongString
	if err := e.write(e.buf[:1]); err != nil {
		return err
	}
	if err := e.write([]byte(s)); err != nil {
		return err
	}
	e.buf[0] = codeLongString
	return e.write(e.buf[:1])
}

// WriteArrayStart begins an array; it must be matched by
// [Encoder.WriteContainerEnd].
func (e *Encoder) WriteArrayStart() error {
	e.buf[0] = codeArrayStart
	return e.write(e.buf[:1])
}

// WriteObjectStart begins an object; it must be matched by
// [Encoder.WriteContainerEnd]. Keys are written as strings via
// [Encoder.WriteString] interleaved with values.
func (e *Encoder) WriteObjectStart() error {
	e.buf[0] = codeObjectStart
	return e.write(e.buf[:1])
}

// WriteContainerEnd closes the most recently opened array or object.
func (e *Encoder) WriteContainerEnd() error {
	e.buf[0] = codeContainerEnd
	return e.write(e.buf[:1])
}

// WriteValue writes a full [Value] tree, including nested arrays and
// objects, applying no duplicate-key checking or depth limiting.
// [Encode] and [Marshal] call it directly, so encoding through them
// applies neither check.
func (e *Encoder) WriteValue(v Value) error {
	switch v.typ {
	case TypeNull:
		return e.WriteNull()
	case TypeBool:
		b, _ := v.Bool()
		return e.WriteBool(b)
	case TypeInt:
		n, _ := v.Int()
		return e.WriteInt(n)
	case TypeUint:
		n, _ := v.Uint()
		return e.WriteUint(n)
	case TypeFloat:
		f, _ := v.Float()
		return e.WriteFloat(f)
	case TypeBigNumber:
		bn, _ := v.Big()
		return e.WriteBigNumber(bn)
	case TypeString:
		s, _ := v.String()
		return e.WriteString(s)
	case TypeArray:
		elems, _ := v.Array()
		if err := e.WriteArrayStart(); err != nil {
			return err
		}
		for _, elem := range elems {
			if err := e.WriteValue(elem); err != nil {
				return err
			}
		}
		return e.WriteContainerEnd()
	case TypeObject:
		obj, _ := v.Object()
		if err := e.WriteObjectStart(); err != nil {
			return err
		}
		var rangeErr error
		obj.Range(func(key string, value Value) bool {
			if err := e.WriteString(key); err != nil {
				rangeErr = err
				return false
			}
			if err := e.WriteValue(value); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		return e.WriteContainerEnd()
	default:
		return newError(KindUnsupportedValue, -1, "unknown value type %v", v.typ)
	}
}
