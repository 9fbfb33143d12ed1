// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

// This file fixes the surface a generic serialization framework would
// bind against to map its own record/tuple/sequence/map types onto
// the value model, without materializing a [Value] tree. No such
// framework ships in this package; SequenceWriter, MapWriter, and
// PrimitiveSink exist only to pin the shape of that boundary, the way
// an FFI header pins a C ABI without providing the other side of it.

// PrimitiveSink is the encode-side callback surface: a framework
// walks its own type and calls these in the order values occur.
// WriteBytes has no dedicated wire type; per the wire format, a byte
// sequence is written as an Array of Uint.
type PrimitiveSink interface {
	WriteNone() error
	WriteBool(bool) error
	WriteInt(int64) error
	WriteUint(uint64) error
	WriteFloat(float64) error
	WriteBytes([]byte) error
	WriteStr(string) error
}

// SequenceWriter is the encode-side callback surface for an ordered
// collection whose length may not be known up front.
type SequenceWriter interface {
	PrimitiveSink
	SequenceBegin() error
	SequenceElement(index int) error
	SequenceEnd() error
}

// MapWriter is the encode-side callback surface for a key/value
// collection, including a struct serialized record-as-map.
type MapWriter interface {
	PrimitiveSink
	MapBegin() error
	MapKey(key string) error
	MapValue() error
	MapEnd() error
}

// encoderSink adapts *Encoder to PrimitiveSink, SequenceWriter, and
// MapWriter, so a framework can drive the byte-level encoder directly
// instead of building a [Value] first. Each method forwards to the
// matching Encoder method; SequenceElement and MapValue write nothing,
// and WriteBytes writes an array of unsigned integers.
type encoderSink struct {
	enc *Encoder
}

// NewEncoderSink wraps enc so it satisfies the [SequenceWriter] and
// [MapWriter] interfaces.
func NewEncoderSink(enc *Encoder) *encoderSink {
	return &encoderSink{enc: enc}
}

func (s *encoderSink) WriteNone() error            { return s.enc.WriteNull() }
func (s *encoderSink) WriteBool(v bool) error      { return s.enc.WriteBool(v) }
func (s *encoderSink) WriteInt(v int64) error      { return s.enc.WriteInt(v) }
func (s *encoderSink) WriteUint(v uint64) error    { return s.enc.WriteUint(v) }
func (s *encoderSink) WriteFloat(v float64) error  { return s.enc.WriteFloat(v) }
func (s *encoderSink) WriteStr(v string) error     { return s.enc.WriteString(v) }
func (s *encoderSink) SequenceBegin() error        { return s.enc.WriteArrayStart() }
func (s *encoderSink) SequenceElement(int) error   { return nil }
func (s *encoderSink) SequenceEnd() error          { return s.enc.WriteContainerEnd() }
func (s *encoderSink) MapBegin() error             { return s.enc.WriteObjectStart() }
func (s *encoderSink) MapKey(key string) error     { return s.enc.WriteString(key) }
func (s *encoderSink) MapValue() error              { return nil }
func (s *encoderSink) MapEnd() error                { return s.enc.WriteContainerEnd() }

// WriteBytes encodes a byte sequence as an Array of Uint, per the
// wire format's lack of a dedicated byte-string type.
func (s *encoderSink) WriteBytes(b []byte) error {
	if err := s.enc.WriteArrayStart(); err != nil {
		return err
	}
	for _, by := range b {
		if err := s.enc.WriteUint(uint64(by)); err != nil {
			return err
		}
	}
	return s.enc.WriteContainerEnd()
}
