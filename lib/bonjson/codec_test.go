// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestEncodeScenarioTable(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want []byte
	}{
		{"int zero", Int(0), []byte{0x64}},
		{"int small min", Int(-100), []byte{0x00}},
		{"int small max", Int(100), []byte{0xC8}},
		{"int narrows to unsigned u8", Int(101), []byte{0xE0, 0x65}},
		{"int narrows to signed i16", Int(-200), []byte{0xE5, 0x38, 0xFF}},
		{"bool true", Bool(true), []byte{0xCF}},
		{"empty string", String(""), []byte{0xD0}},
		{"short string", String("ab"), []byte{0xD2, 0x61, 0x62}},
		{"array of small ints", Array(Int(1), Int(2)), []byte{0xFC, 0x65, 0x66, 0xFE}},
		{"object with null value", func() Value {
			obj := NewObject(1)
			obj.Set("k", Null())
			return ObjectValue(obj)
		}(), []byte{0xFD, 0xD1, 0x6B, 0xCD, 0xFE}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Marshal(c.v)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if !bytes.Equal(got, c.want) {
				t.Errorf("Marshal(%s) = % X, want % X", c.name, got, c.want)
			}
		})
	}
}

func TestDecodeNaNRejectedByDefault(t *testing.T) {
	data := []byte{codeFloat64, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF8, 0x7F}
	_, err := Unmarshal(data)
	if !IsKind(err, KindInvalidData) {
		t.Errorf("error = %v, want KindInvalidData", err)
	}
}

func TestDecodeDuplicateKeyScenario(t *testing.T) {
	data := []byte{codeObjectStart, 0xD1, 'k', 0x64, 0xD1, 'k', 0x65, codeContainerEnd}
	_, err := Unmarshal(data)
	if !IsKind(err, KindDuplicateKey) {
		t.Errorf("error = %v, want KindDuplicateKey", err)
	}
}

func TestLongStringWireIsSentinelBracketed(t *testing.T) {
	s := strings.Repeat("a", 16)
	data, err := Marshal(String(s))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := append([]byte{codeLongString}, append([]byte(s), codeLongString)...)
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal(long string) = % X, want % X", data, want)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	decoded, _ := got.String()
	if decoded != s {
		t.Errorf("Unmarshal = %q, want %q", decoded, s)
	}
}

func roundtrip(t *testing.T, v Value) Value {
	t.Helper()
	data, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return got
}

func TestRoundtripPrimitives(t *testing.T) {
	cases := []Value{
		Null(),
		Bool(true),
		Bool(false),
		Int(0),
		Int(-100),
		Int(100),
		Int(-101),
		Int(12345),
		Int(math.MinInt64),
		Uint(101),
		Uint(math.MaxUint64),
		Float(3.5),
		Float(-0.0),
		String(""),
		String("short"),
		String(strings.Repeat("x", 40)),
	}
	for _, v := range cases {
		got := roundtrip(t, v)
		if got.Type() != v.Type() {
			t.Errorf("roundtrip %#v: type changed to %v", v, got.Type())
		}
	}
}

func TestEncodeIntegerNarrowing(t *testing.T) {
	data, err := Marshal(Int(50))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) != 1 {
		t.Errorf("small int encoded in %d bytes, want 1", len(data))
	}
	if data[0] != smallIntCode(50) {
		t.Errorf("encoded byte = 0x%02X, want 0x%02X", data[0], smallIntCode(50))
	}
}

func TestRoundtripArray(t *testing.T) {
	v := Array(Int(1), String("two"), Bool(true), Null())
	got := roundtrip(t, v)
	elems, ok := got.Array()
	if !ok || len(elems) != 4 {
		t.Fatalf("roundtrip array = %#v", got)
	}
	if n, _ := elems[0].Int(); n != 1 {
		t.Errorf("elems[0] = %v, want 1", n)
	}
	if s, _ := elems[1].String(); s != "two" {
		t.Errorf("elems[1] = %v, want two", s)
	}
}

func TestRoundtripNestedObject(t *testing.T) {
	inner := NewObject(0)
	inner.Set("x", Int(1))
	inner.Set("y", Int(2))

	outer := NewObject(0)
	outer.Set("name", String("origin"))
	outer.Set("point", ObjectValue(inner))

	got := roundtrip(t, ObjectValue(outer))
	obj, ok := got.Object()
	if !ok {
		t.Fatalf("roundtrip not an object: %#v", got)
	}
	if keys := obj.Keys(); len(keys) != 2 || keys[0] != "name" || keys[1] != "point" {
		t.Errorf("object keys = %v, want [name point]", keys)
	}
	pointVal, _ := obj.Get("point")
	point, ok := pointVal.Object()
	if !ok {
		t.Fatal("point is not an object")
	}
	if keys := point.Keys(); len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Errorf("nested object keys = %v, want [x y]", keys)
	}
}

func TestDuplicateKeyError(t *testing.T) {
	obj := NewObject(0)
	obj.appendUnchecked("a", Int(1))
	obj.appendUnchecked("a", Int(2))
	data, err := Marshal(ObjectValue(obj))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	_, err = Unmarshal(data)
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	if !IsKind(err, KindDuplicateKey) {
		t.Errorf("error = %v, want KindDuplicateKey", err)
	}
}

func TestDuplicateKeyKeepLast(t *testing.T) {
	obj := NewObject(0)
	obj.appendUnchecked("a", Int(1))
	obj.appendUnchecked("b", Int(2))
	obj.appendUnchecked("a", Int(3))
	data, err := Marshal(ObjectValue(obj))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	cfg := DefaultDecoderConfig()
	cfg.DuplicateKeyMode = DuplicateKeyKeepLast
	got, err := UnmarshalConfig(data, cfg)
	if err != nil {
		t.Fatalf("UnmarshalConfig: %v", err)
	}
	result, _ := got.Object()
	if keys := result.Keys(); len(keys) != 2 {
		t.Fatalf("keys = %v, want 2 entries", keys)
	}
	v, _ := result.Get("a")
	if n, _ := v.Int(); n != 3 {
		t.Errorf("a = %d, want 3 (last write wins)", n)
	}
}

func TestDuplicateKeyKeepFirst(t *testing.T) {
	obj := NewObject(0)
	obj.appendUnchecked("a", Int(1))
	obj.appendUnchecked("a", Int(3))
	data, err := Marshal(ObjectValue(obj))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	cfg := DefaultDecoderConfig()
	cfg.DuplicateKeyMode = DuplicateKeyKeepFirst
	got, err := UnmarshalConfig(data, cfg)
	if err != nil {
		t.Fatalf("UnmarshalConfig: %v", err)
	}
	result, _ := got.Object()
	v, _ := result.Get("a")
	if n, _ := v.Int(); n != 1 {
		t.Errorf("a = %d, want 1 (first write wins)", n)
	}
}

func TestReservedTypeCodeRejected(t *testing.T) {
	_, err := Unmarshal([]byte{0xE8})
	if err == nil {
		t.Fatal("expected error decoding reserved type code")
	}
	if !IsKind(err, KindInvalidData) {
		t.Errorf("error = %v, want KindInvalidData", err)
	}
}

func TestTruncatedInputIsUnexpectedEOF(t *testing.T) {
	_, err := Unmarshal([]byte{codeUint32, 0x01, 0x02})
	if err == nil {
		t.Fatal("expected error decoding truncated sized int")
	}
	if !IsKind(err, KindUnexpectedEOF) {
		t.Errorf("error = %v, want KindUnexpectedEOF", err)
	}
}

func TestTrailingBytesRejectedByDefault(t *testing.T) {
	data, _ := Marshal(Int(1))
	data = append(data, 0xCD)
	_, err := Unmarshal(data)
	if err == nil {
		t.Fatal("expected error on trailing bytes")
	}
	if !IsKind(err, KindInvalidData) {
		t.Errorf("error = %v, want KindInvalidData", err)
	}
}

func TestTrailingBytesAllowedWhenConfigured(t *testing.T) {
	data, _ := Marshal(Int(1))
	data = append(data, 0xCD)
	cfg := DefaultDecoderConfig()
	cfg.AllowTrailingBytes = true
	if _, err := UnmarshalConfig(data, cfg); err != nil {
		t.Fatalf("UnmarshalConfig with AllowTrailingBytes: %v", err)
	}
}

func TestMaxDepthExceeded(t *testing.T) {
	var v Value = Int(0)
	for i := 0; i < 10; i++ {
		v = Array(v)
	}
	data, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	cfg := DefaultDecoderConfig()
	cfg.MaxDepth = 5
	_, err = UnmarshalConfig(data, cfg)
	if err == nil {
		t.Fatal("expected depth-limit error")
	}
	if !IsKind(err, KindLimitExceeded) {
		t.Errorf("error = %v, want KindLimitExceeded", err)
	}
}

func TestMaxContainerSizeExceeded(t *testing.T) {
	v := Array(Int(1), Int(2), Int(3))
	data, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	cfg := DefaultDecoderConfig()
	cfg.MaxContainerSize = 2
	_, err = UnmarshalConfig(data, cfg)
	if err == nil {
		t.Fatal("expected container-size error")
	}
	if !IsKind(err, KindLimitExceeded) {
		t.Errorf("error = %v, want KindLimitExceeded", err)
	}
}

func TestBigNumberRoundtrip(t *testing.T) {
	cases := []BigNumber{
		ZeroBigNumber,
		NewBigNumber(1, 12345, -2),
		NewBigNumber(-1, 9999999999, 10),
		NewBigNumber(1, 1, 0),
	}
	for _, bn := range cases {
		got := roundtrip(t, Big(bn))
		decoded, ok := got.Big()
		if !ok {
			t.Fatalf("roundtrip %v: not a BigNumber", bn)
		}
		if !decoded.Equal(bn) {
			t.Errorf("roundtrip %v = %v", bn, decoded)
		}
	}
}

func TestNaNRejectedByDefault(t *testing.T) {
	_, err := Marshal(Float(math.NaN()))
	if err == nil {
		t.Fatal("expected error encoding NaN")
	}
	if !IsKind(err, KindInvalidData) {
		t.Errorf("error = %v, want KindInvalidData", err)
	}
}

func TestNaNAllowedWhenConfigured(t *testing.T) {
	cfg := EncoderConfig{AllowNaNInfinity: true}
	data, err := MarshalConfig(Float(math.NaN()), cfg)
	if err != nil {
		t.Fatalf("MarshalConfig: %v", err)
	}
	dcfg := DefaultDecoderConfig()
	dcfg.AllowNaNInfinity = true
	got, err := UnmarshalConfig(data, dcfg)
	if err != nil {
		t.Fatalf("UnmarshalConfig: %v", err)
	}
	f, _ := got.Float()
	if !math.IsNaN(f) {
		t.Errorf("decoded float = %v, want NaN", f)
	}
}

func TestDocumentSizeLimitEnforced(t *testing.T) {
	data, _ := Marshal(String(strings.Repeat("x", 1000)))
	cfg := DefaultDecoderConfig()
	cfg.MaxDocumentSize = 10
	_, err := UnmarshalConfig(data, cfg)
	if err == nil {
		t.Fatal("expected document-size error")
	}
	if !IsKind(err, KindLimitExceeded) {
		t.Errorf("error = %v, want KindLimitExceeded", err)
	}
}
