// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import (
	"strings"
	"testing"
)

func TestShortStringBoundary(t *testing.T) {
	fifteen := strings.Repeat("a", 15)
	sixteen := strings.Repeat("a", 16)

	data, err := Marshal(String(fifteen))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if data[0] != shortStringCode(15) {
		t.Errorf("15-byte string used code 0x%02X, want short-string code", data[0])
	}

	data, err = Marshal(String(sixteen))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if data[0] != codeLongString {
		t.Errorf("16-byte string used code 0x%02X, want long-string sentinel", data[0])
	}
}

func TestNulByteRejectedByDefault(t *testing.T) {
	_, err := Marshal(String("a\x00b"))
	if err == nil {
		t.Fatal("expected error encoding NUL byte")
	}
	if !IsKind(err, KindInvalidData) {
		t.Errorf("error = %v, want KindInvalidData", err)
	}
}

func TestDecoderDirectPrimitives(t *testing.T) {
	data, err := Marshal(Array(Int(42), String("hello"), Float(1.5)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	dec := NewDecoder(data)

	ev, err := dec.NextEvent()
	if err != nil || ev.Kind != EventArrayStart {
		t.Fatalf("NextEvent() = %+v, %v, want ArrayStart", ev, err)
	}

	n, err := dec.DecodeInt64Direct()
	if err != nil || n != 42 {
		t.Fatalf("DecodeInt64Direct() = %d, %v, want 42", n, err)
	}

	s, err := dec.DecodeStrDirect()
	if err != nil || s != "hello" {
		t.Fatalf("DecodeStrDirect() = %q, %v, want hello", s, err)
	}

	f, err := dec.DecodeFloat64Direct()
	if err != nil || f != 1.5 {
		t.Fatalf("DecodeFloat64Direct() = %v, %v, want 1.5", f, err)
	}

	if !dec.TryConsumeContainerEnd() {
		t.Fatal("TryConsumeContainerEnd() = false, want true at array end")
	}
	if !dec.AtEnd() {
		t.Error("decoder should be at end after consuming container end")
	}
}

func TestTryConsumeContainerEndLeavesCursorOnMismatch(t *testing.T) {
	data, _ := Marshal(Int(5))
	dec := NewDecoder(data)
	if dec.TryConsumeContainerEnd() {
		t.Fatal("TryConsumeContainerEnd() = true on non-container-end byte")
	}
	if dec.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0 (cursor must not move)", dec.Offset())
	}
}

func TestObjectKeyMustBeString(t *testing.T) {
	// Hand-build an object whose first "key" is an integer: 0xFD, 5, 0xFE
	data := []byte{codeObjectStart, smallIntCode(5), codeContainerEnd}
	_, err := Unmarshal(data)
	if err == nil {
		t.Fatal("expected error for non-string object key")
	}
	if !IsKind(err, KindInvalidData) {
		t.Errorf("error = %v, want KindInvalidData", err)
	}
}
