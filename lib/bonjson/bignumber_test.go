// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import "testing"

func TestZigzagRoundtrip(t *testing.T) {
	cases := []int64{0, -1, 1, -2, 2, 100, -100, 1 << 40, -(1 << 40)}
	for _, v := range cases {
		enc := zigzagEncode(v)
		got := zigzagDecode(enc)
		if got != v {
			t.Errorf("zigzagDecode(zigzagEncode(%d)) = %d", v, got)
		}
	}
}

func TestZigzagSmallValuesStaySmall(t *testing.T) {
	if zigzagEncode(0) != 0 {
		t.Errorf("zigzagEncode(0) = %d, want 0", zigzagEncode(0))
	}
	if zigzagEncode(-1) != 1 {
		t.Errorf("zigzagEncode(-1) = %d, want 1", zigzagEncode(-1))
	}
	if zigzagEncode(1) != 2 {
		t.Errorf("zigzagEncode(1) = %d, want 2", zigzagEncode(1))
	}
}

func TestLEB128Roundtrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)}
	for _, v := range cases {
		buf := putLEB128(nil, v)
		if len(buf) != leb128Size(v) {
			t.Errorf("leb128Size(%d) = %d, putLEB128 wrote %d", v, leb128Size(v), len(buf))
		}
		got, n, ok := getLEB128(buf)
		if !ok {
			t.Fatalf("getLEB128 failed to decode %d", v)
		}
		if n != len(buf) {
			t.Errorf("getLEB128(%d) consumed %d, want %d", v, n, len(buf))
		}
		if got != v {
			t.Errorf("getLEB128(putLEB128(%d)) = %d", v, got)
		}
	}
}

func TestLEB128TruncatedInput(t *testing.T) {
	buf := putLEB128(nil, 1<<20)
	_, _, ok := getLEB128(buf[:len(buf)-1])
	if ok {
		t.Error("getLEB128 on truncated input should fail")
	}
}

func TestBigNumberConversions(t *testing.T) {
	bn := NewBigNumber(1, 5, 2)
	if n, ok := bn.Int64(); !ok || n != 500 {
		t.Errorf("Int64() = %d, %v, want 500, true", n, ok)
	}
	if u, ok := bn.Uint64(); !ok || u != 500 {
		t.Errorf("Uint64() = %d, %v, want 500, true", u, ok)
	}
	neg := NewBigNumber(-1, 5, 2)
	if n, ok := neg.Int64(); !ok || n != -500 {
		t.Errorf("Int64() = %d, %v, want -500, true", n, ok)
	}
	if _, ok := neg.Uint64(); ok {
		t.Error("negative BigNumber.Uint64() should fail")
	}
}

func TestBigNumberZero(t *testing.T) {
	if !ZeroBigNumber.IsZero() {
		t.Error("ZeroBigNumber.IsZero() = false")
	}
	if ZeroBigNumber.IsNegative() {
		t.Error("ZeroBigNumber.IsNegative() = true")
	}
}
