// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import "testing"

func TestObjectInsertionOrderPreserved(t *testing.T) {
	obj := NewObject(0)
	obj.Set("z", Int(1))
	obj.Set("a", Int(2))
	obj.Set("m", Int(3))

	want := []string{"z", "a", "m"}
	got := obj.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], k)
		}
	}
}

func TestObjectSetOverwritesInPlace(t *testing.T) {
	obj := NewObject(0)
	obj.Set("a", Int(1))
	obj.Set("b", Int(2))
	obj.Set("a", Int(99))

	if got := obj.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b] (overwrite must not move the key)", got)
	}
	v, ok := obj.Get("a")
	if !ok {
		t.Fatal("Get(a) not found")
	}
	if n, _ := v.Int(); n != 99 {
		t.Errorf("Get(a) = %d, want 99", n)
	}
}

func TestValueNumericConversions(t *testing.T) {
	if n, ok := Uint(5).Int(); !ok || n != 5 {
		t.Errorf("Uint(5).Int() = %d, %v, want 5, true", n, ok)
	}
	if _, ok := Int(-1).Uint(); ok {
		t.Error("Int(-1).Uint() should fail")
	}
	if f, ok := Int(3).Float(); !ok || f != 3.0 {
		t.Errorf("Int(3).Float() = %v, %v, want 3.0, true", f, ok)
	}
	big := NewBigNumber(1, 12345, -2)
	if f, ok := Big(big).Float(); !ok || f != 123.45 {
		t.Errorf("Big(12345e-2).Float() = %v, %v, want 123.45, true", f, ok)
	}
}

func TestObjectRangeStopsEarly(t *testing.T) {
	obj := NewObject(0)
	obj.Set("a", Int(1))
	obj.Set("b", Int(2))
	obj.Set("c", Int(3))

	var seen []string
	obj.Range(func(key string, _ Value) bool {
		seen = append(seen, key)
		return key != "b"
	})
	if len(seen) != 2 {
		t.Fatalf("Range visited %v, want 2 entries", seen)
	}
}
