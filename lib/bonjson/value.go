// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bonjson

import "fmt"

// Type identifies the kind of value held by a [Value].
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeUint
	TypeFloat
	TypeBigNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeFloat:
		return "float"
	case TypeBigNumber:
		return "bignumber"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed BONJSON value: the JSON data model plus
// the BigNumber and distinct-signedness-integer extensions described
// in the type code table. The zero Value is Null.
type Value struct {
	typ       Type
	boolVal   bool
	intVal    int64
	uintVal   uint64
	floatVal  float64
	bigVal    BigNumber
	stringVal string
	arrayVal  []Value
	objectVal *Object
}

// Null returns the null value.
func Null() Value { return Value{typ: TypeNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{typ: TypeBool, boolVal: b} }

// Int returns a signed integer value.
func Int(v int64) Value { return Value{typ: TypeInt, intVal: v} }

// Uint returns an unsigned integer value. Use this for values that do
// not fit in an int64, such as most of the uint64 range.
func Uint(v uint64) Value { return Value{typ: TypeUint, uintVal: v} }

// Float returns a floating-point value.
func Float(v float64) Value { return Value{typ: TypeFloat, floatVal: v} }

// Big returns a BigNumber value.
func Big(v BigNumber) Value { return Value{typ: TypeBigNumber, bigVal: v} }

// String returns a string value.
func String(s string) Value { return Value{typ: TypeString, stringVal: s} }

// Array returns an array value wrapping elems directly (not copied).
func Array(elems ...Value) Value { return Value{typ: TypeArray, arrayVal: elems} }

// ObjectValue returns an object value wrapping obj.
func ObjectValue(obj *Object) Value { return Value{typ: TypeObject, objectVal: obj} }

// Type reports v's dynamic type.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Bool returns v's boolean value. ok is false if v is not a bool.
func (v Value) Bool() (bool, bool) {
	return v.boolVal, v.typ == TypeBool
}

// Int returns v's value as an int64. Unsigned and BigNumber values are
// converted when they fit exactly; float values are not converted.
func (v Value) Int() (int64, bool) {
	switch v.typ {
	case TypeInt:
		return v.intVal, true
	case TypeUint:
		if v.uintVal > 1<<63-1 {
			return 0, false
		}
		return int64(v.uintVal), true
	case TypeBigNumber:
		return v.bigVal.Int64()
	default:
		return 0, false
	}
}

// Uint returns v's value as a uint64. Non-negative signed values are
// converted when they fit exactly.
func (v Value) Uint() (uint64, bool) {
	switch v.typ {
	case TypeUint:
		return v.uintVal, true
	case TypeInt:
		if v.intVal < 0 {
			return 0, false
		}
		return uint64(v.intVal), true
	case TypeBigNumber:
		return v.bigVal.Uint64()
	default:
		return 0, false
	}
}

// Float returns v's value as a float64, converting from any numeric
// type.
func (v Value) Float() (float64, bool) {
	switch v.typ {
	case TypeFloat:
		return v.floatVal, true
	case TypeInt:
		return float64(v.intVal), true
	case TypeUint:
		return float64(v.uintVal), true
	case TypeBigNumber:
		return v.bigVal.Float64(), true
	default:
		return 0, false
	}
}

// Big returns v's BigNumber value. ok is false if v is not a BigNumber.
func (v Value) Big() (BigNumber, bool) {
	return v.bigVal, v.typ == TypeBigNumber
}

// String returns v's string value. ok is false if v is not a string.
func (v Value) String() (string, bool) {
	return v.stringVal, v.typ == TypeString
}

// Array returns v's element slice. ok is false if v is not an array.
// The returned slice aliases v's storage; callers must not mutate it
// unless they own v.
func (v Value) Array() ([]Value, bool) {
	return v.arrayVal, v.typ == TypeArray
}

// Object returns v's object. ok is false if v is not an object.
func (v Value) Object() (*Object, bool) {
	return v.objectVal, v.typ == TypeObject
}

// GoString renders v for debugging; it is not the wire format and not
// JSON text.
func (v Value) GoString() string {
	switch v.typ {
	case TypeNull:
		return "null"
	case TypeBool:
		return fmt.Sprintf("%t", v.boolVal)
	case TypeInt:
		return fmt.Sprintf("%d", v.intVal)
	case TypeUint:
		return fmt.Sprintf("%d", v.uintVal)
	case TypeFloat:
		return fmt.Sprintf("%g", v.floatVal)
	case TypeBigNumber:
		return fmt.Sprintf("%d*10^%d", v.bigVal.Significand, v.bigVal.Exponent)
	case TypeString:
		return fmt.Sprintf("%q", v.stringVal)
	case TypeArray:
		return fmt.Sprintf("array[%d]", len(v.arrayVal))
	case TypeObject:
		return fmt.Sprintf("object[%d]", v.objectVal.Len())
	default:
		return "<invalid>"
	}
}

// Object is an insertion-ordered map from string keys to [Value]s.
// Unlike a Go map, iteration order matches the order keys were first
// set, which is required for BONJSON's object member order to
// round-trip. It is not safe for concurrent use.
type Object struct {
	keys   []string
	values []Value
	index  map[string]int
	// normIndex maps NFC-normalized keys to their slot, populated only
	// when a decoder runs under Secure (NFC) compliance. Set/Get always
	// address the raw-byte index; normIndex exists solely to let the
	// decoder detect normalization-equivalent duplicate keys.
	normIndex map[string]int
}

// NewObject returns an empty Object, optionally pre-sizing its
// backing storage for capacity entries.
func NewObject(capacity int) *Object {
	return &Object{
		keys:   make([]string, 0, capacity),
		values: make([]Value, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

// Len reports the number of members in o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored at key. ok is false if key is absent.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, found := o.index[key]
	if !found {
		return Value{}, false
	}
	return o.values[i], true
}

// Set stores value at key, appending a new member if key is not
// already present, or overwriting in place (preserving its original
// position) if it is.
func (o *Object) Set(key string, value Value) {
	if i, found := o.index[key]; found {
		o.values[i] = value
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

// appendUnchecked appends key/value without checking whether key is
// already present, then points the index entry for key at the new
// slot. Used by the decoder under NormalizeNone after it has applied
// its own duplicate-key policy, so Object never deduplicates on its
// behalf.
func (o *Object) appendUnchecked(key string, value Value) {
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

// Keys returns the object's keys in insertion order. The returned
// slice aliases o's storage and must not be mutated.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Range calls fn for each member in insertion order, stopping early
// if fn returns false.
func (o *Object) Range(fn func(key string, value Value) bool) {
	if o == nil {
		return
	}
	for i, key := range o.keys {
		if !fn(key, o.values[i]) {
			return
		}
	}
}
