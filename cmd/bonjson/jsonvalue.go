// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kstenerud/go-bonjson/lib/bonjson"
)

// valueFromJSON parses a single JSON document from data into a
// bonjson.Value, preserving object member order — encoding/json's own
// map[string]any decoding does not, since Go maps have no order, so
// this walks the token stream by hand.
//
// There is no order-preserving JSON library in the dependency stack
// this tool draws on; encoding/json's token API is the standard way
// to recover ordering, so this is the one place in the CLI that
// reaches for the standard library instead of a pack dependency.
func valueFromJSON(data []byte) (bonjson.Value, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	value, err := decodeJSONValue(dec)
	if err != nil {
		return bonjson.Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return bonjson.Value{}, fmt.Errorf("trailing content after JSON document")
	}
	return value, nil
}

func decodeJSONValue(dec *json.Decoder) (bonjson.Value, error) {
	token, err := dec.Token()
	if err != nil {
		return bonjson.Value{}, err
	}
	return decodeJSONToken(dec, token)
}

func decodeJSONToken(dec *json.Decoder, token json.Token) (bonjson.Value, error) {
	switch t := token.(type) {
	case nil:
		return bonjson.Null(), nil
	case bool:
		return bonjson.Bool(t), nil
	case json.Number:
		return numberToValue(t), nil
	case string:
		return bonjson.String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeJSONArray(dec)
		case '{':
			return decodeJSONObject(dec)
		default:
			return bonjson.Value{}, fmt.Errorf("unexpected JSON delimiter %q", t)
		}
	default:
		return bonjson.Value{}, fmt.Errorf("unrecognized JSON token %#v", token)
	}
}

func decodeJSONArray(dec *json.Decoder) (bonjson.Value, error) {
	var elems []bonjson.Value
	for dec.More() {
		elem, err := decodeJSONValue(dec)
		if err != nil {
			return bonjson.Value{}, err
		}
		elems = append(elems, elem)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return bonjson.Value{}, err
	}
	return bonjson.Array(elems...), nil
}

func decodeJSONObject(dec *json.Decoder) (bonjson.Value, error) {
	obj := bonjson.NewObject(0)
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return bonjson.Value{}, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return bonjson.Value{}, fmt.Errorf("object key was not a string: %#v", keyToken)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return bonjson.Value{}, err
		}
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return bonjson.Value{}, err
	}
	return bonjson.ObjectValue(obj), nil
}

// numberToValue chooses the narrowest BONJSON numeric type that holds
// a JSON number exactly: unsigned, then signed, then float.
func numberToValue(n json.Number) bonjson.Value {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return bonjson.Uint(u)
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return bonjson.Int(i)
		}
	}
	f, _ := strconv.ParseFloat(s, 64)
	return bonjson.Float(f)
}

// writeJSONValue renders v as JSON text to w, indenting nested
// containers, in the member order objects were decoded or built in.
func writeJSONValue(w io.Writer, v bonjson.Value, indent string) error {
	return writeJSONValueAt(w, v, indent, "")
}

func writeJSONValueAt(w io.Writer, v bonjson.Value, indent, prefix string) error {
	switch v.Type() {
	case bonjson.TypeNull:
		_, err := io.WriteString(w, "null")
		return err
	case bonjson.TypeBool:
		b, _ := v.Bool()
		_, err := io.WriteString(w, strconv.FormatBool(b))
		return err
	case bonjson.TypeInt:
		n, _ := v.Int()
		_, err := io.WriteString(w, strconv.FormatInt(n, 10))
		return err
	case bonjson.TypeUint:
		n, _ := v.Uint()
		_, err := io.WriteString(w, strconv.FormatUint(n, 10))
		return err
	case bonjson.TypeFloat:
		f, _ := v.Float()
		_, err := io.WriteString(w, strconv.FormatFloat(f, 'g', -1, 64))
		return err
	case bonjson.TypeBigNumber:
		bn, _ := v.Big()
		sign := ""
		if bn.IsNegative() {
			sign = "-"
		}
		_, err := fmt.Fprintf(w, "%s%de%d", sign, bn.Significand, bn.Exponent)
		return err
	case bonjson.TypeString:
		s, _ := v.String()
		encoded, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = w.Write(encoded)
		return err
	case bonjson.TypeArray:
		return writeJSONArray(w, v, indent, prefix)
	case bonjson.TypeObject:
		return writeJSONObject(w, v, indent, prefix)
	default:
		return fmt.Errorf("cannot render value of type %v as JSON", v.Type())
	}
}

func writeJSONArray(w io.Writer, v bonjson.Value, indent, prefix string) error {
	elems, _ := v.Array()
	if len(elems) == 0 {
		_, err := io.WriteString(w, "[]")
		return err
	}
	childPrefix := prefix + indent
	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	for i, elem := range elems {
		if _, err := io.WriteString(w, childPrefix); err != nil {
			return err
		}
		if err := writeJSONValueAt(w, elem, indent, childPrefix); err != nil {
			return err
		}
		if i < len(elems)-1 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, prefix+"]")
	return err
}

func writeJSONObject(w io.Writer, v bonjson.Value, indent, prefix string) error {
	obj, _ := v.Object()
	if obj.Len() == 0 {
		_, err := io.WriteString(w, "{}")
		return err
	}
	childPrefix := prefix + indent
	if _, err := io.WriteString(w, "{\n"); err != nil {
		return err
	}
	keys := obj.Keys()
	var rangeErr error
	for i, key := range keys {
		value, _ := obj.Get(key)
		if _, err := io.WriteString(w, childPrefix); err != nil {
			return err
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if _, err := w.Write(encodedKey); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ": "); err != nil {
			return err
		}
		if err := writeJSONValueAt(w, value, indent, childPrefix); err != nil {
			return err
		}
		if i < len(keys)-1 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			rangeErr = err
			break
		}
	}
	if rangeErr != nil {
		return rangeErr
	}
	_, err := io.WriteString(w, prefix+"}")
	return err
}
