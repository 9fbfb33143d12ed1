// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kstenerud/go-bonjson/cmd/bonjson/clierr"
	"github.com/kstenerud/go-bonjson/lib/bonjson"
	"github.com/kstenerud/go-bonjson/lib/codec"
)

func runConvert(args []string) error {
	var (
		from       string
		to         string
		outputPath string
	)

	fs := newSubFlagSet("bonjson convert")
	fs.StringVar(&from, "from", "bonjson", "source format: bonjson or cbor")
	fs.StringVar(&to, "to", "cbor", "destination format: bonjson or cbor")
	fs.StringVarP(&outputPath, "output", "o", "", "write converted bytes to this path (default: stdout)")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printConvertHelp(fs)
			return nil
		}
		return clierr.Usage("%w", err)
	}
	if help, _ := fs.GetBool("help"); help {
		printConvertHelp(fs)
		return nil
	}
	if from == to {
		return clierr.Usage("--from and --to must differ")
	}

	data, err := readInput(fs.Args())
	if err != nil {
		return clierr.IO("%w", err)
	}

	var value bonjson.Value
	switch from {
	case "bonjson":
		value, err = bonjson.Unmarshal(data)
	case "cbor":
		var generic any
		if err = codec.Unmarshal(data, &generic); err == nil {
			value = valueFromGeneric(generic)
		}
	default:
		return clierr.Usage("unknown --from %q", from)
	}
	if err != nil {
		return clierr.Data("reading %s input: %w", from, err)
	}

	var out []byte
	switch to {
	case "bonjson":
		out, err = bonjson.Marshal(value)
	case "cbor":
		out, err = codec.Marshal(genericFromValue(value))
	default:
		return clierr.Usage("unknown --to %q", to)
	}
	if err != nil {
		return clierr.Data("writing %s output: %w", to, err)
	}

	if err := writeOutput(outputPath, out); err != nil {
		return clierr.IO("writing output: %w", err)
	}
	return nil
}

func printConvertHelp(fs *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, `Bridge a BONJSON document to or from CBOR.

Usage:
  bonjson convert --from bonjson --to cbor [flags] [input-file]
  bonjson convert --from cbor --to bonjson [flags] [input-file]

Flags:
`)
	fs.SetOutput(os.Stderr)
	fs.PrintDefaults()
}

// genericFromValue lowers a bonjson.Value to the any/map[string]any
// shape codec.Marshal (fxamacker/cbor) already knows how to write.
// Object order is not preserved across this bridge: CBOR's core
// deterministic encoding mode sorts map keys by its own rule
// regardless of what order they're handed in.
func genericFromValue(v bonjson.Value) any {
	switch v.Type() {
	case bonjson.TypeNull:
		return nil
	case bonjson.TypeBool:
		b, _ := v.Bool()
		return b
	case bonjson.TypeInt:
		n, _ := v.Int()
		return n
	case bonjson.TypeUint:
		n, _ := v.Uint()
		return n
	case bonjson.TypeFloat:
		f, _ := v.Float()
		return f
	case bonjson.TypeBigNumber:
		bn, _ := v.Big()
		return bn.Float64()
	case bonjson.TypeString:
		s, _ := v.String()
		return s
	case bonjson.TypeArray:
		elems, _ := v.Array()
		out := make([]any, len(elems))
		for i, elem := range elems {
			out[i] = genericFromValue(elem)
		}
		return out
	case bonjson.TypeObject:
		obj, _ := v.Object()
		out := make(map[string]any, obj.Len())
		obj.Range(func(key string, value bonjson.Value) bool {
			out[key] = genericFromValue(value)
			return true
		})
		return out
	default:
		return nil
	}
}

// valueFromGeneric lifts a CBOR-decoded any (built with
// map[string]any per lib/codec's DefaultMapType setting) into a
// bonjson.Value. Map key order is whatever Go's map iteration gives,
// since CBOR's own decoded representation does not preserve it.
func valueFromGeneric(v any) bonjson.Value {
	switch t := v.(type) {
	case nil:
		return bonjson.Null()
	case bool:
		return bonjson.Bool(t)
	case int64:
		return bonjson.Int(t)
	case uint64:
		return bonjson.Uint(t)
	case float64:
		return bonjson.Float(t)
	case string:
		return bonjson.String(t)
	case []byte:
		elems := make([]bonjson.Value, len(t))
		for i, b := range t {
			elems[i] = bonjson.Uint(uint64(b))
		}
		return bonjson.Array(elems...)
	case []any:
		elems := make([]bonjson.Value, len(t))
		for i, elem := range t {
			elems[i] = valueFromGeneric(elem)
		}
		return bonjson.Array(elems...)
	case map[string]any:
		obj := bonjson.NewObject(len(t))
		for key, value := range t {
			obj.Set(key, valueFromGeneric(value))
		}
		return bonjson.ObjectValue(obj)
	default:
		return bonjson.Null()
	}
}
