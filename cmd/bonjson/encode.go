// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/kstenerud/go-bonjson/cmd/bonjson/clierr"
	"github.com/kstenerud/go-bonjson/lib/bonjson"
	"github.com/kstenerud/go-bonjson/lib/config"
)

func runEncode(args []string) error {
	fileCfg, err := config.LoadFromArgs(args)
	if err != nil {
		return clierr.Usage("loading config: %w", err)
	}
	encodeDefaults := config.Default().Encode
	if fileCfg != nil {
		encodeDefaults = fileCfg.Encode
	}

	var (
		outputPath       string
		allowNul         bool
		allowNaNInfinity bool
		configPath       string
	)

	fs := newSubFlagSet("bonjson encode")
	fs.StringVarP(&outputPath, "output", "o", "", "write BONJSON bytes to this path (default: stdout)")
	fs.BoolVar(&allowNul, "allow-nul", encodeDefaults.AllowNul, "permit a NUL byte inside an encoded string")
	fs.BoolVar(&allowNaNInfinity, "allow-nan-infinity", encodeDefaults.AllowNaNInfinity, "permit encoding NaN and +/-Infinity")
	fs.StringVar(&configPath, "config", "", "path to a bonjson.yaml config file (or set BONJSON_CONFIG)")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printEncodeHelp(fs)
			return nil
		}
		return clierr.Usage("%w", err)
	}
	if help, _ := fs.GetBool("help"); help {
		printEncodeHelp(fs)
		return nil
	}

	data, err := readInput(fs.Args())
	if err != nil {
		return clierr.IO("%w", err)
	}

	stripped := jsonc.ToJSON(data)

	value, err := valueFromJSON(stripped)
	if err != nil {
		return clierr.Data("parsing input as JSON: %w", err)
	}

	encCfg := encodeDefaults.ToEncoderConfig()
	encCfg.AllowNul = allowNul
	encCfg.AllowNaNInfinity = allowNaNInfinity

	out, err := bonjson.MarshalConfig(value, encCfg)
	if err != nil {
		return clierr.Data("encoding: %w", err)
	}

	if err := writeOutput(outputPath, out); err != nil {
		return clierr.IO("writing output: %w", err)
	}
	return nil
}

func printEncodeHelp(fs *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, `Encode a JSON or JSONC document as BONJSON.

Usage:
  bonjson encode [flags] [input-file]

Flags:
`)
	fs.SetOutput(os.Stderr)
	fs.PrintDefaults()
}

func readInput(positional []string) ([]byte, error) {
	switch len(positional) {
	case 0:
		return io.ReadAll(os.Stdin)
	case 1:
		return os.ReadFile(positional[0])
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", len(positional))
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
