// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kstenerud/go-bonjson/cmd/bonjson/clierr"
	"github.com/kstenerud/go-bonjson/lib/bonjson"
	"github.com/kstenerud/go-bonjson/lib/config"
)

func runDecode(args []string) error {
	fileCfg, err := config.LoadFromArgs(args)
	if err != nil {
		return clierr.Usage("loading config: %w", err)
	}
	decodeDefaults := config.Default().Decode
	if fileCfg != nil {
		decodeDefaults = fileCfg.Decode
	}

	var (
		outputPath    string
		compliance    string
		duplicateKeys string
		indent        string
		allowTrailing bool
		configPath    string
	)

	fs := newSubFlagSet("bonjson decode")
	fs.StringVarP(&outputPath, "output", "o", "", "write JSON text to this path (default: stdout)")
	fs.StringVar(&compliance, "compliance", decodeDefaults.Compliance, "key-equality level: basic or secure")
	fs.StringVar(&duplicateKeys, "duplicate-keys", decodeDefaults.DuplicateKeys, "duplicate key policy: error, keep_first, or keep_last")
	fs.StringVar(&indent, "indent", "  ", "indentation for nested JSON output")
	fs.BoolVar(&allowTrailing, "allow-trailing-bytes", decodeDefaults.AllowTrailingBytes, "permit bytes after the root value")
	fs.StringVar(&configPath, "config", "", "path to a bonjson.yaml config file (or set BONJSON_CONFIG)")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printDecodeHelp(fs)
			return nil
		}
		return clierr.Usage("%w", err)
	}
	if help, _ := fs.GetBool("help"); help {
		printDecodeHelp(fs)
		return nil
	}

	data, err := readInput(fs.Args())
	if err != nil {
		return clierr.IO("%w", err)
	}

	cfg, err := decodeDefaults.ToDecoderConfig()
	if err != nil {
		return clierr.Usage("%w", err)
	}
	cfg.AllowTrailingBytes = allowTrailing
	switch compliance {
	case "basic":
		cfg.UnicodeNormalization = bonjson.NormalizeNone
	case "secure":
		cfg.UnicodeNormalization = bonjson.NormalizeNFC
	default:
		return clierr.Usage("unknown --compliance %q (want basic or secure)", compliance)
	}
	switch duplicateKeys {
	case "error":
		cfg.DuplicateKeyMode = bonjson.DuplicateKeyError
	case "keep_first":
		cfg.DuplicateKeyMode = bonjson.DuplicateKeyKeepFirst
	case "keep_last":
		cfg.DuplicateKeyMode = bonjson.DuplicateKeyKeepLast
	default:
		return clierr.Usage("unknown --duplicate-keys %q", duplicateKeys)
	}

	value, err := bonjson.UnmarshalConfig(data, cfg)
	if err != nil {
		return clierr.Data("decoding: %w", err)
	}

	var out *os.File
	if outputPath == "" {
		out = os.Stdout
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return clierr.IO("%w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeJSONValue(out, value, indent); err != nil {
		return clierr.IO("writing output: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

func printDecodeHelp(fs *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, `Decode a BONJSON document to JSON text.

Usage:
  bonjson decode [flags] [input-file]

Flags:
`)
	fs.SetOutput(os.Stderr)
	fs.PrintDefaults()
}
