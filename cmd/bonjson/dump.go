// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"

	"github.com/kstenerud/go-bonjson/cmd/bonjson/clierr"
	"github.com/kstenerud/go-bonjson/lib/bonjson"
	"github.com/kstenerud/go-bonjson/lib/config"
)

func runDump(args []string) error {
	fileCfg, err := config.LoadFromArgs(args)
	if err != nil {
		return clierr.Usage("loading config: %w", err)
	}
	decodeDefaults := config.Default().Decode
	if fileCfg != nil {
		decodeDefaults = fileCfg.Decode
	}

	var (
		compliance string
		plain      bool
		style      string
		configPath string
	)

	fs := newSubFlagSet("bonjson dump")
	fs.StringVar(&compliance, "compliance", decodeDefaults.Compliance, "key-equality level: basic or secure")
	fs.BoolVar(&plain, "plain", false, "disable syntax highlighting")
	fs.StringVar(&style, "style", "monokai", "chroma style name")
	fs.StringVar(&configPath, "config", "", "path to a bonjson.yaml config file (or set BONJSON_CONFIG)")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printDumpHelp(fs)
			return nil
		}
		return clierr.Usage("%w", err)
	}
	if help, _ := fs.GetBool("help"); help {
		printDumpHelp(fs)
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
	cfg.AllowTrailingBytes = true
	if compliance == "secure" {
		cfg.UnicodeNormalization = bonjson.NormalizeNFC
	} else {
		cfg.UnicodeNormalization = bonjson.NormalizeNone
	}

	value, err := bonjson.UnmarshalConfig(data, cfg)
	if err != nil {
		return clierr.Data("decoding: %w", err)
	}

	var buffer bytes.Buffer
	if err := writeJSONValue(&buffer, value, "  "); err != nil {
		return clierr.IO("rendering: %w", err)
	}

	if plain {
		buffer.WriteTo(os.Stdout)
		fmt.Println()
		return nil
	}

	if err := quick.Highlight(os.Stdout, buffer.String(), "json", "terminal256", style); err != nil {
		return clierr.IO("highlighting: %w", err)
	}
	fmt.Println()
	return nil
}

func printDumpHelp(fs *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, `Print a syntax-highlighted structural dump of a BONJSON document.

Usage:
  bonjson dump [flags] [input-file]

Flags:
`)
	fs.SetOutput(os.Stderr)
	fs.PrintDefaults()
}
