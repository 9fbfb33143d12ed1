// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bonjson-inspect is an interactive terminal browser for BONJSON
// documents: it decodes a file into a tree and lets you navigate,
// expand, collapse, and filter it without first converting to text.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/kstenerud/go-bonjson/lib/bonjson"
	"github.com/kstenerud/go-bonjson/lib/config"
	"github.com/kstenerud/go-bonjson/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 && (args[0] == "--version" || args[0] == "version") {
		fmt.Println(version.Info())
		return nil
	}

	fileCfg, err := config.LoadFromArgs(args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	decodeDefaults := config.Default().Decode
	if fileCfg != nil {
		decodeDefaults = fileCfg.Decode
	}

	fs := pflag.NewFlagSet("bonjson-inspect", pflag.ContinueOnError)
	compliance := fs.String("compliance", decodeDefaults.Compliance, "key-equality level: basic or secure")
	fs.String("config", "", "path to a bonjson.yaml config file (or set BONJSON_CONFIG)")
	help := fs.BoolP("help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(fs)
			return nil
		}
		return err
	}
	if *help {
		printHelp(fs)
		return nil
	}

	positional := fs.Args()
	if len(positional) != 1 {
		printHelp(fs)
		return fmt.Errorf("expected exactly one input file")
	}
	path := positional[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := decodeDefaults.ToDecoderConfig()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	cfg.AllowTrailingBytes = true
	if *compliance == "secure" {
		cfg.UnicodeNormalization = bonjson.NormalizeNFC
	} else {
		cfg.UnicodeNormalization = bonjson.NormalizeNone
	}

	root, err := bonjson.UnmarshalConfig(data, cfg)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	m := newModel(root, filepath.Base(path))
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	return err
}

func printHelp(fs *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, `bonjson-inspect — interactive terminal browser for BONJSON documents.

Usage:
  bonjson-inspect [flags] <input-file>

Flags:
`)
	fs.SetOutput(os.Stderr)
	fs.PrintDefaults()
}
