// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bonjson is a command-line encoder, decoder, and converter for the
// BONJSON binary format. It reads JSON or JSONC text and writes
// BONJSON bytes (encode), reads BONJSON bytes and writes JSON text
// (decode), bridges BONJSON to and from CBOR (convert), and prints a
// syntax-highlighted structural dump of a BONJSON document (dump).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kstenerud/go-bonjson/cmd/bonjson/clierr"
	"github.com/kstenerud/go-bonjson/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 && (args[0] == "--version" || args[0] == "version") {
		fmt.Println(version.Info())
		return nil
	}
	if len(args) == 0 {
		printTopHelp()
		return nil
	}

	subcommand, rest := args[0], args[1:]
	switch subcommand {
	case "encode":
		return runEncode(rest)
	case "decode":
		return runDecode(rest)
	case "convert":
		return runConvert(rest)
	case "dump":
		return runDump(rest)
	case "-h", "--help", "help":
		printTopHelp()
		return nil
	default:
		return clierr.Usage("unknown subcommand %q (run 'bonjson --help' for usage)", subcommand)
	}
}

func printTopHelp() {
	fmt.Fprint(os.Stderr, `bonjson — encode, decode, and inspect BONJSON binary documents.

Usage:
  bonjson encode [flags] [input-file]   JSON/JSONC text -> BONJSON bytes
  bonjson decode [flags] [input-file]   BONJSON bytes -> JSON text
  bonjson convert [flags] [input-file]  bridge BONJSON <-> CBOR
  bonjson dump [flags] [input-file]     syntax-highlighted structural dump
  bonjson --version                     print build version

Run 'bonjson <subcommand> --help' for flags specific to that subcommand.
With no input-file, each subcommand reads from stdin.
`)
}

// newSubFlagSet returns a pflag.FlagSet in the convention shared by
// every subcommand: ContinueOnError, with an explicit -h/--help flag
// checked after Parse so pflag.ErrHelp and -h both route through the
// same help text.
func newSubFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.BoolP("help", "h", false, "show help")
	return fs
}
