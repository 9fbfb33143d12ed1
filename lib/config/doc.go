// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config is used only by go-bonjson's command-line tools
// (cmd/bonjson, cmd/bonjson-inspect); the lib/bonjson package itself
// takes a [bonjson.DecoderConfig] / [bonjson.EncoderConfig] directly
// and has no dependency on YAML or the filesystem.
package config
