// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kstenerud/go-bonjson/lib/bonjson"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFileAppliesEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bonjson.yaml")
	contents := `
environment: production
decode:
  max_document_size: 1000
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Decode.Compliance != "secure" {
		t.Errorf("Decode.Compliance = %q, want secure (production default)", cfg.Decode.Compliance)
	}
	if cfg.Decode.MaxDocumentSize != 1000 {
		t.Errorf("Decode.MaxDocumentSize = %d, want 1000", cfg.Decode.MaxDocumentSize)
	}
}

func TestLoadMissingEnvVar(t *testing.T) {
	t.Setenv("BONJSON_CONFIG", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when BONJSON_CONFIG is unset")
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := Default()
	cfg.Paths.CacheDir = "${HOME}/.cache/go-bonjson"
	cfg.expandVariables()
	if cfg.Paths.CacheDir != "/home/tester/.cache/go-bonjson" {
		t.Errorf("CacheDir = %q", cfg.Paths.CacheDir)
	}
}

func TestDecodeConfigToDecoderConfig(t *testing.T) {
	d := DecodeConfig{
		Compliance:       "secure",
		DuplicateKeys:    "keep_last",
		MaxDepth:         10,
		MaxContainerSize: 10,
		MaxStringLength:  10,
		MaxDocumentSize:  10,
	}
	got, err := d.ToDecoderConfig()
	if err != nil {
		t.Fatalf("ToDecoderConfig: %v", err)
	}
	if got.UnicodeNormalization != bonjson.NormalizeNFC {
		t.Errorf("UnicodeNormalization = %v, want NormalizeNFC", got.UnicodeNormalization)
	}
	if got.DuplicateKeyMode != bonjson.DuplicateKeyKeepLast {
		t.Errorf("DuplicateKeyMode = %v, want DuplicateKeyKeepLast", got.DuplicateKeyMode)
	}
}

func TestDecodeConfigRejectsUnknownCompliance(t *testing.T) {
	d := DecodeConfig{Compliance: "paranoid"}
	if _, err := d.ToDecoderConfig(); err == nil {
		t.Fatal("expected error for unknown compliance level")
	}
}

func TestValidateRejectsBadCompliance(t *testing.T) {
	cfg := Default()
	cfg.Decode.Compliance = "nonsense"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}
