// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for go-bonjson
// command-line tools.
//
// Configuration is loaded from a single file specified by:
//   - BONJSON_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There is no automatic discovery of config files. When neither is set,
// LoadFromArgs returns no config and the tools use the values from Default.
//
// The config file may contain environment-specific sections (development,
// staging, production) that override base values when the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kstenerud/go-bonjson/lib/bonjson"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for go-bonjson command-line
// tools: which compliance level and resource limits to decode and
// encode with, and where to find supporting files.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Decode configures default decoder behavior.
	Decode DecodeConfig `yaml:"decode"`

	// Encode configures default encoder behavior.
	Encode EncodeConfig `yaml:"encode"`

	// Paths configures file locations used by tooling.
	Paths PathsConfig `yaml:"paths"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Decode *DecodeConfig `yaml:"decode,omitempty"`
	Encode *EncodeConfig `yaml:"encode,omitempty"`
	Paths  *PathsConfig  `yaml:"paths,omitempty"`
}

// DecodeConfig configures a [bonjson.Decoder]'s strictness and
// resource ceilings, in the shape a config file author writes them;
// [DecodeConfig.ToDecoderConfig] translates it to
// [bonjson.DecoderConfig].
type DecodeConfig struct {
	// Compliance selects "basic" (raw byte key equality) or "secure"
	// (NFC-normalized key equality). Default: basic.
	Compliance string `yaml:"compliance"`

	// DuplicateKeys selects "error", "keep_first", or "keep_last".
	// Default: error.
	DuplicateKeys string `yaml:"duplicate_keys"`

	// AllowNul permits a NUL byte inside a decoded string.
	AllowNul bool `yaml:"allow_nul"`

	// AllowNaNInfinity permits decoding non-finite floats.
	AllowNaNInfinity bool `yaml:"allow_nan_infinity"`

	// AllowTrailingBytes permits bytes after the root value.
	AllowTrailingBytes bool `yaml:"allow_trailing_bytes"`

	// MaxDepth bounds container nesting. Validate rejects values that
	// are not positive; in an environment override block, zero leaves
	// the base value unchanged.
	MaxDepth int `yaml:"max_depth"`

	// MaxContainerSize bounds a single array or object's member count.
	MaxContainerSize int `yaml:"max_container_size"`

	// MaxStringLength bounds a single string's byte length.
	MaxStringLength int `yaml:"max_string_length"`

	// MaxDocumentSize bounds the total input length.
	MaxDocumentSize int `yaml:"max_document_size"`
}

// EncodeConfig configures a [bonjson.Encoder].
type EncodeConfig struct {
	// AllowNul permits writing a string containing a NUL byte.
	AllowNul bool `yaml:"allow_nul"`
	// AllowNaNInfinity permits writing NaN and +/-Infinity floats.
	AllowNaNInfinity bool `yaml:"allow_nan_infinity"`
}

// PathsConfig configures file locations used by go-bonjson tooling.
type PathsConfig struct {
	// CacheDir is a scratch directory for tooling. EnsurePaths creates
	// it; no command currently reads or writes it.
	CacheDir string `yaml:"cache_dir"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file,
// and the command-line tools use them directly when no config file is
// given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Environment: Development,
		Decode: DecodeConfig{
			Compliance:       "basic",
			DuplicateKeys:    "error",
			MaxDepth:         bonjson.DefaultMaxDepth,
			MaxContainerSize: bonjson.DefaultMaxContainerSize,
			MaxStringLength:  bonjson.DefaultMaxStringLength,
			MaxDocumentSize:  bonjson.DefaultMaxDocumentSize,
		},
		Paths: PathsConfig{
			CacheDir: homeDir + "/.cache/go-bonjson",
		},
	}
}

// Load loads configuration from the BONJSON_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks or defaults - if BONJSON_CONFIG is not set, this fails.
// This ensures deterministic, auditable configuration with no hidden overrides.
func Load() (*Config, error) {
	configPath := os.Getenv("BONJSON_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("BONJSON_CONFIG environment variable not set; " +
			"set it to the path of your bonjson.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do not
// override config values - this ensures deterministic, auditable configuration.
// The only expansion performed is ${HOME} and similar variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// LoadFromArgs loads configuration for a command-line tool given its
// raw argument slice: a --config flag takes priority over the
// BONJSON_CONFIG environment variable. It returns (nil, nil), not an
// error, when neither is set, so callers can fall back to
// [bonjson.DefaultDecoderConfig] and [bonjson.DefaultEncoderConfig].
// On success it also validates the config and calls [Config.EnsurePaths].
func LoadFromArgs(args []string) (*Config, error) {
	path := configPathFromArgs(args)
	if path == "" {
		path = os.Getenv("BONJSON_CONFIG")
	}
	if path == "" {
		return nil, nil
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPathFromArgs extracts a --config flag's value without
// depending on any particular flag-parsing library, since it must run
// before the caller builds its own flag set (whose defaults it feeds).
func configPathFromArgs(args []string) string {
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if rest, ok := strings.CutPrefix(a, "--config="); ok {
			return rest
		}
	}
	return ""
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: reject what development tolerates,
		// unless the config file explicitly overrides compliance.
		if overrides == nil {
			overrides = &ConfigOverrides{}
		}
		if overrides.Decode == nil {
			overrides.Decode = &DecodeConfig{}
		}
		if overrides.Decode.Compliance == "" {
			overrides.Decode.Compliance = "secure"
		}
		if overrides.Decode.DuplicateKeys == "" {
			overrides.Decode.DuplicateKeys = "error"
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Decode != nil {
		if overrides.Decode.Compliance != "" {
			c.Decode.Compliance = overrides.Decode.Compliance
		}
		if overrides.Decode.DuplicateKeys != "" {
			c.Decode.DuplicateKeys = overrides.Decode.DuplicateKeys
		}
		c.Decode.AllowNul = overrides.Decode.AllowNul
		c.Decode.AllowNaNInfinity = overrides.Decode.AllowNaNInfinity
		c.Decode.AllowTrailingBytes = overrides.Decode.AllowTrailingBytes
		if overrides.Decode.MaxDepth != 0 {
			c.Decode.MaxDepth = overrides.Decode.MaxDepth
		}
		if overrides.Decode.MaxContainerSize != 0 {
			c.Decode.MaxContainerSize = overrides.Decode.MaxContainerSize
		}
		if overrides.Decode.MaxStringLength != 0 {
			c.Decode.MaxStringLength = overrides.Decode.MaxStringLength
		}
		if overrides.Decode.MaxDocumentSize != 0 {
			c.Decode.MaxDocumentSize = overrides.Decode.MaxDocumentSize
		}
	}

	if overrides.Encode != nil {
		c.Encode.AllowNul = overrides.Encode.AllowNul
		c.Encode.AllowNaNInfinity = overrides.Encode.AllowNaNInfinity
	}

	if overrides.Paths != nil && overrides.Paths.CacheDir != "" {
		c.Paths.CacheDir = overrides.Paths.CacheDir
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.CacheDir = expandVars(c.Paths.CacheDir, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	complianceValues := []string{"basic", "secure"}
	if !contains(complianceValues, c.Decode.Compliance) {
		errs = append(errs, fmt.Errorf("decode.compliance must be one of: %v", complianceValues))
	}

	duplicateValues := []string{"error", "keep_first", "keep_last"}
	if !contains(duplicateValues, c.Decode.DuplicateKeys) {
		errs = append(errs, fmt.Errorf("decode.duplicate_keys must be one of: %v", duplicateValues))
	}

	if c.Decode.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_depth must be positive"))
	}
	if c.Decode.MaxContainerSize <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_container_size must be positive"))
	}
	if c.Decode.MaxStringLength <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_string_length must be positive"))
	}
	if c.Decode.MaxDocumentSize <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_document_size must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ToDecoderConfig translates the YAML-facing DecodeConfig into a
// [bonjson.DecoderConfig] ready to pass to [bonjson.UnmarshalConfig].
func (d DecodeConfig) ToDecoderConfig() (bonjson.DecoderConfig, error) {
	cfg := bonjson.DecoderConfig{
		AllowNul:           d.AllowNul,
		AllowNaNInfinity:   d.AllowNaNInfinity,
		AllowTrailingBytes: d.AllowTrailingBytes,
		MaxDepth:           d.MaxDepth,
		MaxContainerSize:   d.MaxContainerSize,
		MaxStringLength:    d.MaxStringLength,
		MaxDocumentSize:    d.MaxDocumentSize,
	}

	switch d.Compliance {
	case "", "basic":
		cfg.UnicodeNormalization = bonjson.NormalizeNone
	case "secure":
		cfg.UnicodeNormalization = bonjson.NormalizeNFC
	default:
		return cfg, fmt.Errorf("unknown compliance level %q", d.Compliance)
	}

	switch d.DuplicateKeys {
	case "", "error":
		cfg.DuplicateKeyMode = bonjson.DuplicateKeyError
	case "keep_first":
		cfg.DuplicateKeyMode = bonjson.DuplicateKeyKeepFirst
	case "keep_last":
		cfg.DuplicateKeyMode = bonjson.DuplicateKeyKeepLast
	default:
		return cfg, fmt.Errorf("unknown duplicate key mode %q", d.DuplicateKeys)
	}

	return cfg, nil
}

// ToEncoderConfig translates EncodeConfig into a [bonjson.EncoderConfig].
func (e EncodeConfig) ToEncoderConfig() bonjson.EncoderConfig {
	return bonjson.EncoderConfig{
		AllowNul:         e.AllowNul,
		AllowNaNInfinity: e.AllowNaNInfinity,
	}
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	if c.Paths.CacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.CacheDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.CacheDir, err)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
