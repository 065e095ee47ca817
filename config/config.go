// Copyright (c) 2026 The Typical Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package config loads project configuration for the typical CLI.
//
// A project is configured by a typical.toml or typical.yaml file, found by
// walking up from the working directory. Environment variables (optionally
// read from a .env file) override file settings:
//
//	TYPICAL_PLUGIN_PATH - codegen plugin search path
//	TYPICAL_LOG_LEVEL   - log level: debug, info, warn, error
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	EnvPluginPath = "TYPICAL_PLUGIN_PATH"
	EnvLogLevel   = "TYPICAL_LOG_LEVEL"

	defaultLogLevel = "warn"
)

// File names searched for by Find, in order of preference.
var FileNames = []string{"typical.toml", "typical.yaml", "typical.yml"}

// Config is the project configuration. Relative paths are resolved against
// the directory containing the configuration file.
type Config struct {
	// Compilation root: namespaces are derived from paths relative to it.
	// Defaults to the directory of the entry schema.
	Root string `toml:"root" yaml:"root"`

	Plugins  PluginsConfig  `toml:"plugins" yaml:"plugins"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Generate GenerateConfig `toml:"generate" yaml:"generate"`

	// Path of the file the configuration was loaded from, if any.
	Path string `toml:"-" yaml:"-"`
}

type PluginsConfig struct {
	// Directories searched for typical-codegen-NAME.wasm.
	Path []string `toml:"path" yaml:"path"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// GenerateConfig holds default output files for `typical generate`.
type GenerateConfig struct {
	TypeScript string `toml:"typescript" yaml:"typescript"`
	Rust       string `toml:"rust" yaml:"rust"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Find walks up from startDir looking for a configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover loads the configuration file found by Find, or the defaults (with
// environment overrides) when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		cfg := &Config{}
		applyEnvOverrides(cfg)
		setDefaults(cfg)
		if err := validate(cfg); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}

// Load reads a configuration file. The format is chosen by extension.
func Load(path string) (*Config, error) {
	var cfg Config
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: parse YAML: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}

	cfg.Path = path
	cfg.resolvePaths(filepath.Dir(path))
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: validate config: %w", path, err)
	}
	return &cfg, nil
}

// LoadEnvFile loads environment variables from a .env file. Variables that
// are already set are not changed, and a missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// PluginSearchPath returns the plugin directories as a single list in
// os.PathListSeparator form.
func (cfg *Config) PluginSearchPath() string {
	return strings.Join(cfg.Plugins.Path, string(os.PathListSeparator))
}

// LogLevel returns the configured log level. Load has already validated it.
func (cfg *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

func (cfg *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, filepath.FromSlash(p))
	}
	for ii, dir := range cfg.Plugins.Path {
		cfg.Plugins.Path[ii] = resolve(dir)
	}
	cfg.Root = resolve(cfg.Root)
	cfg.Generate.TypeScript = resolve(cfg.Generate.TypeScript)
	cfg.Generate.Rust = resolve(cfg.Generate.Rust)
}

// applyEnvOverrides applies TYPICAL_* environment variables. They always
// override file settings.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPluginPath); v != "" {
		cfg.Plugins.Path = filepath.SplitList(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
}

func validate(cfg *Config) error {
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	for _, dir := range cfg.Plugins.Path {
		if dir == "" {
			return fmt.Errorf("plugins.path: empty directory")
		}
	}
	return nil
}
