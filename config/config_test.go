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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sietse/typical/config"
	"github.com/sietse/typical/internal/testutil"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvPluginPath, "")
	t.Setenv(config.EnvLogLevel, "")
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	dir := testutil.WriteTree(t, map[string]string{
		"typical.toml": `
root = "schemas"

[plugins]
path = ["plugins", "/opt/typical/plugins"]

[log]
level = "debug"

[generate]
typescript = "out/types.ts"
`,
	})
	cfg, err := config.Load(filepath.Join(dir, "typical.toml"))
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{
		filepath.Join(dir, "plugins"),
		"/opt/typical/plugins",
	}, cfg.Plugins.Path)
	testutil.ExpectEq(t, zerolog.DebugLevel, cfg.LogLevel())
	testutil.ExpectEq(t, filepath.Join(dir, "schemas"), cfg.Root)
	testutil.ExpectEq(t, filepath.Join(dir, "out", "types.ts"), cfg.Generate.TypeScript)
	testutil.ExpectEq(t, "", cfg.Generate.Rust)
	testutil.ExpectEq(t, filepath.Join(dir, "typical.toml"), cfg.Path)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	dir := testutil.WriteTree(t, map[string]string{
		"typical.yaml": `
plugins:
  path:
    - plugins
log:
  level: info
generate:
  rust: out/types.rs
`,
	})
	cfg, err := config.Load(filepath.Join(dir, "typical.yaml"))
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{filepath.Join(dir, "plugins")}, cfg.Plugins.Path)
	testutil.ExpectEq(t, zerolog.InfoLevel, cfg.LogLevel())
	testutil.ExpectEq(t, filepath.Join(dir, "out", "types.rs"), cfg.Generate.Rust)
}

func TestLoadEmptyYAML(t *testing.T) {
	clearEnv(t)
	dir := testutil.WriteTree(t, map[string]string{
		"typical.yml": "",
	})
	cfg, err := config.Load(filepath.Join(dir, "typical.yml"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, zerolog.WarnLevel, cfg.LogLevel())
	testutil.ExpectEq(t, "", cfg.PluginSearchPath())
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := testutil.WriteTree(t, map[string]string{
		"unknown.toml":  "[plugins]\ndirs = [\"x\"]\n",
		"unknown.yaml":  "plugin:\n  path: []\n",
		"level.toml":    "[log]\nlevel = \"loud\"\n",
		"broken.toml":   "[plugins\n",
		"config.json":   "{}",
		"emptydir.toml": "[plugins]\npath = [\"\"]\n",
	})
	for _, name := range []string{
		"unknown.toml",
		"unknown.yaml",
		"level.toml",
		"broken.toml",
		"config.json",
		"emptydir.toml",
		"missing.yaml",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(filepath.Join(dir, name))
			testutil.AssertError(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"typical.toml": "[log]\nlevel = \"debug\"\n[plugins]\npath = [\"a\"]\n",
	})
	searchPath := "/x" + string(os.PathListSeparator) + "/y"
	t.Setenv(config.EnvPluginPath, searchPath)
	t.Setenv(config.EnvLogLevel, "error")

	cfg, err := config.Load(filepath.Join(dir, "typical.toml"))
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []string{"/x", "/y"}, cfg.Plugins.Path)
	testutil.ExpectEq(t, searchPath, cfg.PluginSearchPath())
	testutil.ExpectEq(t, zerolog.ErrorLevel, cfg.LogLevel())
}

func TestFind(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"project/typical.yaml":         "",
		"project/schemas/deep/main.t":  "",
		"project/nested/typical.toml":  "",
		"project/nested/typical.yaml":  "",
		"project/nested/inner/thing.t": "",
	})

	path, ok, err := config.Find(filepath.Join(dir, "project", "schemas", "deep"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, filepath.Join(dir, "project", "typical.yaml"), path)

	// TOML is preferred when both exist.
	path, ok, err = config.Find(filepath.Join(dir, "project", "nested", "inner"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, filepath.Join(dir, "project", "nested", "typical.toml"), path)
}

func TestDiscoverWithoutFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if _, ok, _ := config.Find(dir); ok {
		t.Skip("a typical config file exists above the temp directory")
	}
	t.Setenv(config.EnvLogLevel, "info")

	cfg, err := config.Discover(dir)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "", cfg.Path)
	testutil.ExpectEq(t, zerolog.InfoLevel, cfg.LogLevel())
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	testutil.ExpectEq(t, zerolog.WarnLevel, cfg.LogLevel())
	testutil.ExpectEq(t, "", cfg.PluginSearchPath())
}

func TestLoadEnvFile(t *testing.T) {
	const name = "TYPICAL_TEST_DOTENV_VALUE"
	t.Cleanup(func() { os.Unsetenv(name) })

	dir := testutil.WriteTree(t, map[string]string{
		".env": name + "=from-dotenv\n",
	})
	testutil.AssertNoError(t, config.LoadEnvFile(filepath.Join(dir, ".env")))
	testutil.ExpectEq(t, "from-dotenv", os.Getenv(name))

	testutil.AssertNoError(t, config.LoadEnvFile(filepath.Join(dir, "missing.env")))
}
