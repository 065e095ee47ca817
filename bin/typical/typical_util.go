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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/sietse/typical/config"
	"github.com/sietse/typical/diag"
	"github.com/sietse/typical/loader"
)

// globals holds state shared by all subcommands: global flags and what
// setup derives from them.
type globals struct {
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool

	configPath string
	envFile    string
	logLevel   string
	color      string

	cfg *config.Config
	log zerolog.Logger
}

func newGlobals() *globals {
	return &globals{
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stderr.Fd()))
		},
		cfg: config.Default(),
		log: zerolog.Nop(),
	}
}

func (g *globals) flags(flags *pflag.FlagSet) {
	flags.StringVar(&g.configPath, "config", "", "Path to typical.toml or typical.yaml (default: search upward)")
	flags.StringVar(&g.envFile, "env-file", ".env", "Environment file to load")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&g.color, "color", "auto", "Colorize output: auto, always, never")
}

func (g *globals) setup() error {
	if err := config.LoadEnvFile(g.envFile); err != nil {
		return err
	}

	var err error
	if g.configPath != "" {
		g.cfg, err = config.Load(g.configPath)
	} else {
		g.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	level := g.cfg.LogLevel()
	if g.logLevel != "" {
		level, err = zerolog.ParseLevel(g.logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	var useColor bool
	switch g.color {
	case "auto":
		useColor = g.isTerminal()
	case "always":
		useColor = true
	case "never":
	default:
		return fmt.Errorf("invalid --color %q (choose auto, always, or never)", g.color)
	}
	diag.EnableColor(useColor)

	g.log = zerolog.New(zerolog.ConsoleWriter{
		Out:     g.stderr,
		NoColor: !useColor,
	}).Level(level).With().Timestamp().Logger()
	g.log.Debug().
		Str("config", g.cfg.Path).
		Str("level", level.String()).
		Msg("configured")
	return nil
}

// loaderOptions builds the resolver options for a run. root overrides the
// configured compilation root.
func (g *globals) loaderOptions(root string, cache *loader.Cache) *loader.Options {
	opts := []loader.Option{
		loader.WithLogger(g.log),
	}
	if root == "" {
		root = g.cfg.Root
	}
	if root != "" {
		opts = append(opts, loader.WithRoot(root))
	}
	if cache != nil {
		opts = append(opts, loader.WithCache(cache))
	}
	return loader.NewOptions(opts...)
}

func errorf(format string, args ...any) error {
	return diag.Newf(0, format, args...)
}

// writeOutput writes content to path, or to stdout when path is "-".
func writeOutput(stdout io.Writer, path, content string) error {
	if path == "-" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	fp, err := os.OpenFile(path, openFlags, 0o666)
	if err != nil {
		return err
	}
	_, writeErr := fp.WriteString(content)
	closeErr := fp.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}
