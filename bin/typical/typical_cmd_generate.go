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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sietse/typical/codegen"
	"github.com/sietse/typical/codegen/wire"
	"github.com/sietse/typical/tree"
)

type cmdGenerate struct {
	g             *globals
	root          string
	typescript    string
	rust          string
	plugins       []string
	pluginOut     string
	pluginPath    string
	pluginOptions []string
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate PATH",
		summary: "Checks a schema and generates code for it",
		args:    cobra.ExactArgs(1),
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringVar(&cmd.root, "root", "", "Compilation root (default: directory of PATH)")
	flags.StringVar(&cmd.typescript, "typescript", "", "Write TypeScript bindings to this file (- for stdout)")
	flags.StringVar(&cmd.rust, "rust", "", "Write Rust bindings to this file (- for stdout)")
	flags.StringArrayVar(&cmd.plugins, "plugin", nil, "Run a codegen plugin (name or path to a .wasm file)")
	flags.StringVar(&cmd.pluginOut, "plugin-out", "", "Output directory for plugin-generated files")
	flags.StringVar(&cmd.pluginPath, "plugin-path", "", "Plugin search path (default: $TYPICAL_PLUGIN_PATH)")
	flags.StringArrayVar(&cmd.pluginOptions, "plugin-option", nil, "Option passed through to plugins")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	g := cmd.g
	log := g.log

	outputs := make(map[codegen.Backend]string)
	typescript := cmd.typescript
	if typescript == "" {
		typescript = g.cfg.Generate.TypeScript
	}
	if typescript != "" {
		outputs[codegen.TypeScript] = typescript
	}
	rust := cmd.rust
	if rust == "" {
		rust = g.cfg.Generate.Rust
	}
	if rust != "" {
		outputs[codegen.Rust] = rust
	}
	if len(cmd.plugins) > 0 && cmd.pluginOut == "" {
		fmt.Fprintln(g.stderr, errorf("No plugin output directory specified (set --plugin-out)"))
		return 1
	}

	graph, err := g.loaderOptions(cmd.root, nil).Load(argv[0])
	if err != nil {
		fmt.Fprintln(g.stderr, err)
		return 1
	}
	root := tree.Build(graph)

	var backends []codegen.Backend
	for _, backend := range codegen.Backends() {
		if _, ok := outputs[backend]; ok {
			backends = append(backends, backend)
		}
	}
	generated, err := codegen.GenerateAll(ctx, backends, root, version)
	if err != nil {
		fmt.Fprintln(g.stderr, errorf("%v", err))
		return 1
	}
	for _, backend := range backends {
		outPath := outputs[backend]
		if err := writeOutput(g.stdout, outPath, generated[backend]); err != nil {
			fmt.Fprintln(g.stderr, errorf("Unable to write %s output: %v", backend, err))
			return 1
		}
		log.Info().
			Str("backend", backend.String()).
			Str("output", outPath).
			Msg("generated bindings")
	}

	if len(cmd.plugins) == 0 {
		return 0
	}
	searchPath := cmd.pluginPath
	if searchPath == "" {
		searchPath = g.cfg.PluginSearchPath()
	}
	request := wire.NewRequest(root, version)
	request.Options = cmd.pluginOptions
	if err := os.MkdirAll(cmd.pluginOut, 0o755); err != nil {
		fmt.Fprintln(g.stderr, errorf("%v", err))
		return 1
	}
	for _, name := range cmd.plugins {
		if err := cmd.runPlugin(ctx, searchPath, name, request); err != nil {
			fmt.Fprintln(g.stderr, errorf("Plugin %s: %v", name, err))
			return 1
		}
	}
	return 0
}

func (cmd *cmdGenerate) runPlugin(
	ctx context.Context,
	searchPath string,
	name string,
	request *wire.Request,
) error {
	pluginPath, err := codegen.LocatePlugin(searchPath, name)
	if err != nil {
		return err
	}
	pluginBin, err := os.ReadFile(pluginPath)
	if err != nil {
		return err
	}
	response, err := codegen.RunPlugin(
		ctx,
		pluginBin,
		request,
		codegen.WithStderr(cmd.g.stderr),
		codegen.WithLogger(cmd.g.log.With().Str("plugin", pluginPath).Logger()),
	)
	if err != nil {
		return err
	}
	if err := codegen.WriteFiles(cmd.pluginOut, response.Files); err != nil {
		return err
	}
	cmd.g.log.Info().
		Str("plugin", pluginPath).
		Int("files", len(response.Files)).
		Msg("plugin generated files")
	return nil
}
