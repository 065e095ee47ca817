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

//go:build !wasip1

package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/sietse/typical/codegen/wire"
	"github.com/sietse/typical/loader"
	"github.com/sietse/typical/tree"
)

// Run natively, the plugin loads a schema itself and prints its outline.
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	args := os.Args[1:]
	if len(args) != 1 {
		log.Fatal().Msgf("usage: %s SCHEMA", os.Args[0])
	}

	graph, err := loader.Load(args[0])
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	request := wire.NewRequest(tree.Build(graph), version)
	if _, err := os.Stdout.WriteString(renderOutline(request)); err != nil {
		log.Fatal().Err(err).Msg("write outline")
	}
}
