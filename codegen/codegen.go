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

// Package codegen generates target language bindings from a module tree.
//
// The set of backends is fixed; Generate dispatches on a Backend value.
// Backends never fail: constructs a backend can't express yet produce a
// clearly marked placeholder.
package codegen

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sietse/typical/tree"
)

const projectURL = "https://github.com/sietse/typical"

type Backend uint8

const (
	TypeScript Backend = iota
	Rust
)

var backendNames = [...]string{
	TypeScript: "typescript",
	Rust:       "rust",
}

// Backends returns every backend, in declaration order.
func Backends() []Backend {
	return []Backend{TypeScript, Rust}
}

func (b Backend) String() string {
	if int(b) < len(backendNames) {
		return backendNames[b]
	}
	return fmt.Sprintf("Backend(%d)", uint8(b))
}

func ParseBackend(name string) (Backend, error) {
	for _, backend := range Backends() {
		if strings.EqualFold(name, backend.String()) {
			return backend, nil
		}
	}
	return 0, fmt.Errorf("unknown backend %q", name)
}

// Generate renders root for backend. The output is empty when the tree has
// no schemas.
func Generate(backend Backend, root *tree.Node, version string) string {
	switch backend {
	case TypeScript:
		return generateTypeScript(root, version)
	case Rust:
		return generateRust(root, version)
	}
	panic(fmt.Sprintf("codegen: unknown backend %d", uint8(backend)))
}

// GenerateAll runs the given backends concurrently. The tree is only read.
func GenerateAll(
	ctx context.Context,
	backends []Backend,
	root *tree.Node,
	version string,
) (map[Backend]string, error) {
	outputs := make([]string, len(backends))
	g, ctx := errgroup.WithContext(ctx)
	for ii, backend := range backends {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outputs[ii] = Generate(backend, root, version)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result := make(map[Backend]string, len(backends))
	for ii, backend := range backends {
		result[backend] = outputs[ii]
	}
	return result, nil
}

type emitter struct {
	buf    strings.Builder
	unit   string
	indent int
}

func (e *emitter) line(s string) {
	if s != "" {
		e.buf.WriteString(strings.Repeat(e.unit, e.indent))
		e.buf.WriteString(s)
	}
	e.buf.WriteString("\n")
}

func (e *emitter) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *emitter) header(version string) {
	e.linef("// This file was automatically generated by Typical %s.", version)
	e.linef("// Visit %s for more information.", projectURL)
}

func (e *emitter) String() string {
	return e.buf.String()
}
