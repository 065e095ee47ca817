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

package codegen

import (
	"github.com/sietse/typical/tree"
)

var rustKeywords = map[string]bool{
	"abstract": true,
	"as":       true,
	"async":    true,
	"await":    true,
	"become":   true,
	"box":      true,
	"break":    true,
	"const":    true,
	"continue": true,
	"crate":    true,
	"do":       true,
	"dyn":      true,
	"else":     true,
	"enum":     true,
	"extern":   true,
	"false":    true,
	"final":    true,
	"fn":       true,
	"for":      true,
	"gen":      true,
	"if":       true,
	"impl":     true,
	"in":       true,
	"let":      true,
	"loop":     true,
	"macro":    true,
	"match":    true,
	"mod":      true,
	"move":     true,
	"mut":      true,
	"override": true,
	"priv":     true,
	"pub":      true,
	"ref":      true,
	"return":   true,
	"self":     true,
	"static":   true,
	"struct":   true,
	"super":    true,
	"trait":    true,
	"true":     true,
	"try":      true,
	"type":     true,
	"typeof":   true,
	"unsafe":   true,
	"unsized":  true,
	"use":      true,
	"virtual":  true,
	"where":    true,
	"while":    true,
	"yield":    true,
}

// Keywords that cannot be written as raw identifiers.
var rustNonRawKeywords = map[string]bool{
	"crate": true,
	"self":  true,
	"super": true,
}

func rustIdent(name string) string {
	if rustNonRawKeywords[name] {
		return name + "_"
	}
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}

func generateRust(root *tree.Node, version string) string {
	if root.IsEmpty() {
		return ""
	}
	e := &emitter{unit: "    "}
	e.header(version)
	e.line("")
	e.line("#![allow(clippy::all, clippy::pedantic, clippy::nursery, warnings)]")
	rustModule(e, root, true)
	return e.String()
}

func rustModule(e *emitter, node *tree.Node, separate bool) {
	if s := node.Schema(); s != nil && len(s.Declarations) > 0 {
		e.line("// NOTE: Rust support has not yet been implemented.")
		separate = true
	}
	for _, child := range node.Children() {
		if separate {
			e.line("")
		}
		separate = true
		e.linef("pub mod %s {", rustIdent(child.Name.SnakeCase()))
		e.indent += 1
		rustModule(e, child.Node, false)
		e.indent -= 1
		e.line("}")
	}
}
