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

// typical-codegen-outline is a codegen plugin that writes a plain-text
// outline of the module tree. It is a small, complete example of the plugin
// protocol: build it for GOOS=wasip1 with -buildmode=c-shared and pass it to
// `typical generate --plugin`.
package main

import (
	"fmt"
	"strings"

	"github.com/sietse/typical/codegen/wire"
)

const (
	version         = "0.1.0"
	defaultFilename = "outline.txt"
)

// generate handles one request. The returned response carries either the
// generated files or an error message.
func generate(requestBuf []byte) (*wire.Response, bool) {
	request, err := wire.DecodeRequest(requestBuf)
	if err != nil {
		return &wire.Response{Error: err.Error()}, false
	}
	filename := defaultFilename
	for _, option := range request.Options {
		key, value, _ := strings.Cut(option, "=")
		switch key {
		case "file":
			if value == "" {
				return &wire.Response{Error: "option \"file\" needs a value"}, false
			}
			filename = value
		default:
			return &wire.Response{Error: fmt.Sprintf("unknown option %q", option)}, false
		}
	}
	return &wire.Response{
		Files: []wire.File{{
			Path:    strings.Split(filename, "/"),
			Content: []byte(renderOutline(request)),
		}},
	}, true
}

func renderOutline(request *wire.Request) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# Outline of a Typical %s module tree.\n", request.Version)
	writeModule(&buf, request.Root, 0)
	return buf.String()
}

func writeModule(buf *strings.Builder, module wire.Module, depth int) {
	if module.Name != "" {
		fmt.Fprintf(buf, "%smodule %s\n", indent(depth), module.Name)
		depth++
	}
	for _, imp := range module.Imports {
		fmt.Fprintf(buf, "%simport '%s' as %s\n", indent(depth), imp.Path, imp.Name)
	}
	for _, decl := range module.Declarations {
		fmt.Fprintf(buf, "%s%s %s\n", indent(depth), decl.Kind, decl.Name)
		for _, field := range decl.Fields {
			optional := ""
			if field.Optional {
				optional = "optional "
			}
			fmt.Fprintf(
				buf,
				"%s%s%s: %s = %d\n",
				indent(depth+1),
				optional,
				field.Name,
				field.Type,
				field.Index,
			)
		}
	}
	for _, child := range module.Children {
		writeModule(buf, child, depth)
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
