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

// Package wire defines the messages exchanged between the code generator
// host and codegen plugins.
//
// Each message is MessagePack, prefixed by its length as a little-endian
// uint32.
package wire

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/sietse/typical/tree"
)

const headerLen = 4

// Request asks a plugin to generate code for a module tree.
type Request struct {
	Version string   `msgpack:"version"`
	Root    Module   `msgpack:"root"`
	Options []string `msgpack:"options,omitempty"`
}

// Module is one node of the module tree. Name is empty for the root.
type Module struct {
	Name         string        `msgpack:"name"`
	HasSchema    bool          `msgpack:"has_schema"`
	Imports      []Import      `msgpack:"imports,omitempty"`
	Declarations []Declaration `msgpack:"declarations,omitempty"`
	Children     []Module      `msgpack:"children,omitempty"`
}

type Import struct {
	Name string `msgpack:"name"`
	Path string `msgpack:"path"`
}

type Declaration struct {
	// Kind is "struct" or "choice".
	Kind   string  `msgpack:"kind"`
	Name   string  `msgpack:"name"`
	Fields []Field `msgpack:"fields,omitempty"`
}

type Field struct {
	Name     string `msgpack:"name"`
	Optional bool   `msgpack:"optional,omitempty"`
	Type     string `msgpack:"type"`
	Index    uint64 `msgpack:"index"`
}

// Response carries generated files, or an error message.
type Response struct {
	Files []File `msgpack:"files,omitempty"`
	Error string `msgpack:"error,omitempty"`
}

// File is one generated file. Path holds the components of a path relative
// to the output directory.
type File struct {
	Path    []string `msgpack:"path"`
	Content []byte   `msgpack:"content"`
}

// NewRequest converts a module tree into its wire form.
func NewRequest(root *tree.Node, version string) *Request {
	return &Request{
		Version: version,
		Root:    newModule("", root),
	}
}

func newModule(name string, node *tree.Node) Module {
	module := Module{Name: name}
	if s := node.Schema(); s != nil {
		module.HasSchema = true
		for _, importName := range s.ImportNames() {
			module.Imports = append(module.Imports, Import{
				Name: importName.String(),
				Path: s.Imports[importName].Path,
			})
		}
		for _, declName := range s.DeclarationNames() {
			decl := s.Declarations[declName]
			wireDecl := Declaration{
				Kind: decl.Kind.String(),
				Name: decl.Name.String(),
			}
			for _, field := range decl.Fields {
				wireDecl.Fields = append(wireDecl.Fields, Field{
					Name:     field.Name.String(),
					Optional: field.Optional,
					Type:     field.Type.String(),
					Index:    field.Index,
				})
			}
			module.Declarations = append(module.Declarations, wireDecl)
		}
	}
	for _, child := range node.Children() {
		module.Children = append(module.Children, newModule(child.Name.String(), child.Node))
	}
	return module
}

func EncodeRequest(req *Request) ([]byte, error) {
	return encode(req)
}

func DecodeRequest(buf []byte) (*Request, error) {
	req := &Request{}
	if err := decode(buf, req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

func EncodeResponse(resp *Response) ([]byte, error) {
	return encode(resp)
}

func DecodeResponse(buf []byte) (*Response, error) {
	resp := &Response{}
	if err := decode(buf, resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

// MessageLen returns the total length (header included) of the message
// whose header is at the start of buf.
func MessageLen(buf []byte) (uint64, error) {
	if len(buf) < headerLen {
		return 0, fmt.Errorf("message header truncated: %d bytes", len(buf))
	}
	return headerLen + uint64(binary.LittleEndian.Uint32(buf)), nil
}

func encode(v any) ([]byte, error) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	payloadLen, err := safecast.Conv[uint32](len(payload))
	if err != nil {
		return nil, fmt.Errorf("message too large: %w", err)
	}
	buf := make([]byte, headerLen+len(payload))
	binary.LittleEndian.PutUint32(buf, payloadLen)
	copy(buf[headerLen:], payload)
	return buf, nil
}

func decode(buf []byte, v any) error {
	total, err := MessageLen(buf)
	if err != nil {
		return err
	}
	if total > uint64(len(buf)) {
		return fmt.Errorf("message truncated: want %d bytes, have %d", total, len(buf))
	}
	return msgpack.Unmarshal(buf[headerLen:total], v)
}
