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

// Package schema defines the in-memory representation of parsed schema
// documents shared by the loader, the module tree, and code generators.
package schema

import (
	"maps"
	"slices"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

// Import references another schema file by a path relative to the directory
// of the importing file. It does not own the imported schema.
type Import struct {
	Path string
	Span Span
}

// Schema is the parsed content of one file. It must not be mutated after
// parsing.
type Schema struct {
	Imports      map[Identifier]Import
	Declarations map[Identifier]*Declaration
}

func NewSchema() *Schema {
	return &Schema{
		Imports:      make(map[Identifier]Import),
		Declarations: make(map[Identifier]*Declaration),
	}
}

// ImportNames returns the import names in sorted order.
func (s *Schema) ImportNames() []Identifier {
	return slices.SortedFunc(maps.Keys(s.Imports), Identifier.Compare)
}

// DeclarationNames returns the declaration names in sorted order.
func (s *Schema) DeclarationNames() []Identifier {
	return slices.SortedFunc(maps.Keys(s.Declarations), Identifier.Compare)
}

type DeclarationKind uint8

const (
	DeclarationStruct DeclarationKind = iota
	DeclarationChoice
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclarationStruct:
		return "struct"
	case DeclarationChoice:
		return "choice"
	}
	return "unknown"
}

type Declaration struct {
	Kind   DeclarationKind
	Name   Identifier
	Fields []*Field
	Span   Span
}

type Field struct {
	Name     Identifier
	Optional bool
	Type     *Type
	Index    uint64
	Span     Span
}

type TypeKind uint8

const (
	TypeBool TypeKind = iota
	TypeU64
	TypeS64
	TypeF64
	TypeString
	TypeBytes
	TypeUnit
	TypeArray
	TypeCustom
)

var BuiltinTypes = map[string]TypeKind{
	"Bool":   TypeBool,
	"U64":    TypeU64,
	"S64":    TypeS64,
	"F64":    TypeF64,
	"String": TypeString,
	"Bytes":  TypeBytes,
	"Unit":   TypeUnit,
}

// Type is a field type. Elem is set for arrays; Import (optional) and Name
// are set for custom types.
type Type struct {
	Kind   TypeKind
	Elem   *Type
	Import Identifier
	Name   Identifier
	Span   Span
}

func (t *Type) String() string {
	switch t.Kind {
	case TypeArray:
		return "[" + t.Elem.String() + "]"
	case TypeCustom:
		if !t.Import.IsZero() {
			return t.Import.String() + "." + t.Name.PascalCase()
		}
		return t.Name.PascalCase()
	}
	for name, kind := range BuiltinTypes {
		if kind == t.Kind {
			return name
		}
	}
	return "?"
}
