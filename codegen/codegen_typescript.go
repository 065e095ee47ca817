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
	"strings"

	"github.com/sietse/typical/schema"
	"github.com/sietse/typical/tree"
)

// From the TypeScript compiler's keyword table (src/compiler/types.ts).
var typeScriptKeywords = map[string]bool{
	"abstract":    true,
	"any":         true,
	"as":          true,
	"assert":      true,
	"asserts":     true,
	"async":       true,
	"await":       true,
	"bigint":      true,
	"boolean":     true,
	"break":       true,
	"case":        true,
	"catch":       true,
	"class":       true,
	"const":       true,
	"constructor": true,
	"continue":    true,
	"debugger":    true,
	"declare":     true,
	"default":     true,
	"delete":      true,
	"do":          true,
	"else":        true,
	"enum":        true,
	"export":      true,
	"extends":     true,
	"false":       true,
	"finally":     true,
	"for":         true,
	"from":        true,
	"function":    true,
	"get":         true,
	"global":      true,
	"if":          true,
	"implements":  true,
	"import":      true,
	"in":          true,
	"infer":       true,
	"instanceof":  true,
	"interface":   true,
	"intrinsic":   true,
	"is":          true,
	"keyof":       true,
	"let":         true,
	"module":      true,
	"namespace":   true,
	"never":       true,
	"new":         true,
	"null":        true,
	"number":      true,
	"object":      true,
	"of":          true,
	"override":    true,
	"package":     true,
	"private":     true,
	"protected":   true,
	"public":      true,
	"readonly":    true,
	"require":     true,
	"return":      true,
	"set":         true,
	"static":      true,
	"string":      true,
	"super":       true,
	"switch":      true,
	"symbol":      true,
	"this":        true,
	"throw":       true,
	"true":        true,
	"try":         true,
	"type":        true,
	"typeof":      true,
	"undefined":   true,
	"unique":      true,
	"unknown":     true,
	"var":         true,
	"void":        true,
	"while":       true,
	"with":        true,
	"yield":       true,
}

func typeScriptIdent(name string) string {
	if typeScriptKeywords[name] {
		return name + "_"
	}
	return name
}

type typeScriptGen struct {
	e *emitter
}

func generateTypeScript(root *tree.Node, version string) string {
	if root.IsEmpty() {
		return ""
	}
	e := &emitter{unit: "  "}
	e.header(version)
	e.line("")
	e.line("/* eslint-disable */")
	e.line("")
	g := typeScriptGen{e: e}
	g.module(schema.Namespace{}, root)
	return e.String()
}

func (g *typeScriptGen) module(ns schema.Namespace, node *tree.Node) {
	first := true
	separate := func() {
		if !first {
			g.e.line("")
		}
		first = false
	}
	if s := node.Schema(); s != nil {
		for _, name := range s.DeclarationNames() {
			separate()
			g.declaration(ns, node, s.Declarations[name])
		}
	}
	for _, child := range node.Children() {
		separate()
		g.e.linef("export namespace %s {", typeScriptIdent(child.Name.SnakeCase()))
		g.e.indent += 1
		g.module(ns.Append(child.Name), child.Node)
		g.e.indent -= 1
		g.e.line("}")
	}
}

func (g *typeScriptGen) declaration(ns schema.Namespace, node *tree.Node, decl *schema.Declaration) {
	name := typeScriptIdent(decl.Name.PascalCase())
	switch decl.Kind {
	case schema.DeclarationStruct:
		if len(decl.Fields) == 0 {
			g.e.linef("export type %s = {};", name)
			return
		}
		g.e.linef("export type %s = {", name)
		g.e.indent += 1
		for _, field := range decl.Fields {
			optional := ""
			if field.Optional {
				optional = "?"
			}
			g.e.linef(
				"%s%s: %s;",
				typeScriptIdent(field.Name.CamelCase()),
				optional,
				g.typeRef(ns, node, field.Type),
			)
		}
		g.e.indent -= 1
		g.e.line("};")
	case schema.DeclarationChoice:
		if len(decl.Fields) == 0 {
			g.e.linef("export type %s = never;", name)
			return
		}
		g.e.linef("export type %s =", name)
		g.e.indent += 1
		for ii, field := range decl.Fields {
			end := ""
			if ii == len(decl.Fields)-1 {
				end = ";"
			}
			fieldName := field.Name.CamelCase()
			if field.Type.Kind == schema.TypeUnit {
				g.e.linef("| { $field: '%s' }%s", fieldName, end)
				continue
			}
			g.e.linef(
				"| { $field: '%s'; %s: %s }%s",
				fieldName,
				typeScriptIdent(fieldName),
				g.typeRef(ns, node, field.Type),
				end,
			)
		}
		g.e.indent -= 1
	}
}

func (g *typeScriptGen) typeRef(ns schema.Namespace, node *tree.Node, t *schema.Type) string {
	switch t.Kind {
	case schema.TypeBool:
		return "boolean"
	case schema.TypeU64, schema.TypeS64:
		return "bigint"
	case schema.TypeF64:
		return "number"
	case schema.TypeString:
		return "string"
	case schema.TypeBytes:
		return "ArrayBuffer"
	case schema.TypeUnit:
		return "undefined"
	case schema.TypeArray:
		return g.typeRef(ns, node, t.Elem) + "[]"
	case schema.TypeCustom:
		if t.Import.IsZero() {
			return typeScriptIdent(t.Name.PascalCase())
		}
		target, ok := g.importNamespace(ns, node, t.Import)
		if !ok {
			return "unknown"
		}
		parts := make([]string, 0, target.Len()+1)
		for _, component := range target.Components() {
			parts = append(parts, typeScriptIdent(component.SnakeCase()))
		}
		parts = append(parts, typeScriptIdent(t.Name.PascalCase()))
		return strings.Join(parts, ".")
	}
	return "unknown"
}

// importNamespace finds the namespace of the file imported as name. Trees
// built from a loader graph know it; for hand-assembled trees it is derived
// from the import path.
func (g *typeScriptGen) importNamespace(
	ns schema.Namespace,
	node *tree.Node,
	name schema.Identifier,
) (schema.Namespace, bool) {
	if target, ok := node.ImportNamespace(name); ok {
		return target, true
	}
	imp, ok := node.Schema().Imports[name]
	if !ok {
		return schema.Namespace{}, false
	}
	return resolveImport(ns, imp.Path)
}
