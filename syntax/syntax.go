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

// Package syntax implements the front end of the schema language: a
// tokenizer and a recovering parser that produce a schema.Schema.
package syntax

import (
	"path"
	"strconv"
	"strings"

	"github.com/sietse/typical/schema"
)

var topLevelKeywords = map[string]bool{
	"import": true,
	"struct": true,
	"choice": true,
}

// ParseSource tokenizes and parses src.
func ParseSource(src []byte) (*schema.Schema, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds a schema from the output of Tokenize. All parse errors found
// are reported, as Errors; the parser resumes at the next top-level
// declaration after an error.
func Parse(tokens []Token) (*schema.Schema, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != T_EOF {
		tokens = append(tokens, Token{Kind: T_EOF})
	}
	p := &parser{
		tokens: tokens,
		schema: schema.NewSchema(),
	}
	p.parseSchema()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.schema, nil
}

type parser struct {
	tokens  []Token
	pos     int
	depth   int
	errs    Errors
	schema  *schema.Schema
	sawDecl bool
}

func cover(start, end schema.Span) schema.Span {
	return schema.NewSpan(start.Start(), end.End()-start.Start())
}

func (p *parser) err(err *Error) {
	p.errs = append(p.errs, err)
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(ahead int) Token {
	if p.pos+ahead >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+ahead]
}

func (p *parser) next() Token {
	token := p.tokens[p.pos]
	if token.Kind != T_EOF {
		p.pos += 1
	}
	return token
}

func (p *parser) isKeyword(keyword string) bool {
	token := p.peek()
	return token.Kind == T_IDENT && token.Text == keyword
}

func (p *parser) tryKeyword(keyword string) bool {
	if !p.isKeyword(keyword) {
		return false
	}
	p.next()
	return true
}

func (p *parser) sigil(kind TokenKind) (Token, bool) {
	token := p.peek()
	if token.Kind != kind {
		p.err(errExpectedSigil(kind, token))
		return token, false
	}
	return p.next(), true
}

func (p *parser) trySigil(kind TokenKind) bool {
	if p.peek().Kind != kind {
		return false
	}
	p.next()
	return true
}

func (p *parser) ident() (Token, schema.Identifier, bool) {
	token := p.peek()
	if token.Kind != T_IDENT {
		p.err(errExpectedIdent(token))
		return token, schema.Identifier{}, false
	}
	id, err := schema.NewIdentifier(token.Text)
	if err != nil {
		p.err(errIdentInvalid(token.Span, token.Text))
		return token, schema.Identifier{}, false
	}
	return p.next(), id, true
}

// recover skips tokens until the next top-level keyword outside of any
// braces, or EOF.
func (p *parser) recover() {
	for {
		token := p.peek()
		if token.Kind == T_EOF {
			return
		}
		if p.depth == 0 && token.Kind == T_IDENT && topLevelKeywords[token.Text] {
			return
		}
		switch token.Kind {
		case T_OPEN_CURL:
			p.depth += 1
		case T_CLOSE_CURL:
			if p.depth > 0 {
				p.depth -= 1
			}
		}
		p.next()
	}
}

func (p *parser) parseSchema() {
	for p.peek().Kind != T_EOF {
		var ok bool
		switch {
		case p.isKeyword("import"):
			ok = p.parseImport()
		case p.isKeyword("struct"):
			ok = p.parseDeclaration(schema.DeclarationStruct)
		case p.isKeyword("choice"):
			ok = p.parseDeclaration(schema.DeclarationChoice)
		default:
			p.err(errExpectedDeclaration(p.next()))
		}
		if !ok {
			p.recover()
		}
	}
}

func (p *parser) parseImport() bool {
	start := p.next()
	if p.sawDecl {
		p.err(errImportAfterDeclaration(start.Span))
	}

	pathToken := p.peek()
	if pathToken.Kind != T_PATH_LIT {
		p.err(errExpectedPathLit(pathToken))
		return false
	}
	p.next()

	end := pathToken
	var name schema.Identifier
	if p.tryKeyword("as") {
		var ok bool
		if end, name, ok = p.ident(); !ok {
			return false
		}
	}
	span := cover(start.Span, end.Span)

	importPath := pathToken.Text
	if importPath == "" {
		p.err(errEmptyImportPath(span))
		return true
	}
	if name.IsZero() {
		stem := strings.TrimSuffix(path.Base(importPath), path.Ext(importPath))
		id, err := schema.NewIdentifier(stem)
		if err != nil {
			p.err(errImportNameInvalid(importPath, span))
			return true
		}
		name = id
	}
	if _, conflict := p.schema.Imports[name]; conflict {
		p.err(errDuplicateImport(name, span))
		return true
	}
	p.schema.Imports[name] = schema.Import{
		Path: importPath,
		Span: span,
	}
	return true
}

func (p *parser) parseDeclaration(kind schema.DeclarationKind) bool {
	start := p.next()
	p.sawDecl = true

	_, name, ok := p.ident()
	if !ok {
		return false
	}
	if _, ok := p.sigil(T_OPEN_CURL); !ok {
		return false
	}
	p.depth += 1

	decl := &schema.Declaration{
		Kind: kind,
		Name: name,
	}
	fieldNames := make(map[schema.Identifier]struct{})
	fieldIndices := make(map[uint64]struct{})
	var end Token
	for {
		token := p.peek()
		if token.Kind == T_CLOSE_CURL {
			end = p.next()
			p.depth -= 1
			break
		}
		if token.Kind == T_EOF {
			p.err(errExpectedSigil(T_CLOSE_CURL, token))
			return false
		}
		field, ok := p.parseField(kind)
		if !ok {
			return false
		}
		if _, conflict := fieldNames[field.Name]; conflict {
			p.err(errDuplicateFieldName(name, field.Name, field.Span))
		}
		if _, conflict := fieldIndices[field.Index]; conflict {
			p.err(errDuplicateFieldIndex(name, field.Index, field.Span))
		}
		fieldNames[field.Name] = struct{}{}
		fieldIndices[field.Index] = struct{}{}
		decl.Fields = append(decl.Fields, field)
	}
	decl.Span = cover(start.Span, end.Span)

	if _, conflict := p.schema.Declarations[name]; conflict {
		p.err(errDuplicateDeclaration(name, decl.Span))
		return true
	}
	p.schema.Declarations[name] = decl
	return true
}

func (p *parser) parseField(kind schema.DeclarationKind) (*schema.Field, bool) {
	first := p.peek()
	optional := false
	// A field may itself be named "optional".
	if p.isKeyword("optional") && p.peekAt(1).Kind == T_IDENT {
		p.next()
		optional = true
	}

	nameToken, name, ok := p.ident()
	if !ok {
		return nil, false
	}

	var fieldType *schema.Type
	if p.trySigil(T_COLON) {
		if fieldType, ok = p.parseType(); !ok {
			return nil, false
		}
	} else if kind == schema.DeclarationStruct {
		p.err(errExpectedSigil(T_COLON, p.peek()))
		return nil, false
	} else {
		fieldType = &schema.Type{
			Kind: schema.TypeUnit,
			Span: nameToken.Span,
		}
	}

	if _, ok := p.sigil(T_EQ); !ok {
		return nil, false
	}
	indexToken := p.peek()
	if indexToken.Kind != T_INT_LIT {
		p.err(errExpectedIntLit(indexToken))
		return nil, false
	}
	p.next()
	index, err := strconv.ParseUint(indexToken.Text, 10, 64)
	if err != nil {
		p.err(errIntLitOverflow(indexToken))
		return nil, false
	}

	field := &schema.Field{
		Name:     name,
		Optional: optional,
		Type:     fieldType,
		Index:    index,
		Span:     cover(first.Span, indexToken.Span),
	}
	if optional && kind == schema.DeclarationChoice {
		p.err(errOptionalChoiceField(name, field.Span))
	}
	return field, true
}

func (p *parser) parseType() (*schema.Type, bool) {
	if open := p.peek(); open.Kind == T_OPEN_SQUARE {
		p.next()
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		closeToken, ok := p.sigil(T_CLOSE_SQUARE)
		if !ok {
			return nil, false
		}
		return &schema.Type{
			Kind: schema.TypeArray,
			Elem: elem,
			Span: cover(open.Span, closeToken.Span),
		}, true
	}

	nameToken, name, ok := p.ident()
	if !ok {
		return nil, false
	}
	if p.trySigil(T_DOT) {
		typeToken, typeName, ok := p.ident()
		if !ok {
			return nil, false
		}
		if _, known := p.schema.Imports[name]; !known {
			p.err(errUnknownImport(name, nameToken.Span))
		}
		return &schema.Type{
			Kind:   schema.TypeCustom,
			Import: name,
			Name:   typeName,
			Span:   cover(nameToken.Span, typeToken.Span),
		}, true
	}
	if builtin, ok := schema.BuiltinTypes[nameToken.Text]; ok {
		return &schema.Type{
			Kind: builtin,
			Span: nameToken.Span,
		}, true
	}
	return &schema.Type{
		Kind: schema.TypeCustom,
		Name: name,
		Span: nameToken.Span,
	}, true
}
