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

package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sietse/typical/schema"
)

type Error struct {
	code    uint32
	message string
	span    schema.Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() schema.Span {
	return err.span
}

// Errors is every error found in one source file, in source order.
type Errors []*Error

func (errs Errors) Error() string {
	lines := make([]string, len(errs))
	for ii, err := range errs {
		lines[ii] = err.Error()
	}
	return strings.Join(lines, "\n")
}

func errSourceTooLong(srcLen int) *Error {
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		span: schema.NewSpan(0, 0),
	}
}

func errInvalidUtf8(src []byte) *Error {
	var off uint32
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size <= 1 {
			break
		}
		off += uint32(size)
		src = src[size:]
	}
	return &Error{
		code:    1001,
		message: "Source file contains invalid UTF-8",
		span:    schema.NewSpan(off, 1),
	}
}

func errUnexpectedCharacter(span schema.Span, r rune) *Error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unexpected character '%s' (U+%04X)", string(r), r),
		span:    span,
	}
}

func errForbiddenControlCharacter(span schema.Span, c byte) *Error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Forbidden control character U+%04X", c),
		span:    span,
	}
}

func errIntLitInvalid(span schema.Span, token string) *Error {
	return &Error{
		code:    1004,
		message: fmt.Sprintf("Invalid integer literal %q", token),
		span:    span,
	}
}

func errPathLitUnterminated(span schema.Span) *Error {
	return &Error{
		code:    1005,
		message: "Unterminated path literal",
		span:    span,
	}
}

func errIdentInvalid(span schema.Span, token string) *Error {
	return &Error{
		code:    1006,
		message: fmt.Sprintf("Invalid identifier %q", token),
		span:    span,
	}
}

func errExpectedSigil(want TokenKind, got Token) *Error {
	var sigil string
	switch want {
	case T_COLON:
		sigil = ":"
	case T_DOT:
		sigil = "."
	case T_EQ:
		sigil = "="
	case T_OPEN_CURL:
		sigil = "{"
	case T_CLOSE_CURL:
		sigil = "}"
	case T_OPEN_SQUARE:
		sigil = "["
	case T_CLOSE_SQUARE:
		sigil = "]"
	default:
		panic("unreachable")
	}
	return &Error{
		code:    2000,
		message: fmt.Sprintf("Expected sigil '%s', got (%s %q)", sigil, got.Kind, got.Text),
		span:    got.Span,
	}
}

func errExpectedIdent(got Token) *Error {
	return &Error{
		code:    2001,
		message: fmt.Sprintf("Expected identifier, got (%s %q)", got.Kind, got.Text),
		span:    got.Span,
	}
}

func errExpectedPathLit(got Token) *Error {
	return &Error{
		code:    2002,
		message: fmt.Sprintf("Expected path literal, got (%s %q)", got.Kind, got.Text),
		span:    got.Span,
	}
}

func errExpectedIntLit(got Token) *Error {
	return &Error{
		code:    2003,
		message: fmt.Sprintf("Expected integer literal, got (%s %q)", got.Kind, got.Text),
		span:    got.Span,
	}
}

func errExpectedDeclaration(got Token) *Error {
	if got.Kind == T_IDENT {
		return &Error{
			code:    2004,
			message: fmt.Sprintf("Unknown declaration type '%s'", got.Text),
			span:    got.Span,
		}
	}
	return &Error{
		code:    2004,
		message: fmt.Sprintf("Expected declaration, got (%s %q)", got.Kind, got.Text),
		span:    got.Span,
	}
}

func errImportAfterDeclaration(span schema.Span) *Error {
	return &Error{
		code:    2005,
		message: "Imports must precede all declarations",
		span:    span,
	}
}

func errImportNameInvalid(path string, span schema.Span) *Error {
	return &Error{
		code: 2006,
		message: fmt.Sprintf(
			"Import path %q does not yield a valid import name; add 'as NAME'",
			path,
		),
		span: span,
	}
}

func errDuplicateImport(name schema.Identifier, span schema.Span) *Error {
	return &Error{
		code:    2007,
		message: fmt.Sprintf("Duplicate import name '%s'", name),
		span:    span,
	}
}

func errDuplicateDeclaration(name schema.Identifier, span schema.Span) *Error {
	return &Error{
		code:    2008,
		message: fmt.Sprintf("Duplicate declaration '%s'", name.PascalCase()),
		span:    span,
	}
}

func errDuplicateFieldName(decl, field schema.Identifier, span schema.Span) *Error {
	return &Error{
		code: 2009,
		message: fmt.Sprintf(
			"Duplicate field '%s' in '%s'",
			field, decl.PascalCase(),
		),
		span: span,
	}
}

func errDuplicateFieldIndex(decl schema.Identifier, index uint64, span schema.Span) *Error {
	return &Error{
		code: 2010,
		message: fmt.Sprintf(
			"Duplicate field index %d in '%s'",
			index, decl.PascalCase(),
		),
		span: span,
	}
}

func errUnknownImport(alias schema.Identifier, span schema.Span) *Error {
	return &Error{
		code:    2011,
		message: fmt.Sprintf("No import named '%s'", alias),
		span:    span,
	}
}

func errOptionalChoiceField(field schema.Identifier, span schema.Span) *Error {
	return &Error{
		code:    2012,
		message: fmt.Sprintf("Choice field '%s' cannot be optional", field),
		span:    span,
	}
}

func errEmptyImportPath(span schema.Span) *Error {
	return &Error{
		code:    2013,
		message: "Import path is empty",
		span:    span,
	}
}

func errIntLitOverflow(got Token) *Error {
	return &Error{
		code:    2014,
		message: fmt.Sprintf("Integer literal %s exceeds maximum field index", got.Text),
		span:    got.Span,
	}
}
