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

package syntax_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sietse/typical/internal/testutil"
	"github.com/sietse/typical/schema"
	"github.com/sietse/typical/syntax"
)

type strToken struct {
	kind string
	text string
}

func tokenize(t *testing.T, src string) []strToken {
	t.Helper()
	tokens, err := syntax.Tokenize([]byte(src))
	testutil.AssertNoError(t, err)
	var got []strToken
	for _, token := range tokens {
		got = append(got, strToken{token.Kind.String(), token.Text})
	}
	return got
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := tokenize(t, "import 'a/b.t' as ab # comment\r\nstruct Foo { x: [U64] = 10 }")
	want := []strToken{
		{"IDENT", "import"},
		{"PATH_LIT", "a/b.t"},
		{"IDENT", "as"},
		{"IDENT", "ab"},
		{"IDENT", "struct"},
		{"IDENT", "Foo"},
		{"OPEN_CURL", "{"},
		{"IDENT", "x"},
		{"COLON", ":"},
		{"OPEN_SQUARE", "["},
		{"IDENT", "U64"},
		{"CLOSE_SQUARE", "]"},
		{"EQ", "="},
		{"INT_LIT", "10"},
		{"CLOSE_CURL", "}"},
		{"EOF", ""},
	}
	testutil.ExpectSliceEq(t, want, got)
}

func TestTokenSpans(t *testing.T) {
	t.Parallel()

	tokens, err := syntax.Tokenize([]byte("ab  'cd'"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 3, len(tokens))
	testutil.ExpectEq(t, schema.NewSpan(0, 2), tokens[0].Span)
	testutil.ExpectEq(t, schema.NewSpan(4, 4), tokens[1].Span)
	testutil.ExpectEq(t, schema.NewSpan(8, 0), tokens[2].Span)
}

func firstError(t *testing.T, err error) *syntax.Error {
	t.Helper()
	testutil.AssertError(t, err)
	var errs syntax.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		t.Fatalf("expected syntax.Errors, got %T: %v", err, err)
	}
	return errs[0]
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		code uint32
		span schema.Span
	}{
		{"struct $", 1002, schema.NewSpan(7, 1)},
		{"a\x01b", 1003, schema.NewSpan(1, 1)},
		{"a\rb", 1003, schema.NewSpan(1, 1)},
		{"x = 012", 1004, schema.NewSpan(4, 3)},
		{"x = 12ab", 1004, schema.NewSpan(4, 4)},
		{"import 'abc\n", 1005, schema.NewSpan(7, 4)},
		{"import 'abc", 1005, schema.NewSpan(7, 4)},
		{"foo__bar", 1006, schema.NewSpan(0, 8)},
		{"foo_", 1006, schema.NewSpan(0, 4)},
		{"a\xffb", 1001, schema.NewSpan(1, 1)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.src), func(t *testing.T) {
			_, err := syntax.Tokenize([]byte(tt.src))
			got := firstError(t, err)
			testutil.ExpectEq(t, tt.code, got.Code())
			testutil.ExpectEq(t, tt.span, got.Span())
		})
	}
}

func TestTokenizeReportsAllErrors(t *testing.T) {
	t.Parallel()

	_, err := syntax.Tokenize([]byte("$ foo @"))
	testutil.AssertError(t, err)
	var errs syntax.Errors
	testutil.ExpectTrue(t, errors.As(err, &errs))
	testutil.ExpectEq(t, 2, len(errs))
	testutil.ExpectEq(t, "E1002: Unexpected character '$' (U+0024)\nE1002: Unexpected character '@' (U+0040)", err.Error())
}

// dump renders a schema in a stable text form.
func dump(s *schema.Schema) string {
	var buf strings.Builder
	for _, name := range s.ImportNames() {
		fmt.Fprintf(&buf, "import %s = %q\n", name, s.Imports[name].Path)
	}
	for _, name := range s.DeclarationNames() {
		decl := s.Declarations[name]
		fmt.Fprintf(&buf, "%s %s\n", decl.Kind, decl.Name.PascalCase())
		for _, field := range decl.Fields {
			optional := ""
			if field.Optional {
				optional = "optional "
			}
			fmt.Fprintf(&buf, "  %s%s: %s = %d\n", optional, field.Name, field.Type, field.Index)
		}
	}
	return buf.String()
}

func TestParse(t *testing.T) {
	t.Parallel()

	src := `
import 'geo/shapes.t'
import '../util/types.t' as ut

# A point in the plane.
struct Point {
    x: F64 = 0
    y: F64 = 1
    optional label: String = 2
    tags: [[ut.Tag]] = 3
    optional: Bool = 4
}

choice Shape {
    circle: shapes.Circle = 0
    point: Point = 1
    empty = 2
}
`
	parsed, err := syntax.ParseSource([]byte(src))
	testutil.AssertNoError(t, err)

	want := strings.TrimLeft(`
import shapes = "geo/shapes.t"
import ut = "../util/types.t"
struct Point
  x: F64 = 0
  y: F64 = 1
  optional label: String = 2
  tags: [[ut.Tag]] = 3
  optional: Bool = 4
choice Shape
  circle: shapes.Circle = 0
  point: Point = 1
  empty: Unit = 2
`, "\n")
	testutil.ExpectNoDiff(t, want, dump(parsed))
}

func TestParseSpans(t *testing.T) {
	t.Parallel()

	src := "import 'a.t' as b\nstruct Foo {\n  x: U64 = 1\n}\n"
	parsed, err := syntax.ParseSource([]byte(src))
	testutil.AssertNoError(t, err)

	imp := parsed.Imports[schema.MustIdentifier("b")]
	testutil.ExpectEq(t, "import 'a.t' as b", src[imp.Span.Start():imp.Span.End()])

	decl := parsed.Declarations[schema.MustIdentifier("Foo")]
	testutil.ExpectEq(t, "struct Foo {\n  x: U64 = 1\n}", src[decl.Span.Start():decl.Span.End()])

	field := decl.Fields[0]
	testutil.ExpectEq(t, "x: U64 = 1", src[field.Span.Start():field.Span.End()])
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	parsed, err := syntax.ParseSource([]byte("# nothing here\n"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 0, len(parsed.Imports))
	testutil.ExpectEq(t, 0, len(parsed.Declarations))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		code    uint32
		message string
	}{
		{"expected sigil", "struct Foo x: U64 = 0 }", 2000, `Expected sigil '{', got (IDENT "x")`},
		{"missing colon", "struct Foo { x U64 = 0 }", 2000, `Expected sigil ':', got (IDENT "U64")`},
		{"unclosed", "struct Foo { x: U64 = 0", 2000, `Expected sigil '}', got (EOF "")`},
		{"expected ident", "struct { }", 2001, `Expected identifier, got (OPEN_CURL "{")`},
		{"expected path", "import foo", 2002, `Expected path literal, got (IDENT "foo")`},
		{"expected int", "struct Foo { x: U64 = y }", 2003, `Expected integer literal, got (IDENT "y")`},
		{"unknown declaration", "enum Foo { }", 2004, "Unknown declaration type 'enum'"},
		{"import after declaration", "struct Foo { }\nimport 'a.t'", 2005, "Imports must precede all declarations"},
		{"invalid import name", "import 'my-types.t'", 2006, `Import path "my-types.t" does not yield a valid import name; add 'as NAME'`},
		{"duplicate import", "import 'a/x.t'\nimport 'b/x.t'", 2007, "Duplicate import name 'x'"},
		{"duplicate declaration", "struct Foo { }\nchoice foo { }", 2008, "Duplicate declaration 'Foo'"},
		{"duplicate field", "struct Foo { x: U64 = 0\n X: U64 = 1 }", 2009, "Duplicate field 'x' in 'Foo'"},
		{"duplicate index", "struct Foo { x: U64 = 0\n y: U64 = 0 }", 2010, "Duplicate field index 0 in 'Foo'"},
		{"unknown import", "struct Foo { x: bar.Baz = 0 }", 2011, "No import named 'bar'"},
		{"optional choice field", "choice Foo { optional x: U64 = 0 }", 2012, "Choice field 'x' cannot be optional"},
		{"empty import", "import ''", 2013, "Import path is empty"},
		{"index overflow", "struct Foo { x: U64 = 18446744073709551616 }", 2014, "Integer literal 18446744073709551616 exceeds maximum field index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := syntax.ParseSource([]byte(tt.src))
			got := firstError(t, err)
			testutil.ExpectEq(t, tt.code, got.Code())
			testutil.ExpectEq(t, tt.message, got.Message())
		})
	}
}

func TestParseRecovers(t *testing.T) {
	t.Parallel()

	src := `
struct A { x: = 0 }
struct B { y: U64 = 1 }
choice C { z: U64 = }
struct A2 { w: U64 = 2 }
`
	_, err := syntax.ParseSource([]byte(src))
	testutil.AssertError(t, err)
	var errs syntax.Errors
	testutil.ExpectTrue(t, errors.As(err, &errs))
	testutil.ExpectEq(t, 2, len(errs))
	testutil.ExpectEq(t, uint32(2001), errs[0].Code())
	testutil.ExpectEq(t, uint32(2003), errs[1].Code())
}
